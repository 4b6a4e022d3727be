package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

var exportHeaders = map[models.Language][]string{
	models.LangUz: {"Ism", "Familiya", "Tug'ilgan yil", "Maktab", "Sinf", "Yuborilgan vaqt"},
	models.LangRu: {"Имя", "Фамилия", "Год рождения", "Школа", "Класс", "Время отправки"},
}

var exportTailHeaders = map[models.Language][]string{
	models.LangUz: {"O'rtacha ball", "Xavf darajasi"},
	models.LangRu: {"Средний балл", "Уровень риска"},
}

// ExportResponsesXLSX renders the full response set as a spreadsheet: the
// registration fields, one column per question score, and the derived
// average and risk tier.
func ExportResponsesXLSX(responses []*models.SurveyResponse, lang models.Language) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := append([]string{}, exportHeaders[lang]...)
	for i := range models.SurveyQuestions {
		header = append(header, models.SurveyQuestions[i].ID)
	}
	header = append(header, exportTailHeaders[lang]...)
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, r := range responses {
		avg := AverageScore(r)
		values := []any{
			r.User.FirstName,
			r.User.LastName,
			r.User.BirthYear,
			r.User.SchoolNumber,
			r.User.ClassNumber + "-" + r.User.ClassLetter,
			time.UnixMilli(r.Timestamp).UTC().Format("2006-01-02 15:04"),
		}
		for i := range models.SurveyQuestions {
			if score, ok := r.Answers[models.SurveyQuestions[i].ID]; ok {
				values = append(values, score)
			} else {
				values = append(values, "")
			}
		}
		values = append(values, round2(avg), Classify(avg).Label(lang))
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Word opens HTML documents served as .doc; the dashboard's export button
// relies on that rather than a real OOXML writer.
var reportDocTmpl = template.Must(template.New("report").Parse(`<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p><i>{{.GeneratedAt}}</i></p>
<hr>
<div style="white-space: pre-wrap; font-family: 'Times New Roman', serif;">{{.Body}}</div>
</body>
</html>`))

var reportTitles = map[models.Language]string{
	models.LangUz: "AI Tahlili — Bulling monitoringi hisoboti",
	models.LangRu: "AI Анализ — Отчёт мониторинга буллинга",
}

// ExportReportDoc wraps a generated narrative in a minimal document shell:
// title, generation timestamp, body. The narrative itself passes through
// unmodified.
func ExportReportDoc(narrative string, generatedAt time.Time, lang models.Language) ([]byte, error) {
	var buf bytes.Buffer
	err := reportDocTmpl.Execute(&buf, struct {
		Title       string
		GeneratedAt string
		Body        string
	}{
		Title:       reportTitles[lang],
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04"),
		Body:        narrative,
	})
	if err != nil {
		return nil, fmt.Errorf("render report doc: %w", err)
	}
	return buf.Bytes(), nil
}
