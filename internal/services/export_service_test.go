package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

func TestExportResponsesXLSX(t *testing.T) {
	r := resp("7", "A", "12", 2010, fullAnswers(4))
	r.Timestamp = 1700000000000

	data, err := ExportResponsesXLSX([]*models.SurveyResponse{r}, models.LangRu)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported file does not open: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	if err != nil || header != "Имя" {
		t.Fatalf("A1 = %q (%v), want Имя", header, err)
	}
	name, _ := f.GetCellValue("Sheet1", "A2")
	if name != "A" {
		t.Fatalf("A2 = %q, want A", name)
	}
	// 6 meta columns, then q1 in column G
	q1, _ := f.GetCellValue("Sheet1", "G2")
	if q1 != "4" {
		t.Fatalf("G2 = %q, want 4", q1)
	}
}

func TestExportReportDoc(t *testing.T) {
	generated := time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC)
	data, err := ExportReportDoc("## Umumiy holat\nXavf past.", generated, models.LangUz)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	doc := string(data)
	if !strings.Contains(doc, "AI Tahlili") {
		t.Fatalf("doc missing title: %s", doc)
	}
	if !strings.Contains(doc, "2025-11-20 10:30") {
		t.Fatalf("doc missing timestamp: %s", doc)
	}
	if !strings.Contains(doc, "Xavf past.") {
		t.Fatalf("doc missing narrative body: %s", doc)
	}
}
