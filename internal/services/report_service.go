package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/anarkulova/maktab-monitor/internal/models"
	"github.com/anarkulova/maktab-monitor/internal/utils"
)

// GenerateRequest carries everything the generative-text collaborator
// needs: a system instruction, a user payload, and a thinking-effort hint.
// The concrete model identity lives in the client, not here.
type GenerateRequest struct {
	SystemInstruction string
	Contents          string
	ThinkingLevel     string
}

// TextGenerator is the generative-text collaborator. One request, one
// opaque narrative back; no retries, no streaming.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ThinkingLow matches the tuning the dashboard uses for both report kinds.
const ThinkingLow = "LOW"

// PromptTemplate is a structured prompt: a role line, a numbered task
// list, and the response language. Rendering is deterministic so the same
// inputs always produce the same instruction.
type PromptTemplate struct {
	Role     string
	Tasks    []string
	Language models.Language
}

var languageNames = map[models.Language]string{
	models.LangUz: "O'zbek tili",
	models.LangRu: "Rus tili",
}

// SystemInstruction renders the template into the collaborator's system
// prompt.
func (t PromptTemplate) SystemInstruction() string {
	var b strings.Builder
	b.WriteString(t.Role)
	b.WriteString("\nVazifangiz:\n")
	for i, task := range t.Tasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, task)
	}
	fmt.Fprintf(&b, "Javob tili: %s.\n", languageNames[t.Language])
	b.WriteString("Javobni professional Markdown formatida bering.")
	return b.String()
}

func aggregateTemplate(lang models.Language, total int) PromptTemplate {
	if lang == models.LangRu {
		return PromptTemplate{
			Role: "Вы профессиональный педагог-психолог и аналитик поведения при Гулистанском государственном педагогическом институте.",
			Tasks: []string{
				fmt.Sprintf("Оценить общую ситуацию на основе представленных %d результатов опроса.", total),
				"Определить классы из группы наибольшего риска.",
				"Дать практические рекомендации по снижению буллинга.",
				"Дать рекомендации по психологической поддержке учеников.",
			},
			Language: lang,
		}
	}
	return PromptTemplate{
		Role: "Siz Guliston Davlat Pedagogika Instituti qoshidagi professional ta'lim psixologi va xulq-atvor tahlilchisisiz.",
		Tasks: []string{
			fmt.Sprintf("Taqdim etilgan %d ta so'rovnoma natijalari asosida umumiy vaziyatni baholash.", total),
			"Eng yuqori xavf guruhidagi sinflarni aniqlash.",
			"Bullingni kamaytirish bo'yicha amaliy tavsiyalar berish.",
			"O'quvchilarga psixologik yordam bo'yicha tavsiyalar berish.",
		},
		Language: lang,
	}
}

func individualTemplate(lang models.Language) PromptTemplate {
	if lang == models.LangRu {
		return PromptTemplate{
			Role: "Вы детский психолог и специалист по подросткам.",
			Tasks: []string{
				"Оценить психологическое состояние ученика по этим индивидуальным ответам и объяснить уровень риска.",
				"Предложить индивидуальные методы поддержки.",
				"Составить план действий для классного руководителя и родителей.",
			},
			Language: lang,
		}
	}
	return PromptTemplate{
		Role: "Siz bolalar psixologi va o'smirlar bo'yicha mutaxassissiz.",
		Tasks: []string{
			"Ushbu individual javoblar asosida o'quvchining ruhiy holatini baholash va xavf darajasini tushuntirish.",
			"Individual yordam usullarini taklif qilish.",
			"Sinf rahbari va ota-onalar uchun harakat rejasini tuzish.",
		},
		Language: lang,
	}
}

// ReportService builds language-selected prompts from survey data and
// passes the collaborator's narrative through unmodified.
type ReportService struct {
	gen TextGenerator

	// one in-flight request per report kind; duplicate triggers are
	// billed by the external API
	aggregateBusy  atomic.Bool
	individualBusy atomic.Bool
}

func NewReportService(gen TextGenerator) *ReportService {
	return &ReportService{gen: gen}
}

type studentSummary struct {
	Student      string  `json:"student"`
	Class        string  `json:"class"`
	AvgRiskScore float64 `json:"avgRiskScore"`
}

type questionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AggregateReport requests a school-wide narrative. With no responses it
// short-circuits to the canned no-data message without touching the
// collaborator.
func (s *ReportService) AggregateReport(ctx context.Context, responses []*models.SurveyResponse, lang models.Language) (string, error) {
	if len(responses) == 0 {
		return utils.T(string(lang), "report.no_data"), nil
	}
	if !s.aggregateBusy.CompareAndSwap(false, true) {
		return "", NewTooManyRequestsError(utils.T(string(lang), "report.busy"))
	}
	defer s.aggregateBusy.Store(false)

	summary := make([]studentSummary, 0, len(responses))
	for _, r := range responses {
		summary = append(summary, studentSummary{
			Student:      r.User.FirstName + " " + r.User.LastName,
			Class:        r.User.ClassNumber + "-" + r.User.ClassLetter,
			AvgRiskScore: AverageScore(r),
		})
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return "", NewInvalidError(err.Error())
	}

	contents := "Quyidagi maktab bulling monitoringi ma'lumotlarini tahlil qiling va hisobot tayyorlang: " + string(payload)
	if lang == models.LangRu {
		contents = "Проанализируйте следующие данные мониторинга школьного буллинга и подготовьте отчёт: " + string(payload)
	}
	return s.generate(ctx, GenerateRequest{
		SystemInstruction: aggregateTemplate(lang, len(responses)).SystemInstruction(),
		Contents:          contents,
		ThinkingLevel:     ThinkingLow,
	}, lang)
}

// IndividualReport requests a single-student assessment narrative. Each
// question's localized text is paired with the localized answer label.
func (s *ReportService) IndividualReport(ctx context.Context, r *models.SurveyResponse, lang models.Language) (string, error) {
	if r == nil {
		return "", NewNotFoundError(utils.T(string(lang), "response.not_found"))
	}
	if !s.individualBusy.CompareAndSwap(false, true) {
		return "", NewTooManyRequestsError(utils.T(string(lang), "report.busy"))
	}
	defer s.individualBusy.Store(false)

	unknown := "Noma'lum"
	if lang == models.LangRu {
		unknown = "Неизвестно"
	}
	qa := make([]questionAnswer, 0, len(models.SurveyQuestions))
	for i := range models.SurveyQuestions {
		q := &models.SurveyQuestions[i]
		label := unknown
		if score, ok := r.Answers[q.ID]; ok {
			if l := models.AnswerLabel(lang, score); l != "" {
				label = l
			}
		}
		qa = append(qa, questionAnswer{Question: q.TextIn(lang), Answer: label})
	}
	payload, err := json.Marshal(qa)
	if err != nil {
		return "", NewInvalidError(err.Error())
	}

	contents := fmt.Sprintf("O'quvchi %s %s ning javoblari: %s", r.User.FirstName, r.User.LastName, payload)
	if lang == models.LangRu {
		contents = fmt.Sprintf("Ответы ученика %s %s: %s", r.User.FirstName, r.User.LastName, payload)
	}
	return s.generate(ctx, GenerateRequest{
		SystemInstruction: individualTemplate(lang).SystemInstruction(),
		Contents:          contents,
		ThinkingLevel:     ThinkingLow,
	}, lang)
}

func (s *ReportService) generate(ctx context.Context, req GenerateRequest, lang models.Language) (string, error) {
	if s.gen == nil {
		return "", NewBadGatewayError(utils.T(string(lang), "report.failed"))
	}
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		return "", NewBadGatewayError(utils.T(string(lang), "report.failed") + ": " + err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return utils.T(string(lang), "report.empty"), nil
	}
	return text, nil
}
