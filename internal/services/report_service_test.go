package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

type stubGenerator struct {
	calls    int
	lastReq  GenerateRequest
	response string
	err      error
}

func (g *stubGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	g.calls++
	g.lastReq = req
	return g.response, g.err
}

func fullAnswers(score int) map[string]int {
	answers := make(map[string]int, len(models.SurveyQuestions))
	for i := range models.SurveyQuestions {
		answers[models.SurveyQuestions[i].ID] = score
	}
	return answers
}

func TestAggregateReportEmptyShortCircuit(t *testing.T) {
	gen := &stubGenerator{response: "should not be used"}
	svc := NewReportService(gen)

	got, err := svc.AggregateReport(context.Background(), nil, models.LangUz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Tahlil qilish uchun ma'lumotlar mavjud emas." {
		t.Fatalf("canned message = %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times, want 0", gen.calls)
	}

	got, err = svc.AggregateReport(context.Background(), nil, models.LangRu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Нет данных для анализа." {
		t.Fatalf("ru canned message = %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times, want 0", gen.calls)
	}
}

func TestAggregateReportPassThrough(t *testing.T) {
	gen := &stubGenerator{response: "## Hisobot\nTahlil matni"}
	svc := NewReportService(gen)

	responses := []*models.SurveyResponse{
		{
			User:    models.UserRegistration{FirstName: "Aziz", LastName: "Karimov", ClassNumber: "7", ClassLetter: "A", SchoolNumber: "12"},
			Answers: map[string]int{"q1": 4, "q2": 2},
		},
	}
	got, err := svc.AggregateReport(context.Background(), responses, models.LangUz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != gen.response {
		t.Fatalf("narrative = %q, want pass-through %q", got, gen.response)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if !strings.Contains(gen.lastReq.Contents, "Aziz Karimov") {
		t.Fatalf("contents missing student name: %q", gen.lastReq.Contents)
	}
	if !strings.Contains(gen.lastReq.Contents, `"class":"7-A"`) {
		t.Fatalf("contents missing class label: %q", gen.lastReq.Contents)
	}
	if !strings.Contains(gen.lastReq.SystemInstruction, "1 ta so'rovnoma") {
		t.Fatalf("instruction missing total: %q", gen.lastReq.SystemInstruction)
	}
	if !strings.Contains(gen.lastReq.SystemInstruction, "O'zbek tili") {
		t.Fatalf("instruction missing language: %q", gen.lastReq.SystemInstruction)
	}
	if gen.lastReq.ThinkingLevel != ThinkingLow {
		t.Fatalf("thinking level = %q", gen.lastReq.ThinkingLevel)
	}
}

func TestAggregateReportFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewReportService(gen)

	responses := []*models.SurveyResponse{{Answers: map[string]int{"q1": 1}}}
	_, err := svc.AggregateReport(context.Background(), responses, models.LangRu)
	if err == nil {
		t.Fatal("expected error")
	}
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorBadGateway {
		t.Fatalf("error = %v, want bad_gateway service error", err)
	}
	if !strings.Contains(se.Message, "Техническая ошибка") {
		t.Fatalf("message not localized: %q", se.Message)
	}
	if !strings.Contains(se.Message, "quota exceeded") {
		t.Fatalf("message missing underlying cause: %q", se.Message)
	}
}

func TestIndividualReportLabels(t *testing.T) {
	gen := &stubGenerator{response: "xulosa"}
	svc := NewReportService(gen)

	answers := fullAnswers(0)
	answers["q2"] = 4
	delete(answers, "q3")
	r := &models.SurveyResponse{
		User:    models.UserRegistration{FirstName: "Dilnoza", LastName: "Rahimova"},
		Answers: answers,
	}

	got, err := svc.IndividualReport(context.Background(), r, models.LangUz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "xulosa" {
		t.Fatalf("narrative = %q", got)
	}
	if !strings.Contains(gen.lastReq.Contents, "Dilnoza Rahimova") {
		t.Fatalf("contents missing student: %q", gen.lastReq.Contents)
	}
	if !strings.Contains(gen.lastReq.Contents, "Har doim") {
		t.Fatalf("contents missing 'always' label: %q", gen.lastReq.Contents)
	}
	if !strings.Contains(gen.lastReq.Contents, "Hech qachon") {
		t.Fatalf("contents missing 'never' label: %q", gen.lastReq.Contents)
	}
	// unanswered q3 maps to the unknown label
	if !strings.Contains(gen.lastReq.Contents, "Noma'lum") {
		t.Fatalf("contents missing unknown label: %q", gen.lastReq.Contents)
	}
}

func TestIndividualReportNilResponse(t *testing.T) {
	svc := NewReportService(&stubGenerator{})
	_, err := svc.IndividualReport(context.Background(), nil, models.LangUz)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

func TestReportEmptyGeneratorText(t *testing.T) {
	gen := &stubGenerator{response: "   "}
	svc := NewReportService(gen)
	responses := []*models.SurveyResponse{{Answers: map[string]int{"q1": 1}}}
	got, err := svc.AggregateReport(context.Background(), responses, models.LangUz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AI javob qaytarmadi." {
		t.Fatalf("blank narrative fallback = %q", got)
	}
}
