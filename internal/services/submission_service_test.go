package services

import (
	"context"
	"testing"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

type stubSubmissionStore struct {
	inserted []*models.SurveyResponse
	err      error
}

func (s *stubSubmissionStore) InsertResponse(_ context.Context, r *models.SurveyResponse) (*models.SurveyResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	stored := *r
	stored.ID = "row123"
	stored.Timestamp = 1700000000000
	s.inserted = append(s.inserted, &stored)
	return &stored, nil
}

func validRegistration() models.UserRegistration {
	return models.UserRegistration{
		FirstName:    "Aziz",
		LastName:     "Karimov",
		BirthYear:    2010,
		SchoolNumber: "12",
		ClassNumber:  "7",
		ClassLetter:  "A",
	}
}

func TestSubmitSuccess(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := NewSubmissionService(store)

	result, err := svc.Submit(context.Background(), SubmissionRequest{
		User:    validRegistration(),
		Answers: fullAnswers(2),
	}, models.LangUz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResponseID != "row123" {
		t.Fatalf("response id = %q", result.ResponseID)
	}
	if result.Message != "Rahmat! Ma'lumotlaringiz muvaffaqiyatli saqlandi." {
		t.Fatalf("message = %q", result.Message)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
	if len(store.inserted[0].Answers) != len(models.SurveyQuestions) {
		t.Fatalf("stored %d answers, want %d", len(store.inserted[0].Answers), len(models.SurveyQuestions))
	}
}

func TestSubmitIncompleteAnswers(t *testing.T) {
	store := &stubSubmissionStore{}
	svc := NewSubmissionService(store)

	answers := fullAnswers(1)
	delete(answers, "q5")
	_, err := svc.Submit(context.Background(), SubmissionRequest{
		User:    validRegistration(),
		Answers: answers,
	}, models.LangRu)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("error = %v, want invalid", err)
	}
	if se.Message != "Пожалуйста, ответьте на все вопросы." {
		t.Fatalf("message = %q", se.Message)
	}
	if len(store.inserted) != 0 {
		t.Fatal("incomplete submission must not be stored")
	}
}

func TestSubmitScoreOutOfRange(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionStore{})

	answers := fullAnswers(1)
	answers["q1"] = 5
	_, err := svc.Submit(context.Background(), SubmissionRequest{
		User:    validRegistration(),
		Answers: answers,
	}, models.LangUz)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("error = %v, want invalid", err)
	}
	if se.Message != "Javob qiymati noto'g'ri." {
		t.Fatalf("message = %q", se.Message)
	}
}

func TestSubmitUnknownQuestion(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionStore{})

	answers := fullAnswers(1)
	delete(answers, "q10")
	answers["q99"] = 1
	_, err := svc.Submit(context.Background(), SubmissionRequest{
		User:    validRegistration(),
		Answers: answers,
	}, models.LangUz)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("error = %v, want invalid", err)
	}
}

func TestSubmitMissingRegistration(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionStore{})

	user := validRegistration()
	user.FirstName = "  "
	_, err := svc.Submit(context.Background(), SubmissionRequest{
		User:    user,
		Answers: fullAnswers(1),
	}, models.LangUz)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("error = %v, want invalid", err)
	}
	if se.Message != "Iltimos, ro'yxatdan o'tish maydonlarini to'ldiring." {
		t.Fatalf("message = %q", se.Message)
	}
}
