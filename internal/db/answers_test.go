package db

import (
	"testing"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

func TestAnswersRoundTrip(t *testing.T) {
	answers := make(map[string]int, len(models.SurveyQuestions))
	for i := range models.SurveyQuestions {
		answers[models.SurveyQuestions[i].ID] = i % 5
	}

	raw, err := EncodeAnswers(answers)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeAnswers(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != len(answers) {
		t.Fatalf("decoded %d answers, want %d", len(decoded), len(answers))
	}
	for id, score := range answers {
		if decoded[id] != score {
			t.Fatalf("answer %s = %d, want %d", id, decoded[id], score)
		}
	}
}

func TestDecodeAnswersRejectsUnknownQuestion(t *testing.T) {
	if _, err := DecodeAnswers(`{"q99": 2}`); err == nil {
		t.Fatal("unknown question id must be rejected")
	}
}

func TestDecodeAnswersRejectsOutOfRange(t *testing.T) {
	if _, err := DecodeAnswers(`{"q1": 5}`); err == nil {
		t.Fatal("score above 4 must be rejected")
	}
	if _, err := DecodeAnswers(`{"q1": -1}`); err == nil {
		t.Fatal("negative score must be rejected")
	}
}

func TestDecodeAnswersRejectsGarbage(t *testing.T) {
	if _, err := DecodeAnswers(`not json`); err == nil {
		t.Fatal("malformed column must be rejected")
	}
}
