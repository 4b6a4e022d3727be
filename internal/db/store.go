package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

// Store is the persistence collaborator: a flat table of response rows.
// Rows are inserted once, read in bulk, and destroyed only by the
// unconditional table-wide wipe.
type Store interface {
	InsertResponse(ctx context.Context, r *models.SurveyResponse) (*models.SurveyResponse, error)
	ListResponses(ctx context.Context) ([]*models.SurveyResponse, error)
	GetResponse(ctx context.Context, id string) (*models.SurveyResponse, error)
	DeleteAllResponses(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

func newRowID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// EncodeAnswers serializes the answer map into the JSON text column shape
// shared by both store backends.
func EncodeAnswers(answers map[string]int) (string, error) {
	b, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeAnswers parses and validates an answers column. Rows with unknown
// question ids or out-of-range scores are rejected here so undefined
// values never reach aggregation.
func DecodeAnswers(raw string) (map[string]int, error) {
	var answers map[string]int
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	for id, score := range answers {
		if models.QuestionByID(id) == nil {
			return nil, fmt.Errorf("decode answers: unknown question %q", id)
		}
		if score < models.MinScore || score > models.MaxScore {
			return nil, fmt.Errorf("decode answers: score %d out of range for %q", score, id)
		}
	}
	return answers, nil
}
