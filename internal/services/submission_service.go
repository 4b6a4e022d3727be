package services

import (
	"context"
	"strings"

	"github.com/anarkulova/maktab-monitor/internal/models"
	"github.com/anarkulova/maktab-monitor/internal/utils"
)

// SubmissionStore abstracts the persistence write the intake flow needs.
type SubmissionStore interface {
	InsertResponse(ctx context.Context, r *models.SurveyResponse) (*models.SurveyResponse, error)
}

// SubmissionRequest transports the sanitized handler input into the
// service layer.
type SubmissionRequest struct {
	User    models.UserRegistration
	Answers map[string]int
}

// SubmissionResult collects the data needed to emit the HTTP response.
type SubmissionResult struct {
	ResponseID string
	Message    string
}

// SubmissionService validates and persists survey submissions. A response
// is inserted exactly once and never updated.
type SubmissionService struct {
	store SubmissionStore
}

func NewSubmissionService(store SubmissionStore) *SubmissionService {
	return &SubmissionService{store: store}
}

// ValidateRegistration checks the six intake form fields.
func ValidateRegistration(u models.UserRegistration) bool {
	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return false
	}
	if u.BirthYear < 1900 || u.BirthYear > 2100 {
		return false
	}
	return strings.TrimSpace(u.SchoolNumber) != "" &&
		strings.TrimSpace(u.ClassNumber) != "" &&
		strings.TrimSpace(u.ClassLetter) != ""
}

// ValidateAnswers requires exactly one in-range answer per question in the
// canonical list. Unknown question ids are rejected so short or skewed
// rows can never reach aggregation.
func ValidateAnswers(answers map[string]int) error {
	if len(answers) != len(models.SurveyQuestions) {
		return NewInvalidError("incomplete answer set")
	}
	for id, score := range answers {
		if models.QuestionByID(id) == nil {
			return NewInvalidError("unknown question: " + id)
		}
		if score < models.MinScore || score > models.MaxScore {
			return NewInvalidError("score out of range")
		}
	}
	for i := range models.SurveyQuestions {
		if _, ok := answers[models.SurveyQuestions[i].ID]; !ok {
			return NewInvalidError("missing answer: " + models.SurveyQuestions[i].ID)
		}
	}
	return nil
}

// Submit validates the request and inserts one response row. All failures
// carry a message in the caller's language.
func (s *SubmissionService) Submit(ctx context.Context, req SubmissionRequest, lang models.Language) (*SubmissionResult, error) {
	if !ValidateRegistration(req.User) {
		return nil, NewInvalidError(utils.T(string(lang), "submit.registration"))
	}
	if err := ValidateAnswers(req.Answers); err != nil {
		se, _ := AsServiceError(err)
		msg := utils.T(string(lang), "submit.incomplete")
		if se != nil && strings.Contains(se.Message, "score") {
			msg = utils.T(string(lang), "submit.invalid_score")
		}
		return nil, NewInvalidError(msg)
	}

	answers := make(map[string]int, len(req.Answers))
	for k, v := range req.Answers {
		answers[k] = v
	}
	stored, err := s.store.InsertResponse(ctx, &models.SurveyResponse{
		User:    req.User,
		Answers: answers,
	})
	if err != nil {
		return nil, NewBadGatewayError(utils.T(string(lang), "submit.failed"))
	}
	return &SubmissionResult{
		ResponseID: stored.ID,
		Message:    utils.T(string(lang), "submit.thanks"),
	}, nil
}
