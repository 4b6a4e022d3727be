package services

import (
	"context"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

// DashboardStore abstracts the reads the admin dashboard needs.
type DashboardStore interface {
	ListResponses(ctx context.Context) ([]*models.SurveyResponse, error)
}

// SchoolCount feeds the school-coverage pie chart: submissions per school,
// not averages.
type SchoolCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ParticipantRow is one line of the participants table.
type ParticipantRow struct {
	ID        string  `json:"id"`
	Student   string  `json:"student"`
	Classroom string  `json:"classroom"`
	School    string  `json:"school"`
	Timestamp int64   `json:"timestamp"`
	Average   float64 `json:"average"`
	RiskTier  string  `json:"risk_tier"`
	RiskLabel string  `json:"risk_label"`
}

// DashboardSummary is the one payload behind the admin charts and tables.
type DashboardSummary struct {
	TotalResponses int                `json:"total_responses"`
	HighRiskCount  int                `json:"high_risk_count"`
	ByClassroom    []models.Aggregate `json:"by_classroom"`
	BySchool       []models.Aggregate `json:"by_school"`
	ByBirthYear    []models.Aggregate `json:"by_birth_year"`
	ByDay          []models.Aggregate `json:"by_day"`
	SchoolCoverage []SchoolCount      `json:"school_coverage"`
	Participants   []ParticipantRow   `json:"participants"`
}

type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Summary recomputes every dashboard statistic from the current response
// snapshot. Pure derivation; the store owns the data.
func (s *DashboardService) Summary(ctx context.Context, lang models.Language) (*DashboardSummary, error) {
	responses, err := s.store.ListResponses(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSummary(responses, lang), nil
}

// BuildSummary derives the dashboard payload from an in-memory snapshot.
func BuildSummary(responses []*models.SurveyResponse, lang models.Language) *DashboardSummary {
	coverageOrder := make([]string, 0, 8)
	coverage := map[string]int{}
	participants := make([]ParticipantRow, 0, len(responses))
	for _, r := range responses {
		school := r.User.SchoolNumber
		if _, seen := coverage[school]; !seen {
			coverageOrder = append(coverageOrder, school)
		}
		coverage[school]++

		avg := AverageScore(r)
		tier := Classify(avg)
		participants = append(participants, ParticipantRow{
			ID:        r.ID,
			Student:   r.User.FirstName + " " + r.User.LastName,
			Classroom: ClassroomKey(r),
			School:    school,
			Timestamp: r.Timestamp,
			Average:   round2(avg),
			RiskTier:  tier.String(),
			RiskLabel: tier.Label(lang),
		})
	}

	schoolCoverage := make([]SchoolCount, 0, len(coverageOrder))
	for _, name := range coverageOrder {
		schoolCoverage = append(schoolCoverage, SchoolCount{Name: name, Count: coverage[name]})
	}

	return &DashboardSummary{
		TotalResponses: len(responses),
		HighRiskCount:  HighRiskCount(responses),
		ByClassroom:    AggregateBy(responses, ClassroomKey),
		BySchool:       AggregateBy(responses, SchoolKey),
		ByBirthYear:    AggregateBy(responses, BirthYearKey),
		ByDay:          AggregateBy(responses, SubmissionDateKey),
		SchoolCoverage: schoolCoverage,
		Participants:   participants,
	}
}
