package services

import "github.com/anarkulova/maktab-monitor/internal/models"

// Risk tier lower bounds. Each bound is inclusive: exactly 2.5 is high,
// exactly 1.5 is medium.
const (
	highRiskThreshold   = 2.5
	mediumRiskThreshold = 1.5
)

// Classify maps an average score to a risk tier. Total over all finite
// floats; values outside the expected [0,4] domain still classify.
func Classify(score float64) models.RiskTier {
	switch {
	case score >= highRiskThreshold:
		return models.RiskHigh
	case score >= mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// HighRiskCount counts responses whose individual average score falls in
// the high tier.
func HighRiskCount(responses []*models.SurveyResponse) int {
	n := 0
	for _, r := range responses {
		if Classify(AverageScore(r)) == models.RiskHigh {
			n++
		}
	}
	return n
}
