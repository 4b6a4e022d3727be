package services

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/anarkulova/maktab-monitor/internal/models"
)

// AverageScore returns the mean of a response's answered-question scores.
// The divisor is the number of answered questions, not the fixed question
// count; the intake flow guarantees stored rows answer every question, so
// the two only differ for legacy rows. An empty answer map yields 0.
func AverageScore(r *models.SurveyResponse) float64 {
	if len(r.Answers) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r.Answers {
		sum += v
	}
	return float64(sum) / float64(len(r.Answers))
}

// KeyFunc derives a grouping key from a response.
type KeyFunc func(*models.SurveyResponse) string

func ClassroomKey(r *models.SurveyResponse) string {
	return r.User.ClassNumber + "-" + r.User.ClassLetter
}

func SchoolKey(r *models.SurveyResponse) string { return r.User.SchoolNumber }

func BirthYearKey(r *models.SurveyResponse) string { return strconv.Itoa(r.User.BirthYear) }

// SubmissionDateKey buckets by the UTC calendar day of the store-assigned
// creation time.
func SubmissionDateKey(r *models.SurveyResponse) string {
	return time.UnixMilli(r.Timestamp).UTC().Format("2006-01-02")
}

// AggregateBy groups responses by keyFn and emits one Aggregate per
// distinct key. The group value is the unweighted mean of member
// per-response averages (a response with fewer answered questions still
// counts as one member), accumulated at full precision and rounded to two
// decimals only at the end. Output is sorted by AverageRisk descending;
// ties keep first-occurrence key order.
func AggregateBy(responses []*models.SurveyResponse, keyFn KeyFunc) []models.Aggregate {
	type bucket struct {
		sum   float64
		count int
	}
	order := make([]string, 0, 8)
	buckets := map[string]*bucket{}
	for _, r := range responses {
		k := keyFn(r)
		b := buckets[k]
		if b == nil {
			b = &bucket{}
			buckets[k] = b
			order = append(order, k)
		}
		b.sum += AverageScore(r)
		b.count++
	}
	out := make([]models.Aggregate, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		out = append(out, models.Aggregate{
			GroupKey:    k,
			AverageRisk: round2(b.sum / float64(b.count)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRisk > out[j].AverageRisk })
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
