package models

// Language selects the survey locale. The app serves Uzbek and Russian only.
type Language string

const (
	LangUz Language = "uz"
	LangRu Language = "ru"
)

// ParseLanguage normalizes a client-supplied locale; Uzbek is the default.
func ParseLanguage(s string) Language {
	if s == string(LangRu) {
		return LangRu
	}
	return LangUz
}

// Question is one survey item with localized text. The question list is
// fixed at compile time; list order is the canonical display order.
type Question struct {
	ID   string              `json:"id"`
	Text map[Language]string `json:"text"`
}

// UserRegistration holds the intake form fields. It is embedded by value
// into each SurveyResponse and never mutated after submission.
type UserRegistration struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthYear    int    `json:"birth_year"`
	SchoolNumber string `json:"school_number"`
	ClassNumber  string `json:"class_number"`
	ClassLetter  string `json:"class_letter"`
}

// SurveyResponse is one completed submission. ID and Timestamp are
// store-assigned; Answers maps question id to a score in [0,4].
type SurveyResponse struct {
	ID        string           `json:"id"`
	Timestamp int64            `json:"timestamp"` // epoch millis
	User      UserRegistration `json:"user"`
	Answers   map[string]int   `json:"answers"`
}

// Aggregate is a derived group-level statistic; it is never persisted.
type Aggregate struct {
	GroupKey    string  `json:"name"`
	AverageRisk float64 `json:"average_risk"`
}

// RiskTier is the ordinal risk classification of an average score.
type RiskTier int

const (
	RiskLow RiskTier = iota
	RiskMedium
	RiskHigh
)

func (t RiskTier) String() string {
	switch t {
	case RiskHigh:
		return "high"
	case RiskMedium:
		return "medium"
	default:
		return "low"
	}
}

var riskLabels = map[Language][3]string{
	LangUz: {"Past", "O'rta", "Yuqori"},
	LangRu: {"Низкий", "Средний", "Высокий"},
}

// Label returns the localized badge text for the tier.
func (t RiskTier) Label(lang Language) string {
	labels, ok := riskLabels[lang]
	if !ok {
		labels = riskLabels[LangUz]
	}
	switch t {
	case RiskHigh:
		return labels[2]
	case RiskMedium:
		return labels[1]
	default:
		return labels[0]
	}
}
