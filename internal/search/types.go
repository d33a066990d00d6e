package search

import (
	"encoding/json"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
)

type Category string

const (
	CategoryLocation   Category = "location"
	CategoryRole       Category = "role"
	CategoryExperience Category = "experience"
	CategorySkills     Category = "skills"
	CategoryCompany    Category = "company"
	CategoryEducation  Category = "education"
	CategoryOther      Category = "other"
)

func (c Category) valid() bool {
	switch c {
	case CategoryLocation, CategoryRole, CategoryExperience, CategorySkills,
		CategoryCompany, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// Criterion is one independently checkable requirement parsed from a query.
type Criterion struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}

type CriterionResult struct {
	Criterion Criterion `json:"criterion"`
	Met       bool      `json:"met"`
	Reason    string    `json:"reason"`
}

// Evaluation is one candidate checked against the full criteria list.
// MetCount is always derived from CriteriaResults.
type Evaluation struct {
	Candidate       candidate.Candidate `json:"candidate"`
	CriteriaResults []CriterionResult   `json:"criteria_results"`
	MetCount        int                 `json:"met_count"`
	TotalCriteria   int                 `json:"total_criteria"`
}

func newEvaluation(c candidate.Candidate, results []CriterionResult, total int) Evaluation {
	met := 0
	for _, r := range results {
		if r.Met {
			met++
		}
	}
	return Evaluation{Candidate: c, CriteriaResults: results, MetCount: met, TotalCriteria: total}
}

type Status string

const (
	StatusMet     Status = "met"
	StatusNotMet  Status = "not_met"
	StatusUnknown Status = "unknown"
)

// ProfileCriterion is the checklist item shown on a candidate profile.
// StatusUnknown is both the pending and the failed state.
type ProfileCriterion struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type Result struct {
	Title       string       `json:"title"`
	Criteria    []Criterion  `json:"criteria"`
	Evaluations []Evaluation `json:"evaluations"`
}

type Insights struct {
	Summary  string             `json:"summary"`
	Tags     []string           `json:"tags"`
	Criteria []ProfileCriterion `json:"criteria"`
}

// looseBool accepts true/false as well as the string spellings models
// sometimes produce. Anything unrecognised is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = looseBool(t)
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "met":
			*b = true
		default:
			*b = false
		}
	default:
		*b = false
	}
	return nil
}
