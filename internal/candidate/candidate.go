// Package candidate defines the candidate record the extraction tasks read,
// and the sources that supply it.
package candidate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("candidate not found")

type Candidate struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email"`
	Phone             string       `json:"phone"`
	Location          string       `json:"location"`
	CurrentRole       string       `json:"current_role"`
	CurrentCompany    string       `json:"current_company"`
	YearsOfExperience int          `json:"years_of_experience"`
	LinkedIn          string       `json:"linkedin"`
	FitLevel          string       `json:"fit_level"` // strong | good | weak
	Summary           string       `json:"summary"`
	Skills            []string     `json:"skills"`
	Education         []Education  `json:"education"`
	Experience        []Experience `json:"experience"`
	ResumeFile        string       `json:"resume_file"`
}

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   int    `json:"year"`
	Focus  string `json:"focus,omitempty"`
}

type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Location   string   `json:"location"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Highlights []string `json:"highlights"`
}

// Source supplies the candidate pool a search runs against.
type Source interface {
	List(ctx context.Context) ([]Candidate, error)
	Get(ctx context.Context, id string) (Candidate, error)
}

// Profile renders the candidate for criteria evaluation prompts.
func (c Candidate) Profile() string {
	edu := make([]string, len(c.Education))
	for i, e := range c.Education {
		s := fmt.Sprintf("%s from %s (%d)", e.Degree, e.School, e.Year)
		if e.Focus != "" {
			s += " - Focus: " + e.Focus
		}
		edu[i] = s
	}
	exp := make([]string, len(c.Experience))
	for i, e := range c.Experience {
		exp[i] = fmt.Sprintf("%s at %s (%s) - %s to %s: %s",
			e.Title, e.Company, e.Location, e.StartDate, e.EndDate, strings.Join(e.Highlights, "; "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Location: %s\n", c.Location)
	fmt.Fprintf(&b, "Current Role: %s\n", c.CurrentRole)
	fmt.Fprintf(&b, "Current Company: %s\n", c.CurrentCompany)
	fmt.Fprintf(&b, "Years of Experience: %d\n", c.YearsOfExperience)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "Summary: %s\n", c.Summary)
	fmt.Fprintf(&b, "Education: %s\n", strings.Join(edu, "; "))
	fmt.Fprintf(&b, "Experience: %s", strings.Join(exp, " | "))
	return b.String()
}

// Context renders the shorter profile used for summaries, tags and the
// profile criteria checklist.
func (c Candidate) Context() string {
	edu := make([]string, len(c.Education))
	for i, e := range c.Education {
		edu[i] = fmt.Sprintf("%s from %s (%d)", e.Degree, e.School, e.Year)
	}
	exp := make([]string, len(c.Experience))
	for i, e := range c.Experience {
		exp[i] = fmt.Sprintf("%s at %s (%s - %s): %s",
			e.Title, e.Company, e.StartDate, e.EndDate, strings.Join(e.Highlights, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", c.Name)
	fmt.Fprintf(&b, "Current Role: %s\n", c.CurrentRole)
	fmt.Fprintf(&b, "Current Company: %s\n", c.CurrentCompany)
	fmt.Fprintf(&b, "Location: %s\n", c.Location)
	fmt.Fprintf(&b, "Years of Experience: %d\n", c.YearsOfExperience)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "Summary: %s\n", c.Summary)
	fmt.Fprintf(&b, "Education: %s\n", strings.Join(edu, "; "))
	fmt.Fprintf(&b, "Experience: %s", strings.Join(exp, "; "))
	return b.String()
}

// StaticSource serves a fixed in-memory pool.
type StaticSource struct {
	candidates []Candidate
}

func NewStaticSource(candidates []Candidate) *StaticSource {
	return &StaticSource{candidates: candidates}
}

func (s *StaticSource) List(_ context.Context) ([]Candidate, error) {
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func (s *StaticSource) Get(_ context.Context, id string) (Candidate, error) {
	for _, c := range s.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
