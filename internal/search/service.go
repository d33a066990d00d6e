// Package search turns recruiter queries and candidate profiles into typed
// results by prompting a chat model and decoding its reply. Every task has a
// conservative fallback, so only criteria parsing and title generation can
// fail outward.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/chat"
	"github.com/MikeSquared-Agency/scout/internal/extract"
	"github.com/MikeSquared-Agency/scout/internal/prompts"
)

// ErrNoCriteria means the query produced nothing a search can run against.
var ErrNoCriteria = errors.New("no criteria could be extracted from the search prompt")

const (
	maxTitleLen  = 200
	maxFallbacks = 8

	reasonEvaluationFailed = "Evaluation failed"
	reasonUnableToEvaluate = "Unable to evaluate"

	assistantFallback = "Sorry, I encountered an error. Please try again."
)

// Sender delivers one chat request. Both the HTTP transport client and the
// in-process relay satisfy it.
type Sender interface {
	Send(ctx context.Context, req chat.Request) (*chat.Response, error)
}

type Service struct {
	sender      Sender
	model       string
	concurrency int
	logger      *slog.Logger
}

// New builds a Service. An empty model lets the relay pick its default.
func New(sender Sender, model string, logger *slog.Logger) *Service {
	return &Service{sender: sender, model: model, logger: logger}
}

// SetConcurrency bounds in-flight evaluations in EvaluateAll. Zero or less
// starts every evaluation at once.
func (s *Service) SetConcurrency(n int) {
	s.concurrency = n
}

func (s *Service) complete(ctx context.Context, tmpl prompts.Template, user string) (string, error) {
	resp, err := s.sender.Send(ctx, tmpl.Request(s.model, user))
	if err != nil {
		return "", fmt.Errorf("%s: %w", tmpl.Name, err)
	}
	return resp.Message.Content, nil
}

// ParseCriteria breaks a free-text query into criteria.
func (s *Service) ParseCriteria(ctx context.Context, query string) ([]Criterion, error) {
	raw, err := s.complete(ctx, prompts.CriteriaParsing, prompts.CriteriaParsingUser(query))
	if err != nil {
		s.logger.Error("criteria parsing failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNoCriteria, err)
	}

	var parsed []Criterion
	if err := extract.Into(raw, &parsed); err != nil {
		s.logger.Warn("failed to parse criteria response", "error", err, "raw", raw)
		return nil, fmt.Errorf("%w: %w", ErrNoCriteria, err)
	}

	criteria := normalizeCriteria(parsed)
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}

	s.logger.Info("criteria parsed", "count", len(criteria))
	return criteria, nil
}

// normalizeCriteria drops blank entries, maps unknown categories to other and
// guarantees ids are present and unique.
func normalizeCriteria(parsed []Criterion) []Criterion {
	out := make([]Criterion, 0, len(parsed))
	seen := make(map[string]bool, len(parsed))
	for _, c := range parsed {
		c.Description = strings.TrimSpace(c.Description)
		if c.Description == "" {
			continue
		}
		c.Category = Category(strings.ToLower(strings.TrimSpace(string(c.Category))))
		if !c.Category.valid() {
			c.Category = CategoryOther
		}
		c.ID = strings.TrimSpace(c.ID)
		for n := len(out) + 1; c.ID == "" || seen[c.ID]; n++ {
			c.ID = fmt.Sprintf("criterion_%d", n)
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

type verdict struct {
	CriterionID string    `json:"criterion_id"`
	Met         looseBool `json:"met"`
	Reason      string    `json:"reason"`
}

// EvaluateCandidate checks one candidate against criteria. The result has one
// entry per criterion, in criteria order. Criteria the model skipped are
// reported as not met; on any failure every criterion is reported as not met.
func (s *Service) EvaluateCandidate(ctx context.Context, c candidate.Candidate, criteria []Criterion) []CriterionResult {
	criteriaJSON, err := json.MarshalIndent(criteria, "", "  ")
	if err != nil {
		return failedResults(criteria)
	}

	raw, err := s.complete(ctx, prompts.CriteriaEvaluation, prompts.CriteriaEvaluationUser(c.Profile(), string(criteriaJSON)))
	if err != nil {
		s.logger.Warn("candidate evaluation failed", "candidate_id", c.ID, "error", err)
		return failedResults(criteria)
	}

	var verdicts []verdict
	if err := extract.Into(raw, &verdicts); err != nil {
		s.logger.Warn("failed to parse evaluation response", "candidate_id", c.ID, "error", err, "raw", raw)
		return failedResults(criteria)
	}

	byID := make(map[string]verdict, len(verdicts))
	for _, v := range verdicts {
		if _, dup := byID[v.CriterionID]; !dup {
			byID[v.CriterionID] = v
		}
	}

	results := make([]CriterionResult, len(criteria))
	for i, cr := range criteria {
		v, ok := byID[cr.ID]
		if !ok {
			results[i] = CriterionResult{Criterion: cr, Met: false, Reason: reasonUnableToEvaluate}
			continue
		}
		reason := strings.TrimSpace(v.Reason)
		if reason == "" {
			reason = reasonUnableToEvaluate
		}
		results[i] = CriterionResult{Criterion: cr, Met: bool(v.Met), Reason: reason}
	}
	return results
}

func failedResults(criteria []Criterion) []CriterionResult {
	results := make([]CriterionResult, len(criteria))
	for i, cr := range criteria {
		results[i] = CriterionResult{Criterion: cr, Met: false, Reason: reasonEvaluationFailed}
	}
	return results
}

// GenerateTags returns short profile tags, or the first eight skills.
func (s *Service) GenerateTags(ctx context.Context, c candidate.Candidate) []string {
	raw, err := s.complete(ctx, prompts.Tags, prompts.TagsUser(c.Context()))
	if err != nil {
		s.logger.Warn("tag generation failed", "candidate_id", c.ID, "error", err)
		return fallbackTags(c)
	}

	var parsed []string
	if err := extract.Into(raw, &parsed); err != nil {
		s.logger.Warn("failed to parse tags response", "candidate_id", c.ID, "error", err, "raw", raw)
		return fallbackTags(c)
	}

	tags := make([]string, 0, len(parsed))
	for _, t := range parsed {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return fallbackTags(c)
	}
	return tags
}

func fallbackTags(c candidate.Candidate) []string {
	n := min(len(c.Skills), maxFallbacks)
	out := make([]string, n)
	copy(out, c.Skills[:n])
	return out
}

// GenerateSummary returns a short summary with **bold** highlights, or the
// candidate's stored summary.
func (s *Service) GenerateSummary(ctx context.Context, c candidate.Candidate) string {
	raw, err := s.complete(ctx, prompts.Summary, prompts.SummaryUser(c.Context()))
	if err != nil {
		s.logger.Warn("summary generation failed", "candidate_id", c.ID, "error", err)
		return c.Summary
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		return c.Summary
	}
	return summary
}

// SummarizeTitle names the search. Transport failures are returned.
func (s *Service) SummarizeTitle(ctx context.Context, query string) (string, error) {
	raw, err := s.complete(ctx, prompts.Title, prompts.TitleUser(query))
	if err != nil {
		return "", err
	}
	return truncateTitle(raw), nil
}

func truncateTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if len(title) >= 2 && title[0] == '"' && title[len(title)-1] == '"' {
		title = strings.TrimSpace(title[1 : len(title)-1])
	}
	if utf8.RuneCountInString(title) <= maxTitleLen {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxTitleLen-3]) + "..."
}

type profileVerdict struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// EvaluateProfile checks a candidate against checklist labels. An empty label
// list uses prompts.DefaultProfileCriteria. The result always has one entry
// per label; anything the model did not settle is StatusUnknown.
func (s *Service) EvaluateProfile(ctx context.Context, c candidate.Candidate, labels []string) []ProfileCriterion {
	if len(labels) == 0 {
		labels = prompts.DefaultProfileCriteria
	}

	out := make([]ProfileCriterion, len(labels))
	for i, l := range labels {
		out[i] = ProfileCriterion{ID: strconv.Itoa(i + 1), Label: l, Status: StatusUnknown}
	}

	raw, err := s.complete(ctx, prompts.ProfileEvaluation, prompts.ProfileEvaluationUser(c.Context(), labels))
	if err != nil {
		s.logger.Warn("profile evaluation failed", "candidate_id", c.ID, "error", err)
		return out
	}

	var parsed []profileVerdict
	if err := extract.Into(raw, &parsed); err != nil {
		s.logger.Warn("failed to parse profile evaluation", "candidate_id", c.ID, "error", err, "raw", raw)
		return out
	}

	for i := range out {
		if i >= len(parsed) {
			break
		}
		switch Status(strings.ToLower(strings.TrimSpace(parsed[i].Status))) {
		case StatusMet:
			out[i].Status = StatusMet
		case StatusNotMet:
			out[i].Status = StatusNotMet
		}
		out[i].Reason = strings.TrimSpace(parsed[i].Reason)
	}
	return out
}

// Reply answers the latest turn of an assistant conversation.
func (s *Service) Reply(ctx context.Context, history []chat.Message) string {
	resp, err := s.sender.Send(ctx, prompts.Assistant.Conversation(s.model, history))
	if err != nil {
		s.logger.Warn("assistant reply failed", "error", err)
		return assistantFallback
	}
	reply := strings.TrimSpace(resp.Message.Content)
	if reply == "" {
		return assistantFallback
	}
	return reply
}
