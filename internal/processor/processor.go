package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/hermes"
	"github.com/MikeSquared-Agency/scout/internal/search"
)

// Publisher sends an event on a subject. hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

type Searcher interface {
	Search(ctx context.Context, query string, pool []candidate.Candidate) (*search.Result, error)
}

// Processor runs searches requested over the bus and publishes the outcome.
type Processor struct {
	searcher   Searcher
	candidates candidate.Source
	publisher  Publisher
	timeout    time.Duration
	logger     *slog.Logger
}

func New(searcher Searcher, candidates candidate.Source, publisher Publisher, timeout time.Duration, logger *slog.Logger) *Processor {
	return &Processor{
		searcher:   searcher,
		candidates: candidates,
		publisher:  publisher,
		timeout:    timeout,
		logger:     logger,
	}
}

// HandleSearchRequested is the NATS handler for scout.search.requested.
func (p *Processor) HandleSearchRequested(subject string, data []byte) {
	var evt hermes.SearchRequested
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse search request", "subject", subject, "error", err)
		return
	}
	if evt.RequestID == "" {
		evt.RequestID = uuid.NewString()
	}

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.logger.Info("processing search request", "request_id", evt.RequestID)

	completed, err := p.run(ctx, evt)
	if err != nil {
		p.logger.Error("search request failed", "request_id", evt.RequestID, "error", err)
		p.publish(hermes.SubjectSearchFailed, hermes.SearchFailed{
			RequestID: evt.RequestID,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	p.logger.Info("search request completed",
		"request_id", evt.RequestID,
		"criteria", len(completed.Criteria),
		"matches", len(completed.Matches),
	)
	p.publish(hermes.SubjectSearchCompleted, completed)
}

func (p *Processor) run(ctx context.Context, evt hermes.SearchRequested) (*hermes.SearchCompleted, error) {
	query := strings.TrimSpace(evt.Query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	pool, err := p.candidates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	res, err := p.searcher.Search(ctx, query, pool)
	if err != nil {
		return nil, err
	}
	return completedEvent(evt.RequestID, res), nil
}

func completedEvent(requestID string, res *search.Result) *hermes.SearchCompleted {
	criteria := make([]string, len(res.Criteria))
	for i, c := range res.Criteria {
		criteria[i] = c.Description
	}
	matches := make([]hermes.Match, len(res.Evaluations))
	for i, e := range res.Evaluations {
		matches[i] = hermes.Match{
			CandidateID:   e.Candidate.ID,
			Name:          e.Candidate.Name,
			MetCount:      e.MetCount,
			TotalCriteria: e.TotalCriteria,
		}
	}
	return &hermes.SearchCompleted{
		RequestID: requestID,
		Title:     res.Title,
		Criteria:  criteria,
		Matches:   matches,
		Timestamp: time.Now().UTC(),
	}
}

func (p *Processor) publish(subject string, data any) {
	if err := p.publisher.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish", "subject", subject, "error", err)
	}
}
