package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/chat"
	"github.com/MikeSquared-Agency/scout/internal/prompts"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSender answers every request with canned text chosen by reply.
type fakeSender struct {
	mu    sync.Mutex
	calls []chat.Request
	reply func(req chat.Request) (string, error)
}

func (f *fakeSender) Send(_ context.Context, req chat.Request) (*chat.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	content, err := f.reply(req)
	if err != nil {
		return nil, err
	}
	return &chat.Response{Message: chat.AssistantMessage(content)}, nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func canned(content string) *fakeSender {
	return &fakeSender{reply: func(chat.Request) (string, error) { return content, nil }}
}

func failing() *fakeSender {
	return &fakeSender{reply: func(chat.Request) (string, error) {
		return "", &chat.TransportError{Status: 500, Message: "relay unreachable"}
	}}
}

func is(req chat.Request, tmpl prompts.Template) bool {
	return req.Messages[0].Content == tmpl.System
}

var threeCriteria = []Criterion{
	{ID: "criterion_1", Description: "Based in the Bay Area", Category: CategoryLocation},
	{ID: "criterion_2", Description: "Machine Learning Engineer role or background", Category: CategoryRole},
	{ID: "criterion_3", Description: "5 or more years of experience", Category: CategoryExperience},
}

func TestParseCriteria_Success(t *testing.T) {
	sender := canned("```json\n" + `[
  {"id": "criterion_1", "description": "Based in the Bay Area", "category": "location"},
  {"id": "criterion_2", "description": "Machine Learning Engineer role or background", "category": "role"},
  {"id": "criterion_3", "description": "5 or more years of experience", "category": "experience"}
]` + "\n```")
	s := New(sender, "gpt-4o", discardLogger())

	got, err := s.ParseCriteria(context.Background(), "bay area ml eng with 5+ years")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 criteria, got %d", len(got))
	}
	for i, want := range threeCriteria {
		if got[i] != want {
			t.Errorf("criterion %d = %+v, want %+v", i, got[i], want)
		}
	}

	req := sender.calls[0]
	if req.Model != "gpt-4o" || *req.Temperature != 0.1 {
		t.Errorf("unexpected request params model=%q temp=%v", req.Model, *req.Temperature)
	}
	if req.Messages[1].Content != "bay area ml eng with 5+ years" {
		t.Errorf("query not sent as user message: %q", req.Messages[1].Content)
	}
}

func TestParseCriteria_Normalizes(t *testing.T) {
	sender := canned(`Here you go: [
  {"id": "criterion_1", "description": " Knows PyTorch ", "category": "SKILLS"},
  {"id": "criterion_1", "description": "Startup background", "category": "company"},
  {"description": "Speaks Spanish", "category": "language"},
  {"id": "criterion_9", "description": "   ", "category": "other"}
]`)
	s := New(sender, "", discardLogger())

	got, err := s.ParseCriteria(context.Background(), "pytorch startup folks who speak spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Criterion{
		{ID: "criterion_1", Description: "Knows PyTorch", Category: CategorySkills},
		{ID: "criterion_2", Description: "Startup background", Category: CategoryCompany},
		{ID: "criterion_3", Description: "Speaks Spanish", Category: CategoryOther},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d criteria, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("criterion %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseCriteria_Failures(t *testing.T) {
	tests := []struct {
		name   string
		sender *fakeSender
	}{
		{"transport failure", failing()},
		{"no payload", canned("I'm not sure what you are looking for.")},
		{"malformed payload", canned(`[{"id": "criterion_1",`)},
		{"empty array", canned("[]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.sender, "", discardLogger())
			got, err := s.ParseCriteria(context.Background(), "anything")
			if !errors.Is(err, ErrNoCriteria) {
				t.Fatalf("expected ErrNoCriteria, got %v", err)
			}
			if got != nil {
				t.Errorf("expected no criteria, got %+v", got)
			}
		})
	}
}

func TestEvaluateCandidate_Success(t *testing.T) {
	sender := canned(`[
  {"criterion_id": "criterion_2", "met": true, "reason": "Current role is ML Engineer"},
  {"criterion_id": "criterion_1", "met": "yes", "reason": "San Francisco is in the Bay Area"},
  {"criterion_id": "criterion_3", "met": false, "reason": "Only 2 years"}
]`)
	s := New(sender, "", discardLogger())
	c := candidate.Fixtures()[0]

	got := s.EvaluateCandidate(context.Background(), c, threeCriteria)

	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	wantMet := []bool{true, true, false}
	for i, r := range got {
		if r.Criterion != threeCriteria[i] {
			t.Errorf("result %d out of criteria order: %+v", i, r.Criterion)
		}
		if r.Met != wantMet[i] {
			t.Errorf("result %d met = %v, want %v", i, r.Met, wantMet[i])
		}
	}
	if got[0].Reason != "San Francisco is in the Bay Area" {
		t.Errorf("unexpected reason %q", got[0].Reason)
	}

	user := sender.calls[0].Messages[1].Content
	if !strings.Contains(user, "Name: Sarah Chen") || !strings.Contains(user, `"id": "criterion_1"`) {
		t.Errorf("user prompt missing profile or criteria:\n%s", user)
	}
	if *sender.calls[0].Temperature != 0.1 {
		t.Errorf("expected temperature 0.1, got %v", *sender.calls[0].Temperature)
	}
}

func TestEvaluateCandidate_BackfillsMissing(t *testing.T) {
	sender := canned(`[
  {"criterion_id": "criterion_1", "met": true, "reason": "Oakland"},
  {"criterion_id": "criterion_99", "met": true, "reason": "unknown criterion"}
]`)
	s := New(sender, "", discardLogger())

	got := s.EvaluateCandidate(context.Background(), candidate.Fixtures()[1], threeCriteria)

	if len(got) != len(threeCriteria) {
		t.Fatalf("expected %d results, got %d", len(threeCriteria), len(got))
	}
	if !got[0].Met {
		t.Error("criterion_1 should be met")
	}
	for _, r := range got[1:] {
		if r.Met || r.Reason != "Unable to evaluate" {
			t.Errorf("missing result should backfill as unmet, got %+v", r)
		}
	}
}

func TestEvaluateCandidate_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		sender *fakeSender
	}{
		{"transport failure", failing()},
		{"no payload", canned("The candidate looks great!")},
		{"malformed payload", canned(`[{"criterion_id": "criterion_1", "met": tru}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.sender, "", discardLogger())
			got := s.EvaluateCandidate(context.Background(), candidate.Fixtures()[0], threeCriteria)

			if len(got) != len(threeCriteria) {
				t.Fatalf("expected one result per criterion, got %d", len(got))
			}
			for i, r := range got {
				if r.Met {
					t.Errorf("result %d must not be met on failure", i)
				}
				if r.Reason != "Evaluation failed" {
					t.Errorf("unexpected reason %q", r.Reason)
				}
				if r.Criterion.ID != threeCriteria[i].ID {
					t.Errorf("result %d has criterion %q", i, r.Criterion.ID)
				}
			}
		})
	}
}

func TestGenerateTags(t *testing.T) {
	c := candidate.Fixtures()[0]

	t.Run("success", func(t *testing.T) {
		sender := canned(`Tags: ["PyTorch", " Stanford PhD ", "", "ML Infrastructure", "Team Lead", "Anthropic", "Kubernetes"]`)
		s := New(sender, "", discardLogger())

		got := s.GenerateTags(context.Background(), c)
		want := []string{"PyTorch", "Stanford PhD", "ML Infrastructure", "Team Lead", "Anthropic", "Kubernetes"}
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("got %v, want %v", got, want)
		}
		if *sender.calls[0].Temperature != 0.5 {
			t.Errorf("expected temperature 0.5")
		}
	})

	for name, sender := range map[string]*fakeSender{
		"transport failure": failing(),
		"no payload":        canned("PyTorch, Go, AWS"),
		"empty array":       canned("[]"),
	} {
		t.Run(name, func(t *testing.T) {
			s := New(sender, "", discardLogger())
			got := s.GenerateTags(context.Background(), c)
			if strings.Join(got, "|") != strings.Join(c.Skills[:8], "|") {
				t.Errorf("expected first 8 skills, got %v", got)
			}
		})
	}

	t.Run("fallback with few skills", func(t *testing.T) {
		short := candidate.Candidate{ID: "x", Skills: []string{"Go", "SQL"}}
		s := New(failing(), "", discardLogger())
		got := s.GenerateTags(context.Background(), short)
		if len(got) != 2 {
			t.Errorf("expected 2 tags, got %v", got)
		}
	})
}

func TestGenerateSummary(t *testing.T) {
	c := candidate.Fixtures()[0]

	s := New(canned("  **8 years** building ML systems at **Anthropic**.  "), "", discardLogger())
	if got := s.GenerateSummary(context.Background(), c); got != "**8 years** building ML systems at **Anthropic**." {
		t.Errorf("unexpected summary %q", got)
	}

	for name, sender := range map[string]*fakeSender{
		"transport failure": failing(),
		"blank reply":       canned("   "),
	} {
		t.Run(name, func(t *testing.T) {
			s := New(sender, "", discardLogger())
			if got := s.GenerateSummary(context.Background(), c); got != c.Summary {
				t.Errorf("expected stored summary, got %q", got)
			}
		})
	}
}

func TestSummarizeTitle(t *testing.T) {
	long := strings.Repeat("a", 250)

	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"plain", "Bay Area ML Engineers\n", "Bay Area ML Engineers"},
		{"quoted", `"Bay Area ML Engineers"`, "Bay Area ML Engineers"},
		{"exactly 200", strings.Repeat("b", 200), strings.Repeat("b", 200)},
		{"truncated", long, strings.Repeat("a", 197) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := canned(tt.reply)
			s := New(sender, "", discardLogger())

			got, err := s.SummarizeTitle(context.Background(), "bay area ml eng")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len([]rune(got)) > 200 {
				t.Errorf("title longer than 200 characters: %d", len(got))
			}
			if *sender.calls[0].Temperature != 0.3 {
				t.Errorf("expected temperature 0.3")
			}
		})
	}
}

func TestSummarizeTitle_TruncatesTo200(t *testing.T) {
	s := New(canned(strings.Repeat("x", 250)), "", discardLogger())
	got, _ := s.SummarizeTitle(context.Background(), "q")
	if len(got) != 200 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 200 characters ending in ellipsis, got %d %q", len(got), got[len(got)-5:])
	}
}

func TestSummarizeTitle_TransportFailurePropagates(t *testing.T) {
	s := New(failing(), "", discardLogger())
	_, err := s.SummarizeTitle(context.Background(), "q")
	var te *chat.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestEvaluateProfile(t *testing.T) {
	c := candidate.Fixtures()[0]
	labels := []string{"Based in SF", "Knows Go", "Has a PhD"}

	sender := canned(`[
  {"id": "1", "label": "Based in SF", "status": "met", "reason": "Lives in San Francisco"},
  {"id": "2", "label": "Knows Go", "status": "NOT_MET", "reason": "Not listed"}
]`)
	s := New(sender, "", discardLogger())

	got := s.EvaluateProfile(context.Background(), c, labels)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	want := []ProfileCriterion{
		{ID: "1", Label: "Based in SF", Status: StatusMet, Reason: "Lives in San Francisco"},
		{ID: "2", Label: "Knows Go", Status: StatusNotMet, Reason: "Not listed"},
		{ID: "3", Label: "Has a PhD", Status: StatusUnknown},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if *sender.calls[0].Temperature != 0.3 {
		t.Errorf("expected temperature 0.3")
	}
	if !strings.Contains(sender.calls[0].Messages[1].Content, "3. Has a PhD") {
		t.Errorf("labels not numbered in prompt")
	}
}

func TestEvaluateProfile_Fallback(t *testing.T) {
	s := New(failing(), "", discardLogger())
	got := s.EvaluateProfile(context.Background(), candidate.Fixtures()[0], nil)

	if len(got) != len(prompts.DefaultProfileCriteria) {
		t.Fatalf("expected default criteria, got %d items", len(got))
	}
	for i, item := range got {
		if item.Status != StatusUnknown {
			t.Errorf("item %d status = %q, want unknown", i, item.Status)
		}
		if item.ID != fmt.Sprint(i+1) || item.Label != prompts.DefaultProfileCriteria[i] {
			t.Errorf("unexpected item %+v", item)
		}
	}
}

func TestReply(t *testing.T) {
	history := []chat.Message{chat.UserMessage("How many candidates are in the pipeline?")}

	sender := canned("There are 12 candidates.")
	s := New(sender, "", discardLogger())
	if got := s.Reply(context.Background(), history); got != "There are 12 candidates." {
		t.Errorf("unexpected reply %q", got)
	}
	req := sender.calls[0]
	if len(req.Messages) != 2 || req.Messages[0].Role != chat.RoleSystem {
		t.Errorf("expected system prompt plus history, got %+v", req.Messages)
	}
	if req.Temperature != nil {
		t.Error("assistant should not set a temperature")
	}

	s = New(failing(), "", discardLogger())
	if got := s.Reply(context.Background(), history); got != "Sorry, I encountered an error. Please try again." {
		t.Errorf("unexpected fallback %q", got)
	}
}
