package hermes

import "time"

const (
	SubjectSearchRequested = "scout.search.requested"
	SubjectSearchCompleted = "scout.search.completed"
	SubjectSearchFailed    = "scout.search.failed"
	SubjectChatUsage       = "scout.chat.usage"
)

// SearchRequested asks a worker to run a search against the candidate pool.
type SearchRequested struct {
	RequestID string `json:"request_id"`
	Query     string `json:"query"`
}

type Match struct {
	CandidateID   string `json:"candidate_id"`
	Name          string `json:"name"`
	MetCount      int    `json:"met_count"`
	TotalCriteria int    `json:"total_criteria"`
}

// SearchCompleted carries the ranked matches, highest met count first.
type SearchCompleted struct {
	RequestID string    `json:"request_id"`
	Title     string    `json:"title"`
	Criteria  []string  `json:"criteria"`
	Matches   []Match   `json:"matches"`
	Timestamp time.Time `json:"timestamp"`
}

type SearchFailed struct {
	RequestID string    `json:"request_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatUsage is emitted once per relayed completion.
type ChatUsage struct {
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	Timestamp        time.Time `json:"timestamp"`
}
