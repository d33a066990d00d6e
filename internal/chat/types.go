// Package chat holds the wire contract shared by the relay and its callers,
// and the HTTP transport client that speaks it.
package chat

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func UserMessage(content string) Message      { return Message{Role: RoleUser, Content: content} }
func AssistantMessage(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Request is the body of POST /api/chat. Temperature is a pointer so that an
// absent value is distinguishable from zero.
type Request struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the success body of POST /api/chat.
type Response struct {
	Message Message `json:"message"`
	Usage   Usage   `json:"usage"`
}

// ErrorBody is the failure body of every relay route.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Temperature returns a pointer suitable for Request.Temperature.
func Temperature(t float64) *float64 {
	return &t
}
