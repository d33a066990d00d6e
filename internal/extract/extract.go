// Package extract pulls a JSON payload out of free-form model output.
//
// The scan is greedy: the payload runs from the first '[' to the last ']' in
// the text. Objects are only considered when the text starts with '{' or has
// no '[' at all. Prose before or after the payload
// is tolerated, but two independent payloads in one reply are decoded as one
// region and fail. Prompts therefore ask for exactly one payload.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoPayload means the text contains no bracketed region at all.
var ErrNoPayload = errors.New("no structured payload found")

// Error is returned when a payload cannot be located or decoded.
type Error struct {
	Raw string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract payload: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Payload locates the structured region of raw and returns it as validated JSON.
func Payload(raw string) (json.RawMessage, error) {
	region, err := locate(raw)
	if err != nil {
		return nil, err
	}
	var msg json.RawMessage
	if err := json.Unmarshal([]byte(region), &msg); err != nil {
		return nil, &Error{Raw: raw, Err: err}
	}
	return msg, nil
}

// Into decodes the structured region of raw into v.
func Into(raw string, v any) error {
	region, err := locate(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(region), v); err != nil {
		return &Error{Raw: raw, Err: err}
	}
	return nil
}

func locate(raw string) (string, error) {
	text := stripFences(strings.TrimSpace(raw))

	// Arrays win over objects unless the text itself is an object, so braces
	// in leading prose do not capture an array reply.
	open, closer := byte('['), byte(']')
	start := strings.IndexByte(text, '[')
	if strings.HasPrefix(text, "{") || start < 0 {
		open, closer = '{', '}'
		start = strings.IndexByte(text, '{')
	}
	if start < 0 {
		return "", &Error{Raw: raw, Err: ErrNoPayload}
	}

	end := strings.LastIndexByte(text, closer)
	if end < start {
		return "", &Error{Raw: raw, Err: fmt.Errorf("unterminated %c region", open)}
	}
	return text[start : end+1], nil
}

// stripFences removes markdown code fence markers such as ```json and ```.
func stripFences(text string) string {
	if !strings.Contains(text, "```") {
		return text
	}
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
