// Package stream abstracts the text-generation channel consumed by the
// streaming replacement editor. Every transport delivers Messages whose
// parts carry the cumulative generated text so far, never deltas, so a
// consumer can always replace its applied range with the latest snapshot.
package stream

import "context"

// Status is the channel lifecycle signal.
type Status string

const (
	StatusReady     Status = "ready"
	StatusSubmitted Status = "submitted"
	StatusStreaming Status = "streaming"
	StatusError     Status = "error"
)

// Part is one fragment of a streamed message.
type Part struct {
	Text string `json:"text"`
}

// Message is one streamed snapshot. Its parts concatenate to the cumulative
// generated text.
type Message struct {
	Parts []Part `json:"parts"`
}

// Text concatenates the message parts.
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var out string
	for _, part := range m.Parts {
		out += part.Text
	}
	return out
}

// TextMessage builds a single-part message.
func TextMessage(text string) Message {
	return Message{Parts: []Part{{Text: text}}}
}

// Channel is a streaming text-generation collaborator. Open dispatches the
// prompt and returns the message sequence; the channel closes when the
// generation completes or fails. Stop halts consumption client-side only —
// it makes no attempt to cancel the upstream generation.
type Channel interface {
	Open(ctx context.Context, prompt string) (<-chan Message, error)
	Stop()
	Status() Status
}
