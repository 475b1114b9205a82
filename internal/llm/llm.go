package llm

import (
	"context"
	"errors"
)

// Temperature is the sampling temperature used for keyword generation.
const Temperature = 0.3

var (
	ErrEmptyReply     = errors.New("empty model reply")
	ErrMalformedReply = errors.New("malformed model reply")
)

// Completer sends a single prompt to a chat-completion provider and returns the
// raw text of the first candidate. The API key is per call because provider
// credentials belong to workspaces, not to the process.
type Completer interface {
	// APIType is the api_type under which credentials and usage are recorded.
	APIType() string
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}
