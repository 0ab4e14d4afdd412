package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Request is the vendor-agnostic shape of a suggestion call: a prompt, a hint
// describing the JSON shape the response should take, and generation limits.
type Request struct {
	Prompt          string
	ResponseShape   string // JSON-schema-ish hint embedded in the vendor payload
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// Client is the only contract the engine has with the generative AI service:
// send a request, get back raw text or an error, within the timeout.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// StatusError is an explicit unsuccessful response from the service, as
// opposed to a transport failure. The raw body is kept for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI service returned status %d", e.StatusCode)
}

// FromEnv picks the configured provider. Gemini is the only one wired today.
func FromEnv() (Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	return NewGeminiClient(apiKey), nil
}
