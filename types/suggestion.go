package types

// Suggestion is an ephemeral move candidate proposed by the AI. It is never
// persisted; the ID exists only for list diffing and removal after adoption.
type Suggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SuggestionsResponse struct {
	Success      bool         `json:"success"`
	Suggestions  []Suggestion `json:"suggestions,omitempty"`
	ErrorMessage string       `json:"error,omitempty"`
}
