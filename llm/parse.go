package llm

import (
	"clementus360/momentum/config"
	"clementus360/momentum/types"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// suggestionItem is the wire shape of a single suggested move.
type suggestionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MoveDetail is the wire shape of a detail-level rewrite.
type MoveDetail struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationSeconds float64  `json:"duration_seconds"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
}

// SMARTGoal is the wire shape of a SMART goal rewrite.
type SMARTGoal struct {
	SmartTitle       string `json:"smart_title"`
	SmartDescription string `json:"smart_description"`
	// Some responses come back with plain field names instead
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ParseSuggestions turns raw response text into suggestion records, degrading
// through strict decode, wrapped-container decode, and regex extraction before
// giving up. The first strategy that yields anything wins.
func ParseSuggestions(text string) ([]types.Suggestion, error) {
	trimmed := trimToJSON(text)

	if items, ok := decodeSuggestionArray(trimmed); ok {
		return toSuggestions(items), nil
	}

	if items, ok := decodeWrappedSuggestions(trimmed); ok {
		config.Logger.Info("Parsed suggestions from wrapped container")
		return toSuggestions(items), nil
	}

	if items, ok := extractSuggestionsWithRegex(text); ok {
		config.Logger.Info("Parsed suggestions via regex fallback")
		return toSuggestions(items), nil
	}

	if items, ok := salvageQuotedTitles(text); ok {
		config.Logger.Warn("Salvaged suggestions from quoted strings")
		return toSuggestions(items), nil
	}

	return nil, fmt.Errorf("no suggestions found in response")
}

// Strategy 1: the response is the expected JSON array.
func decodeSuggestionArray(text string) ([]suggestionItem, bool) {
	var items []suggestionItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, false
	}
	items = dropEmptyItems(items)
	return items, len(items) > 0
}

// Strategy 2: the array is nested under a named field, e.g. {"moves": [...]}.
func decodeWrappedSuggestions(text string) ([]suggestionItem, bool) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
		return nil, false
	}

	// Known wrapper names first, then anything that decodes
	for _, key := range []string{"suggestions", "moves", "steps", "action_items", "items"} {
		if raw, exists := wrapper[key]; exists {
			if items, ok := decodeSuggestionArray(string(raw)); ok {
				return items, true
			}
		}
	}
	for _, raw := range wrapper {
		if items, ok := decodeSuggestionArray(string(raw)); ok {
			return items, true
		}
	}
	return nil, false
}

var (
	titleFirstRegex = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"\s*,\s*"description"\s*:\s*"([^"]*)"`)
	descFirstRegex  = regexp.MustCompile(`"description"\s*:\s*"([^"]*)"\s*,\s*"title"\s*:\s*"([^"]+)"`)
	quotedRegex     = regexp.MustCompile(`"([^"\n]{8,80})"`)
)

// Strategy 3: the JSON is malformed but title/description pairs are visible.
// Both field orderings are tried; the one matching more pairs wins.
func extractSuggestionsWithRegex(text string) ([]suggestionItem, bool) {
	var items []suggestionItem

	titleFirst := titleFirstRegex.FindAllStringSubmatch(text, -1)
	descFirst := descFirstRegex.FindAllStringSubmatch(text, -1)

	if len(titleFirst) >= len(descFirst) {
		for _, match := range titleFirst {
			items = append(items, suggestionItem{Title: match[1], Description: match[2]})
		}
	} else {
		for _, match := range descFirst {
			items = append(items, suggestionItem{Title: match[2], Description: match[1]})
		}
	}

	items = dropEmptyItems(items)
	return items, len(items) > 0
}

// Strategy 4: last resort, treat quoted strings of plausible title length as
// titles with a placeholder description.
func salvageQuotedTitles(text string) ([]suggestionItem, bool) {
	var items []suggestionItem
	for _, match := range quotedRegex.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(match[1])
		if candidate == "" || strings.Contains(candidate, ":") {
			continue
		}
		items = append(items, suggestionItem{
			Title:       candidate,
			Description: "Suggested step (details unavailable)",
		})
		if len(items) == 5 {
			break
		}
	}
	return items, len(items) > 0
}

func dropEmptyItems(items []suggestionItem) []suggestionItem {
	var kept []suggestionItem
	for _, item := range items {
		if strings.TrimSpace(item.Title) != "" {
			kept = append(kept, item)
		}
	}
	return kept
}

func toSuggestions(items []suggestionItem) []types.Suggestion {
	suggestions := make([]types.Suggestion, 0, len(items))
	for _, item := range items {
		suggestions = append(suggestions, types.Suggestion{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
		})
	}
	return suggestions
}

// ParseMoveDetail decodes a detail-level rewrite. Duration may come back in
// seconds or minutes; a missing duration is left at zero for the caller to
// keep the original estimate.
func ParseMoveDetail(text string) (MoveDetail, error) {
	trimmed := trimToJSON(text)

	var detail MoveDetail
	if err := json.Unmarshal([]byte(trimmed), &detail); err == nil && detail.Title != "" {
		if detail.DurationSeconds == 0 && detail.DurationMinutes != nil {
			detail.DurationSeconds = *detail.DurationMinutes * 60
		}
		return detail, nil
	}

	// Regex fallback on the same pair shapes the suggestion parser uses
	if items, ok := extractSuggestionsWithRegex(text); ok {
		return MoveDetail{Title: items[0].Title, Description: items[0].Description}, nil
	}

	return MoveDetail{}, fmt.Errorf("no move detail found in response")
}

// ParseSMARTGoal decodes a SMART rewrite, accepting either the smart_-prefixed
// field names from the shape hint or plain title/description.
func ParseSMARTGoal(text string) (string, string, error) {
	trimmed := trimToJSON(text)

	var smart SMARTGoal
	if err := json.Unmarshal([]byte(trimmed), &smart); err == nil {
		title := strings.TrimSpace(smart.SmartTitle)
		description := strings.TrimSpace(smart.SmartDescription)
		if title == "" {
			title = strings.TrimSpace(smart.Title)
		}
		if description == "" {
			description = strings.TrimSpace(smart.Description)
		}
		if title != "" {
			return title, description, nil
		}
	}

	if items, ok := extractSuggestionsWithRegex(text); ok {
		return items[0].Title, items[0].Description, nil
	}

	return "", "", fmt.Errorf("no SMART goal found in response")
}

// trimToJSON cuts the response down to the substring between the first [ or {
// and the matching last ] or }, tolerating explanatory text around the JSON.
func trimToJSON(text string) string {
	text = strings.TrimSpace(text)

	arrayStart := strings.Index(text, "[")
	objectStart := strings.Index(text, "{")

	start := arrayStart
	closer := "]"
	if start == -1 || (objectStart != -1 && objectStart < start) {
		start = objectStart
		closer = "}"
	}
	if start == -1 {
		return text
	}

	end := strings.LastIndex(text, closer)
	if end <= start {
		return text[start:]
	}
	return text[start : end+1]
}
