package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestionsStrictArray(t *testing.T) {
	text := `[{"title":"Draft one page","description":"Rough is fine"},{"title":"Read a chapter","description":"Of a craft book"}]`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Draft one page", suggestions[0].Title)
	assert.Equal(t, "Rough is fine", suggestions[0].Description)
	assert.NotEmpty(t, suggestions[0].ID)
	assert.NotEqual(t, suggestions[0].ID, suggestions[1].ID)
}

func TestParseSuggestionsSurroundedByProse(t *testing.T) {
	text := "Sure! Here are some ideas for you:\n\n" +
		`[{"title":"Draft one page","description":"Rough is fine"}]` +
		"\n\nLet me know if you want more."

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Draft one page", suggestions[0].Title)
}

func TestParseSuggestionsWrappedContainer(t *testing.T) {
	for _, key := range []string{"suggestions", "moves", "steps", "action_items"} {
		text := `{"` + key + `":[{"title":"Draft one page","description":"Rough is fine"}]}`

		suggestions, err := ParseSuggestions(text)
		require.NoError(t, err, "wrapper key %q", key)
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Draft one page", suggestions[0].Title)
	}
}

func TestParseSuggestionsWrappedUnderUnknownKey(t *testing.T) {
	text := `{"daily_ideas":[{"title":"Draft one page","description":"Rough is fine"}]}`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
}

func TestParseSuggestionsRegexFallbackCountsPairs(t *testing.T) {
	// Malformed JSON (missing closing brackets, trailing garbage) with three
	// recognizable pairs
	text := `[{"title": "Draft one page", "description": "Rough is fine"},
{"title": "Read a chapter", "description": "Of a craft book"},
{"title": "Outline act two", "description": "Bullet points only"...`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
}

func TestParseSuggestionsRegexDescriptionFirst(t *testing.T) {
	text := `{"description": "Rough is fine", "title": "Draft one page"},
{"description": "Of a craft book", "title": "Read a chapter"} oops`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Draft one page", suggestions[0].Title)
	assert.Equal(t, "Rough is fine", suggestions[0].Description)
}

func TestParseSuggestionsQuotedSalvage(t *testing.T) {
	text := `Here are my ideas: "Draft the opening page" and "Read one craft essay"`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Draft the opening page", suggestions[0].Title)
	assert.NotEmpty(t, suggestions[0].Description)
}

func TestParseSuggestionsTotalFailure(t *testing.T) {
	_, err := ParseSuggestions("I have nothing for you today.")
	assert.Error(t, err)
}

func TestParseSuggestionsSkipsEmptyTitles(t *testing.T) {
	text := `[{"title":"","description":"no title"},{"title":"Draft one page","description":"ok"}]`

	suggestions, err := ParseSuggestions(text)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Draft one page", suggestions[0].Title)
}

func TestParseMoveDetailStrict(t *testing.T) {
	text := `{"title":"Write one paragraph","description":"Open the draft and write","duration_seconds":450}`

	detail, err := ParseMoveDetail(text)
	require.NoError(t, err)
	assert.Equal(t, "Write one paragraph", detail.Title)
	assert.Equal(t, float64(450), detail.DurationSeconds)
}

func TestParseMoveDetailMinutesFallback(t *testing.T) {
	text := "Here you go:\n" + `{"title":"Write one paragraph","description":"Open the draft","duration_minutes":10}`

	detail, err := ParseMoveDetail(text)
	require.NoError(t, err)
	assert.Equal(t, float64(600), detail.DurationSeconds)
}

func TestParseMoveDetailFailure(t *testing.T) {
	_, err := ParseMoveDetail("no structure here")
	assert.Error(t, err)
}

func TestParseSMARTGoalPrefixedFields(t *testing.T) {
	text := `{"smart_title":"Finish a 60k-word draft by June","smart_description":"Write 500 words on weekdays"}`

	title, description, err := ParseSMARTGoal(text)
	require.NoError(t, err)
	assert.Equal(t, "Finish a 60k-word draft by June", title)
	assert.Equal(t, "Write 500 words on weekdays", description)
}

func TestParseSMARTGoalPlainFields(t *testing.T) {
	text := "Here is the rewrite:\n" + `{"title":"Finish a 60k-word draft by June","description":"Write 500 words on weekdays"}`

	title, description, err := ParseSMARTGoal(text)
	require.NoError(t, err)
	assert.Equal(t, "Finish a 60k-word draft by June", title)
	assert.Equal(t, "Write 500 words on weekdays", description)
}

func TestTrimToJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"array in prose", "Sure: [1,2,3] done", "[1,2,3]"},
		{"object in prose", "Answer: {\"a\":1}.", "{\"a\":1}"},
		{"object before array wins", `{"items":[1]} trailing`, `{"items":[1]}`},
		{"no json passthrough", "plain text", "plain text"},
		{"code fence", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := trimToJSON(tc.in)
			assert.Equal(t, tc.want, strings.TrimSpace(got))
		})
	}
}
