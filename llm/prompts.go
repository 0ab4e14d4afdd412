package llm

import (
	"clementus360/momentum/types"
	"fmt"
	"strings"
	"time"
)

// CompletedMove is a recently finished move carried into prompts as context.
type CompletedMove struct {
	Title       string
	Description string
	Date        time.Time
}

// PromptContext is the enrichment added to every suggestion prompt: recent
// wins to build on, existing titles to avoid duplicating, and today's date so
// the model doesn't propose timelines in the past.
type PromptContext struct {
	RecentCompletions []CompletedMove // most recent first
	ExistingTitles    []string
	Today             time.Time
}

// Response shape hints sent alongside each prompt
const (
	SuggestionListShape = `[{"title": "short actionable title", "description": "one or two sentences of detail"}]`
	MoveDetailShape     = `{"title": "rewritten title", "description": "rewritten description", "duration_seconds": 900}`
	SMARTGoalShape      = `{"smart_title": "rewritten goal title", "smart_description": "specific, measurable, achievable, relevant, time-bound description"}`
)

const suggestionInstructions = `You are a momentum coach. You help people make daily progress on long-term goals by proposing "moves": small, concrete, time-boxed actions that can be finished in a single sitting.

RULES:
- Every move must be something the person can start today with what they already have
- Titles are short imperative phrases, descriptions are one or two sentences
- Never repeat or lightly rephrase a move they already have
- Build on what they completed recently instead of starting over
- ONLY respond with valid JSON, no explanations or extra text outside it`

func contextSections(pctx PromptContext) []string {
	sections := []string{}

	if len(pctx.RecentCompletions) > 0 {
		block := "RECENTLY COMPLETED (most recent first), build on these:\n"
		for _, done := range pctx.RecentCompletions {
			if done.Description != "" {
				block += fmt.Sprintf("- %s: %s\n", done.Title, done.Description)
			} else {
				block += fmt.Sprintf("- %s\n", done.Title)
			}
		}
		sections = append(sections, block)
	}

	if len(pctx.ExistingTitles) > 0 {
		sections = append(sections, fmt.Sprintf("MOVES THEY ALREADY HAVE (do not duplicate):\n- %s", strings.Join(pctx.ExistingTitles, "\n- ")))
	}

	today := pctx.Today
	if today.IsZero() {
		today = time.Now()
	}
	sections = append(sections, fmt.Sprintf("TODAY'S DATE: %s. Any dates or timelines you mention must be realistic and in the future relative to it.", today.Format("Monday, January 2, 2006")))

	return sections
}

func goalSection(goal types.Goal) string {
	block := fmt.Sprintf("THEIR GOAL:\n%s", goal.Title)
	if goal.Description != "" {
		block += fmt.Sprintf("\n%s", goal.Description)
	}
	if goal.TargetDays != nil {
		block += fmt.Sprintf("\nTarget timeframe: %d days", *goal.TargetDays)
	}
	return block
}

// BuildNewMovesPrompt asks for an initial batch of actionable steps.
func BuildNewMovesPrompt(goal types.Goal, pctx PromptContext, min, max int) string {
	sections := []string{suggestionInstructions, goalSection(goal)}
	sections = append(sections, contextSections(pctx)...)
	sections = append(sections, fmt.Sprintf("Propose %d to %d new moves for this goal as a JSON array.", min, max))
	return strings.Join(sections, "\n\n")
}

// BuildAlternativesPrompt asks for moves different from the current one.
func BuildAlternativesPrompt(goal types.Goal, current *types.Move, pctx PromptContext, count int) string {
	sections := []string{suggestionInstructions, goalSection(goal)}
	if current != nil {
		sections = append(sections, fmt.Sprintf("THEIR CURRENT MOVE (they want something different):\n%s: %s", current.Title, current.Description))
	}
	sections = append(sections, contextSections(pctx)...)
	sections = append(sections, fmt.Sprintf("Propose %d alternative moves as a JSON array. Each must be clearly different from the current move.", count))
	return strings.Join(sections, "\n\n")
}

// BuildDetailPrompt asks for a single move rewritten at the given detail level.
func BuildDetailPrompt(move types.Move, level types.DetailLevel) string {
	multiplier := level.DurationMultiplier()
	suggested := move.DurationSeconds * multiplier

	var guidance string
	switch level {
	case types.DetailVague:
		guidance = "Make it loose and open-ended, a gentle nudge rather than an instruction."
	case types.DetailConcise:
		guidance = "Keep it brief: one clear action, minimal detail."
	case types.DetailGranular:
		guidance = "Break the action into its concrete parts so nothing is left to figure out."
	case types.DetailStepByStep:
		guidance = "Write the description as an explicit numbered sequence of steps."
	default:
		guidance = "Keep a balanced amount of detail."
	}

	return fmt.Sprintf(`You rewrite action items at different levels of specificity.

THE MOVE:
%s: %s
Current estimate: %.0f seconds

Rewrite it at the %q detail level. %s
As guidance, aim for roughly %.0f seconds (%.2fx the original estimate).

Respond with a single JSON object only.`,
		move.Title, move.Description, move.DurationSeconds, string(level), guidance, suggested, multiplier)
}

// BuildSMARTPrompt asks for a goal rewritten in SMART form.
func BuildSMARTPrompt(goal types.Goal, pctx PromptContext) string {
	sections := []string{
		"You rewrite personal goals into SMART form: specific, measurable, achievable, relevant, time-bound.",
		goalSection(goal),
	}
	sections = append(sections, contextSections(pctx)...)
	sections = append(sections, "Rewrite the goal's title and description in SMART form. Respond with a single JSON object only.")
	return strings.Join(sections, "\n\n")
}

// Token estimation and context trimming
func EstimateTokens(text string) int {
	// Rough estimation: ~4 characters per token
	return len(text) / 4
}

// TrimContextForTokens drops enrichment until the rendered sections fit the
// budget: oldest completions first, then surplus existing titles.
func TrimContextForTokens(pctx PromptContext, maxTokens int) PromptContext {
	trimmed := pctx

	for EstimateTokens(strings.Join(contextSections(trimmed), "\n\n")) > maxTokens {
		if len(trimmed.RecentCompletions) > 1 {
			trimmed.RecentCompletions = trimmed.RecentCompletions[:len(trimmed.RecentCompletions)-1]
		} else if len(trimmed.ExistingTitles) > 3 {
			trimmed.ExistingTitles = trimmed.ExistingTitles[:len(trimmed.ExistingTitles)-1]
		} else {
			break // Can't trim further
		}
	}

	return trimmed
}
