package engine

import (
	"clementus360/momentum/llm"
	"clementus360/momentum/types"
	"context"
	"errors"
	"strings"
)

// GenerateSuggestions asks the AI for a fresh batch of moves for the current
// goal. Results land in the suggestion list unless a newer request was issued
// in the meantime (last-issued-wins).
func (e *Engine) GenerateSuggestions(ctx context.Context) {
	e.mu.Lock()
	if e.goal == nil {
		e.mu.Unlock()
		return
	}
	goal := *e.goal
	e.suggestionGen++
	gen := e.suggestionGen
	e.loading = true
	e.mu.Unlock()

	pctx, existing := e.buildPromptContext(goal.ID)
	prompt := llm.BuildNewMovesPrompt(goal, pctx, e.settings.NewMovesMin, e.settings.NewMovesMax)
	e.completeSuggestionRequest(ctx, gen, prompt, existing)
}

// PrepareForSwap recomputes the alternative-move list and asks the AI for
// alternatives to today's move. On total failure the user is still offered
// all of the goal's moves.
func (e *Engine) PrepareForSwap(ctx context.Context) {
	e.mu.Lock()
	if e.goal == nil {
		e.mu.Unlock()
		return
	}
	goal := *e.goal
	current := e.todaysMove
	var currentCopy *types.Move
	if current != nil {
		copied := *current
		currentCopy = &copied
	}
	e.suggestionGen++
	gen := e.suggestionGen
	e.loading = true
	e.mu.Unlock()

	if moves, err := e.store.MovesForGoal(goal.ID); err == nil {
		e.mu.Lock()
		if currentCopy != nil {
			e.alternatives = movesExcept(moves, currentCopy)
		} else {
			e.alternatives = moves
		}
		e.mu.Unlock()
	} else {
		e.log.Errorf("Failed to refresh alternatives for goal %s: %v", goal.ID, err)
	}

	pctx, existing := e.buildPromptContext(goal.ID)
	prompt := llm.BuildAlternativesPrompt(goal, currentCopy, pctx, e.settings.AlternativeMoves)
	e.completeSuggestionRequest(ctx, gen, prompt, existing)
}

// completeSuggestionRequest runs the AI call outside the lock and applies the
// outcome only if the generation token is still current.
func (e *Engine) completeSuggestionRequest(ctx context.Context, gen uint64, prompt string, existingTitles []string) {
	response, err := e.ai.Generate(ctx, llm.Request{
		Prompt:          prompt,
		ResponseShape:   llm.SuggestionListShape,
		MaxOutputTokens: e.settings.MaxOutputTokens,
		Temperature:     e.settings.Temperature,
		Timeout:         e.settings.AIRequestTimeout,
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.suggestionGen {
		// A newer request superseded this one; discard the stale result
		return
	}
	e.loading = false

	if err != nil {
		e.errMsg = e.describeAIError(err)
		return
	}

	suggestions, err := llm.ParseSuggestions(response)
	if err != nil {
		e.log.Errorf("Failed to parse suggestions: %v\nOriginal text: %s", err, response)
		e.errMsg = "Could not understand AI suggestions"
		return
	}

	e.errMsg = ""
	e.suggestions = e.filterDuplicates(suggestions, existingTitles)
}

// bootstrapFirstMove handles the goal-with-zero-moves case: generate an
// initial batch and auto-adopt the first suggestion as today's move.
func (e *Engine) bootstrapFirstMove(ctx context.Context) {
	e.GenerateSuggestions(ctx)

	e.mu.Lock()
	if len(e.suggestions) == 0 {
		// Nothing usable came back; the snapshot's empty move list tells the
		// presentation layer the goal has no moves.
		e.mu.Unlock()
		return
	}
	first := e.suggestions[0].ID
	e.mu.Unlock()

	if _, err := e.AdoptSuggestion(first, true); err != nil {
		e.log.Errorf("Failed to auto-adopt first suggestion: %v", err)
	}
}

// buildPromptContext gathers the enrichment every prompt carries: up to three
// recent completions (most recent first) and the goal's existing move titles.
func (e *Engine) buildPromptContext(goalID string) (llm.PromptContext, []string) {
	pctx := llm.PromptContext{Today: e.now()}
	var existing []string

	moves, err := e.store.MovesForGoal(goalID)
	if err != nil {
		e.log.Errorf("Failed to load moves for prompt context: %v", err)
	} else {
		byID := make(map[string]types.Move, len(moves))
		for _, move := range moves {
			byID[move.ID] = move
			existing = append(existing, move.Title)
		}

		completions, err := e.store.RecentCompletions(goalID, e.settings.RecentCompletions)
		if err != nil {
			e.log.Errorf("Failed to load recent completions for prompt context: %v", err)
		} else {
			for _, record := range completions {
				move, found := byID[*record.MoveID]
				if !found {
					continue
				}
				pctx.RecentCompletions = append(pctx.RecentCompletions, llm.CompletedMove{
					Title:       move.Title,
					Description: move.Description,
					Date:        record.Date,
				})
			}
		}
	}

	pctx.ExistingTitles = existing
	return llm.TrimContextForTokens(pctx, e.settings.MaxPromptTokens), existing
}

// filterDuplicates drops suggestions whose titles match an existing move or a
// recently adopted suggestion.
func (e *Engine) filterDuplicates(suggestions []types.Suggestion, existingTitles []string) []types.Suggestion {
	seen := make(map[string]bool, len(existingTitles))
	for _, title := range existingTitles {
		seen[normalizeTitle(title)] = true
	}

	var kept []types.Suggestion
	for _, suggestion := range suggestions {
		key := normalizeTitle(suggestion.Title)
		if seen[key] {
			continue
		}
		if _, adopted := e.adoptedTitles.Get(key); adopted {
			continue
		}
		seen[key] = true
		kept = append(kept, suggestion)
	}
	return kept
}

// describeAIError maps a failure onto the single user-facing error string,
// logging diagnostic detail per failure class.
func (e *Engine) describeAIError(err error) string {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		e.log.Errorf("AI service returned status %d: %s", statusErr.StatusCode, statusErr.Body)
		return statusErr.Error()
	}
	e.log.Errorf("AI service unreachable: %v", err)
	return "Could not reach AI service"
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
