package engine

import (
	"clementus360/momentum/llm"
	"clementus360/momentum/types"
	"context"
	"fmt"
)

// AdjustDetailLevel schedules a debounced rewrite of a move at the requested
// detail level. Rapid repeated calls within the window collapse into a single
// AI request for the last requested level.
func (e *Engine) AdjustDetailLevel(ctx context.Context, moveID string, level types.DetailLevel) error {
	if !level.Valid() {
		return fmt.Errorf("unknown detail level %q", level)
	}
	e.debounce.Schedule(e.settings.DebounceWindow, func(token uint64) {
		e.adjustNow(ctx, moveID, level, token)
	})
	return nil
}

func (e *Engine) adjustNow(ctx context.Context, moveID string, level types.DetailLevel, token uint64) {
	if ctx.Err() != nil {
		// The owning context went away while we were waiting; abandon
		return
	}
	if !e.debounce.current(token) {
		return
	}

	move, err := e.store.GetMove(moveID)
	if err != nil {
		e.log.Errorf("Failed to load move %s for adjustment: %v", moveID, err)
		e.setError("Could not adjust that move")
		return
	}

	response, err := e.ai.Generate(ctx, llm.Request{
		Prompt:          llm.BuildDetailPrompt(*move, level),
		ResponseShape:   llm.MoveDetailShape,
		MaxOutputTokens: e.settings.MaxOutputTokens,
		Temperature:     e.settings.Temperature,
		Timeout:         e.settings.AIRequestTimeout,
	})
	if err != nil {
		e.setError(e.describeAIError(err))
		return
	}

	detail, err := llm.ParseMoveDetail(response)
	if err != nil {
		e.log.Errorf("Failed to parse move detail: %v\nOriginal text: %s", err, response)
		e.setError("Could not understand AI suggestions")
		return
	}

	// A newer adjustment may have arrived during the AI call
	if !e.debounce.current(token) {
		return
	}

	move.Title = detail.Title
	if detail.Description != "" {
		move.Description = detail.Description
	}
	if detail.DurationSeconds > 0 {
		move.DurationSeconds = detail.DurationSeconds
	}
	if err := e.store.UpdateMove(move); err != nil {
		e.log.Errorf("Failed to save adjusted move %s: %v", moveID, err)
		e.setError("Could not save the adjusted move")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// The write itself is last-write-wins at the store, but the snapshot must
	// never reflect a rewrite that was superseded while persisting
	if !e.debounce.current(token) {
		return
	}
	e.errMsg = ""
	if e.todaysMove != nil && e.todaysMove.ID == move.ID {
		updated := *move
		e.todaysMove = &updated
	}
	for i := range e.alternatives {
		if e.alternatives[i].ID == move.ID {
			e.alternatives[i] = *move
		}
	}
}

// FormatGoalSMART rewrites the goal's title and description into SMART form.
// The mutation is applied only on a successful parse.
func (e *Engine) FormatGoalSMART(ctx context.Context, goalID string) error {
	goals, err := e.store.Goals()
	if err != nil {
		return err
	}
	var goal *types.Goal
	for i := range goals {
		if goals[i].ID == goalID {
			goal = &goals[i]
			break
		}
	}
	if goal == nil {
		return fmt.Errorf("goal %s not found", goalID)
	}

	pctx, _ := e.buildPromptContext(goalID)
	response, err := e.ai.Generate(ctx, llm.Request{
		Prompt:          llm.BuildSMARTPrompt(*goal, pctx),
		ResponseShape:   llm.SMARTGoalShape,
		MaxOutputTokens: e.settings.MaxOutputTokens,
		Temperature:     e.settings.Temperature,
		Timeout:         e.settings.AIRequestTimeout,
	})
	if err != nil {
		e.setError(e.describeAIError(err))
		return err
	}

	title, description, err := llm.ParseSMARTGoal(response)
	if err != nil {
		e.log.Errorf("Failed to parse SMART goal: %v\nOriginal text: %s", err, response)
		e.setError("Could not understand AI suggestions")
		return err
	}

	goal.Title = title
	if description != "" {
		goal.Description = description
	}
	if err := e.store.UpdateGoal(goal); err != nil {
		e.log.Errorf("Failed to save SMART goal %s: %v", goalID, err)
		e.setError("Could not save the reformatted goal")
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.errMsg = ""
	if e.goal != nil && e.goal.ID == goal.ID {
		updated := *goal
		e.goal = &updated
	}
	return nil
}

func (e *Engine) setError(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errMsg = message
	e.loading = false
}
