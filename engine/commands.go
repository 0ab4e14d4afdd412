package engine

import (
	"clementus360/momentum/types"
	"context"
	"fmt"
	"time"
)

// MarkDone records a completion for today's move, then re-resolves: if other
// moves remain un-completed today the state stays Pending with one of them
// selected, otherwise it settles into Completed.
func (e *Engine) MarkDone(ctx context.Context, note string) error {
	e.mu.Lock()
	if e.goal == nil || e.todaysMove == nil {
		e.mu.Unlock()
		return fmt.Errorf("no goal or move to mark done")
	}
	moveID := e.todaysMove.ID
	record := &types.DailyProgress{
		GoalID:  e.goal.ID,
		MoveID:  &moveID,
		Date:    e.now(),
		Skipped: false,
		Note:    note,
	}
	if err := e.store.InsertProgress(record); err != nil {
		e.log.Errorf("Failed to save completion: %v", err)
		e.errMsg = "Could not save your progress"
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	e.ResolveToday(ctx)
	return nil
}

// MarkSkipped records today as skipped, with or without a selected move.
func (e *Engine) MarkSkipped(ctx context.Context, note string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.goal == nil {
		return fmt.Errorf("no goal to skip")
	}
	record := &types.DailyProgress{
		GoalID:  e.goal.ID,
		Date:    e.now(),
		Skipped: true,
		Note:    note,
	}
	if e.todaysMove != nil {
		moveID := e.todaysMove.ID
		record.MoveID = &moveID
	}
	if err := e.store.InsertProgress(record); err != nil {
		e.log.Errorf("Failed to save skip: %v", err)
		e.errMsg = "Could not save your progress"
		return err
	}
	e.state = types.StateSkipped
	e.postponedUntil = nil
	e.errMsg = ""
	return nil
}

// Postpone is a transient UI state only; nothing is persisted.
func (e *Engine) Postpone(interval time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.todaysMove == nil {
		return fmt.Errorf("no move to postpone")
	}
	until := e.now().Add(interval)
	e.postponedUntil = &until
	e.state = types.StatePostponed
	return nil
}

// SelectMove makes the given move today's move and clears transient state.
func (e *Engine) SelectMove(moveID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.goal == nil {
		return fmt.Errorf("no current goal")
	}
	move, err := e.store.GetMove(moveID)
	if err != nil {
		e.log.Errorf("Failed to load move %s: %v", moveID, err)
		e.errMsg = "Could not select that move"
		return err
	}
	if move.GoalID != e.goal.ID {
		return fmt.Errorf("move %s does not belong to the current goal", moveID)
	}

	e.todaysMove = move
	e.postponedUntil = nil
	e.state = types.StatePending
	e.errMsg = ""

	if moves, err := e.store.MovesForGoal(e.goal.ID); err == nil {
		e.alternatives = movesExcept(moves, move)
	}
	return nil
}

// AdoptSuggestion persists a suggestion as a real move with the default
// duration and category, removes it from the pending list, and optionally
// makes it today's move.
func (e *Engine) AdoptSuggestion(suggestionID string, setAsToday bool) (*types.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.goal == nil {
		return nil, fmt.Errorf("no current goal")
	}

	index := -1
	for i, suggestion := range e.suggestions {
		if suggestion.ID == suggestionID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("suggestion %s not found", suggestionID)
	}
	suggestion := e.suggestions[index]

	move := &types.Move{
		GoalID:          e.goal.ID,
		Title:           suggestion.Title,
		Description:     suggestion.Description,
		DurationSeconds: e.settings.DefaultMoveDuration,
		Category:        types.Category(e.settings.DefaultMoveCategory),
		IsDefault:       false,
		AISuggested:     true,
	}
	if err := move.Validate(); err != nil {
		return nil, err
	}
	if err := e.store.InsertMove(move); err != nil {
		e.log.Errorf("Failed to adopt suggestion: %v", err)
		e.errMsg = "Could not save the suggested move"
		return nil, err
	}

	// Removed exactly once, even if adoption is retried with a stale id
	e.suggestions = append(e.suggestions[:index], e.suggestions[index+1:]...)
	e.adoptedTitles.Add(normalizeTitle(suggestion.Title), struct{}{})

	if setAsToday || e.todaysMove == nil {
		adopted := *move
		e.todaysMove = &adopted
		e.postponedUntil = nil
		e.state = types.StatePending
	}
	if moves, err := e.store.MovesForGoal(e.goal.ID); err == nil {
		e.alternatives = movesExcept(moves, e.todaysMove)
	}

	adopted := *move
	return &adopted, nil
}

// CreateGoal inserts a goal and optionally its first move. If the move insert
// fails the goal is rolled back so no half-applied state survives.
func (e *Engine) CreateGoal(goal *types.Goal, firstMove *types.Move) error {
	if goal.Title == "" {
		return fmt.Errorf("goal title is empty")
	}
	if err := e.store.InsertGoal(goal); err != nil {
		e.log.Errorf("Failed to create goal: %v", err)
		return err
	}
	if firstMove != nil {
		firstMove.GoalID = goal.ID
		firstMove.IsDefault = true
		if firstMove.DurationSeconds <= 0 {
			firstMove.DurationSeconds = e.settings.DefaultMoveDuration
		}
		if firstMove.Category == "" {
			firstMove.Category = types.Category(e.settings.DefaultMoveCategory)
		}
		if err := firstMove.Validate(); err == nil {
			if insertErr := e.store.InsertMove(firstMove); insertErr != nil {
				e.log.Errorf("Failed to create first move, rolling back goal %s: %v", goal.ID, insertErr)
				if rollbackErr := e.store.DeleteGoal(goal.ID); rollbackErr != nil {
					e.log.Errorf("Rollback of goal %s failed: %v", goal.ID, rollbackErr)
				}
				return insertErr
			}
		} else {
			if rollbackErr := e.store.DeleteGoal(goal.ID); rollbackErr != nil {
				e.log.Errorf("Rollback of goal %s failed: %v", goal.ID, rollbackErr)
			}
			return err
		}
	}
	return nil
}

// CompleteGoal flags the current goal as achieved; the next resolve advances
// to the next goal or NoGoal.
func (e *Engine) CompleteGoal(goalID string) error {
	goals, err := e.store.Goals()
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == goalID {
			now := e.now()
			goals[i].Completed = true
			goals[i].CompletedAt = &now
			return e.store.UpdateGoal(&goals[i])
		}
	}
	return fmt.Errorf("goal %s not found", goalID)
}

// DeleteGoal removes a goal; the store cascades to moves and progress.
func (e *Engine) DeleteGoal(goalID string) error {
	if err := e.store.DeleteGoal(goalID); err != nil {
		e.log.Errorf("Failed to delete goal %s: %v", goalID, err)
		return err
	}
	e.mu.Lock()
	if e.goal != nil && e.goal.ID == goalID {
		e.degradeToNoGoalLocked("")
	}
	e.mu.Unlock()
	return nil
}

func (e *Engine) Goals() ([]types.Goal, error) {
	return e.store.Goals()
}
