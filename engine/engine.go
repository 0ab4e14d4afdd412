package engine

import (
	"clementus360/momentum/config"
	"clementus360/momentum/llm"
	"clementus360/momentum/store"
	"clementus360/momentum/types"
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

// Engine owns all mutable daily state for a session. Every transition funnels
// through its command methods under one mutex; AI calls run outside the lock
// and re-validate their generation token before touching shared state.
type Engine struct {
	store    store.Store
	ai       llm.Client
	log      *logrus.Logger
	settings config.EngineSettings

	mu             sync.Mutex
	state          types.DailyState
	goal           *types.Goal
	todaysMove     *types.Move
	alternatives   []types.Move
	suggestions    []types.Suggestion
	postponedUntil *time.Time
	loading        bool
	errMsg         string

	suggestionGen uint64
	debounce      *debouncer
	adoptedTitles *lru.Cache[string, struct{}]

	now func() time.Time
}

func New(s store.Store, ai llm.Client, log *logrus.Logger) *Engine {
	return NewWithSettings(s, ai, log, config.Settings)
}

func NewWithSettings(s store.Store, ai llm.Client, log *logrus.Logger, settings config.EngineSettings) *Engine {
	adopted, _ := lru.New[string, struct{}](settings.RecentTitleCacheSize)
	return &Engine{
		store:         s,
		ai:            ai,
		log:           log,
		settings:      settings,
		state:         types.StateLoading,
		debounce:      newDebouncer(),
		adoptedTitles: adopted,
		now:           time.Now,
	}
}

// Snapshot returns a copy of the current state for rendering.
func (e *Engine) Snapshot() types.StateSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() types.StateSnapshot {
	snapshot := types.StateSnapshot{
		State:        e.state,
		Loading:      e.loading,
		ErrorMessage: e.errMsg,
	}
	if e.goal != nil {
		goal := *e.goal
		snapshot.Goal = &goal
	}
	if e.todaysMove != nil {
		move := *e.todaysMove
		snapshot.TodaysMove = &move
	}
	if e.postponedUntil != nil {
		until := *e.postponedUntil
		snapshot.PostponedUntil = &until
	}
	snapshot.Alternatives = append([]types.Move(nil), e.alternatives...)
	snapshot.Suggestions = append([]types.Suggestion(nil), e.suggestions...)
	return snapshot
}

// ResolveToday recomputes the daily state from persisted history. Safe to call
// repeatedly; without intervening commands the outcome is identical.
func (e *Engine) ResolveToday(ctx context.Context) types.StateSnapshot {
	e.mu.Lock()
	e.state = types.StateLoading
	e.loading = true
	e.errMsg = ""
	e.postponedUntil = nil

	goal, err := e.store.CurrentGoal()
	if err != nil {
		// Degrade to NoGoal rather than propagate; the landing state favors
		// availability over precision.
		e.log.Errorf("Failed to load current goal: %v", err)
		snapshot := e.degradeToNoGoalLocked("Could not load your goals")
		e.mu.Unlock()
		return snapshot
	}
	if goal == nil {
		snapshot := e.degradeToNoGoalLocked("")
		e.mu.Unlock()
		return snapshot
	}
	e.goal = goal

	moves, err := e.store.MovesForGoal(goal.ID)
	if err != nil {
		e.log.Errorf("Failed to load moves for goal %s: %v", goal.ID, err)
		snapshot := e.degradeToNoGoalLocked("Could not load your moves")
		e.mu.Unlock()
		return snapshot
	}

	records, err := e.store.ProgressForDay(goal.ID, e.now())
	if err != nil {
		e.log.Errorf("Failed to load today's progress for goal %s: %v", goal.ID, err)
		snapshot := e.degradeToNoGoalLocked("Could not load today's progress")
		e.mu.Unlock()
		return snapshot
	}

	e.resolveFromRecordsLocked(moves, records)
	e.alternatives = movesExcept(moves, e.todaysMove)
	e.loading = false

	needsBootstrap := e.state == types.StatePending && e.todaysMove == nil && len(moves) == 0
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	if needsBootstrap {
		e.bootstrapFirstMove(ctx)
		snapshot = e.Snapshot()
	}
	return snapshot
}

// resolveFromRecordsLocked applies the state table: the primary record is the
// first match for today (uniqueness is not enforced at the storage layer).
func (e *Engine) resolveFromRecordsLocked(moves []types.Move, records []types.DailyProgress) {
	if len(records) == 0 {
		e.state = types.StatePending
		e.todaysMove = e.selectMoveLocked(moves)
		return
	}

	primary := records[0]

	if primary.Skipped {
		e.state = types.StateSkipped
		e.todaysMove = findMove(moves, primary.MoveID)
		return
	}

	if primary.MoveID != nil {
		// Completion is soft: as long as un-completed moves remain today the
		// user stays Pending and can keep going.
		completed := completedMoveIDs(records)
		remaining := uncompletedMoves(moves, completed)
		if len(remaining) > 0 {
			e.state = types.StatePending
			e.todaysMove = e.selectMoveLocked(remaining)
			return
		}
		e.state = types.StateCompleted
		e.todaysMove = findMove(moves, primary.MoveID)
		return
	}

	// A record with neither flag decides nothing
	e.state = types.StatePending
	e.todaysMove = e.selectMoveLocked(moves)
}

// selectMoveLocked prefers the flagged default move, then the first by
// creation. Returns nil when the pool is empty; ResolveToday then falls back
// to suggestion bootstrap.
func (e *Engine) selectMoveLocked(pool []types.Move) *types.Move {
	if len(pool) == 0 {
		return nil
	}
	for i := range pool {
		if pool[i].IsDefault {
			move := pool[i]
			return &move
		}
	}
	move := pool[0]
	return &move
}

func (e *Engine) degradeToNoGoalLocked(errMsg string) types.StateSnapshot {
	e.state = types.StateNoGoal
	e.goal = nil
	e.todaysMove = nil
	e.alternatives = nil
	e.loading = false
	e.errMsg = errMsg
	return e.snapshotLocked()
}

func completedMoveIDs(records []types.DailyProgress) map[string]bool {
	completed := make(map[string]bool)
	for _, record := range records {
		if !record.Skipped && record.MoveID != nil {
			completed[*record.MoveID] = true
		}
	}
	return completed
}

func uncompletedMoves(moves []types.Move, completed map[string]bool) []types.Move {
	var remaining []types.Move
	for _, move := range moves {
		if !completed[move.ID] {
			remaining = append(remaining, move)
		}
	}
	return remaining
}

func findMove(moves []types.Move, id *string) *types.Move {
	if id == nil {
		return nil
	}
	for i := range moves {
		if moves[i].ID == *id {
			move := moves[i]
			return &move
		}
	}
	return nil
}

func movesExcept(moves []types.Move, exclude *types.Move) []types.Move {
	var rest []types.Move
	for _, move := range moves {
		if exclude != nil && move.ID == exclude.ID {
			continue
		}
		rest = append(rest, move)
	}
	return rest
}
