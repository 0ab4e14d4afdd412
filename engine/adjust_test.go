package engine

import (
	"clementus360/momentum/config"
	"clementus360/momentum/llm"
	"clementus360/momentum/store"
	"clementus360/momentum/types"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebounceEngine(ai llm.Client, window time.Duration) (*Engine, *store.MemoryStore) {
	s := store.NewMemoryStore()
	settings := config.Settings
	settings.DebounceWindow = window
	return NewWithSettings(s, ai, testLogger(), settings), s
}

func TestAdjustDebouncesRapidChanges(t *testing.T) {
	ai := &fakeAI{
		respond: func(call int, req llm.Request) (string, error) {
			return `{"title":"Write the opening scene, step by step","description":"1. Open the draft. 2. Write one paragraph.","duration_seconds":1500}`, nil
		},
	}
	e, s := newDebounceEngine(ai, 40*time.Millisecond)
	goal := seedGoal(t, s, "Write a Novel")
	move := seedMove(t, s, goal.ID, "Write the opening scene", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	levels := []types.DetailLevel{
		types.DetailVague,
		types.DetailConcise,
		types.DetailDetailed,
		types.DetailGranular,
		types.DetailStepByStep,
	}
	for _, level := range levels {
		require.NoError(t, e.AdjustDetailLevel(context.Background(), move.ID, level))
	}

	require.Eventually(t, func() bool { return ai.callCount() > 0 }, time.Second, 5*time.Millisecond)
	// Allow a superseded timer, had one slipped through, to also fire
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, ai.callCount(), "rapid changes coalesce into one call")
	assert.Contains(t, ai.lastCall().Prompt, string(types.DetailStepByStep))

	require.Eventually(t, func() bool {
		updated, err := s.GetMove(move.ID)
		return err == nil && updated.DurationSeconds == 1500
	}, time.Second, 5*time.Millisecond)

	updated, err := s.GetMove(move.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write the opening scene, step by step", updated.Title)

	snapshot := e.Snapshot()
	require.NotNil(t, snapshot.TodaysMove)
	assert.Equal(t, "Write the opening scene, step by step", snapshot.TodaysMove.Title)
}

func TestAdjustAbandonedWhenContextCancelled(t *testing.T) {
	ai := &fakeAI{}
	e, s := newDebounceEngine(ai, 20*time.Millisecond)
	goal := seedGoal(t, s, "Write a Novel")
	move := seedMove(t, s, goal.ID, "Write the opening scene", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, e.AdjustDetailLevel(ctx, move.ID, types.DetailGranular))
	cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, ai.callCount(), "cancelled adjustment never reaches the AI")

	unchanged, err := s.GetMove(move.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write the opening scene", unchanged.Title)
}

func TestAdjustParseFailureLeavesMoveUntouched(t *testing.T) {
	ai := &fakeAI{
		respond: func(call int, req llm.Request) (string, error) {
			return "sorry, no structured answer today", nil
		},
	}
	e, s := newDebounceEngine(ai, 10*time.Millisecond)
	goal := seedGoal(t, s, "Write a Novel")
	move := seedMove(t, s, goal.ID, "Write the opening scene", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	require.NoError(t, e.AdjustDetailLevel(context.Background(), move.ID, types.DetailConcise))

	require.Eventually(t, func() bool { return ai.callCount() > 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return e.Snapshot().ErrorMessage == "Could not understand AI suggestions"
	}, time.Second, 5*time.Millisecond)

	unchanged, err := s.GetMove(move.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write the opening scene", unchanged.Title)
	assert.Equal(t, float64(600), unchanged.DurationSeconds)
}

func TestAdjustSupersededRewriteNeverLands(t *testing.T) {
	release := make(chan struct{})
	ai := &fakeAI{
		respond: func(call int, req llm.Request) (string, error) {
			if call == 1 {
				<-release
				return `{"title":"Stale rewrite","description":"from the superseded request","duration_seconds":300}`, nil
			}
			return `{"title":"Fresh rewrite","description":"from the newest request","duration_seconds":1500}`, nil
		},
	}
	e, s := newDebounceEngine(ai, 10*time.Millisecond)
	goal := seedGoal(t, s, "Write a Novel")
	move := seedMove(t, s, goal.ID, "Write the opening scene", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	require.NoError(t, e.AdjustDetailLevel(context.Background(), move.ID, types.DetailVague))
	require.Eventually(t, func() bool { return ai.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// Supersede while the first rewrite is still in flight
	require.NoError(t, e.AdjustDetailLevel(context.Background(), move.ID, types.DetailStepByStep))
	require.Eventually(t, func() bool {
		updated, err := s.GetMove(move.ID)
		return err == nil && updated.Title == "Fresh rewrite"
	}, time.Second, 5*time.Millisecond)

	close(release)
	time.Sleep(50 * time.Millisecond)

	updated, err := s.GetMove(move.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh rewrite", updated.Title)
	assert.Equal(t, float64(1500), updated.DurationSeconds)

	snapshot := e.Snapshot()
	require.NotNil(t, snapshot.TodaysMove)
	assert.Equal(t, "Fresh rewrite", snapshot.TodaysMove.Title)
}

func TestFormatGoalSMARTRewritesGoal(t *testing.T) {
	ai := &fakeAI{
		respond: func(call int, req llm.Request) (string, error) {
			return `{"smart_title":"Finish a 60k-word draft by June","smart_description":"Write 500 words on weekdays"}`, nil
		},
	}
	e, s := newTestEngine(ai)
	goal := seedGoal(t, s, "Write a Novel")
	seedMove(t, s, goal.ID, "Write outline", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	require.NoError(t, e.FormatGoalSMART(context.Background(), goal.ID))

	goals, err := s.Goals()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Finish a 60k-word draft by June", goals[0].Title)
	assert.Equal(t, "Write 500 words on weekdays", goals[0].Description)

	snapshot := e.Snapshot()
	require.NotNil(t, snapshot.Goal)
	assert.Equal(t, "Finish a 60k-word draft by June", snapshot.Goal.Title)
	assert.Empty(t, snapshot.ErrorMessage)
}

func TestFormatGoalSMARTParseFailureLeavesGoalUntouched(t *testing.T) {
	ai := &fakeAI{
		respond: func(call int, req llm.Request) (string, error) {
			return "cannot help with that today", nil
		},
	}
	e, s := newTestEngine(ai)
	goal := seedGoal(t, s, "Write a Novel")
	seedMove(t, s, goal.ID, "Write outline", true, time.Now().Add(-time.Hour))
	e.ResolveToday(context.Background())

	require.Error(t, e.FormatGoalSMART(context.Background(), goal.ID))

	goals, err := s.Goals()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Write a Novel", goals[0].Title)

	snapshot := e.Snapshot()
	require.NotNil(t, snapshot.Goal)
	assert.Equal(t, "Write a Novel", snapshot.Goal.Title)
	assert.Equal(t, "Could not understand AI suggestions", snapshot.ErrorMessage)
}

func TestAdjustRejectsUnknownLevel(t *testing.T) {
	e, s := newDebounceEngine(&fakeAI{}, 10*time.Millisecond)
	goal := seedGoal(t, s, "Write a Novel")
	move := seedMove(t, s, goal.ID, "Write the opening scene", true, time.Now().Add(-time.Hour))

	assert.Error(t, e.AdjustDetailLevel(context.Background(), move.ID, "extreme"))
}
