package store

import (
	"clementus360/momentum/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentGoalPicksEarliestIncomplete(t *testing.T) {
	s := NewMemoryStore()

	older := &types.Goal{Title: "Older", CreatedAt: time.Now().Add(-48 * time.Hour), Completed: true}
	middle := &types.Goal{Title: "Middle", CreatedAt: time.Now().Add(-24 * time.Hour)}
	newest := &types.Goal{Title: "Newest", CreatedAt: time.Now()}
	for _, goal := range []*types.Goal{older, middle, newest} {
		require.NoError(t, s.InsertGoal(goal))
	}

	current, err := s.CurrentGoal()
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Middle", current.Title)
}

func TestCurrentGoalNilWhenNoneLeft(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.InsertGoal(&types.Goal{Title: "Done", Completed: true}))

	current, err := s.CurrentGoal()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestDeleteGoalCascades(t *testing.T) {
	s := NewMemoryStore()
	goal := &types.Goal{Title: "Write a Novel"}
	require.NoError(t, s.InsertGoal(goal))
	keep := &types.Goal{Title: "Learn piano"}
	require.NoError(t, s.InsertGoal(keep))

	move := &types.Move{GoalID: goal.ID, Title: "Outline", DurationSeconds: 600, Category: types.CategoryWriting}
	require.NoError(t, s.InsertMove(move))
	keepMove := &types.Move{GoalID: keep.ID, Title: "Scales", DurationSeconds: 600, Category: types.CategoryLearning}
	require.NoError(t, s.InsertMove(keepMove))

	moveID := move.ID
	require.NoError(t, s.InsertProgress(&types.DailyProgress{GoalID: goal.ID, MoveID: &moveID, Date: time.Now()}))

	require.NoError(t, s.DeleteGoal(goal.ID))

	moves, err := s.MovesForGoal(goal.ID)
	require.NoError(t, err)
	assert.Empty(t, moves)

	records, err := s.ProgressForDay(goal.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, records)

	// Unrelated goal untouched
	kept, err := s.MovesForGoal(keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestMovesForGoalOrderedByCreation(t *testing.T) {
	s := NewMemoryStore()
	goal := &types.Goal{Title: "Write a Novel"}
	require.NoError(t, s.InsertGoal(goal))

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		move := &types.Move{
			GoalID:          goal.ID,
			Title:           title,
			DurationSeconds: 600,
			Category:        types.CategoryWriting,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.InsertMove(move))
	}

	moves, err := s.MovesForGoal(goal.ID)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	assert.Equal(t, "first", moves[0].Title)
	assert.Equal(t, "third", moves[2].Title)
}

func TestInsertMoveRequiresGoal(t *testing.T) {
	s := NewMemoryStore()
	err := s.InsertMove(&types.Move{GoalID: "missing", Title: "Orphan", DurationSeconds: 60, Category: types.CategoryWriting})
	assert.Error(t, err)
}

func TestProgressForDayFiltersByCalendarDay(t *testing.T) {
	s := NewMemoryStore()
	goal := &types.Goal{Title: "Write a Novel"}
	require.NoError(t, s.InsertGoal(goal))

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	require.NoError(t, s.InsertProgress(&types.DailyProgress{GoalID: goal.ID, Date: yesterday, Skipped: true}))
	require.NoError(t, s.InsertProgress(&types.DailyProgress{GoalID: goal.ID, Date: now}))

	records, err := s.ProgressForDay(goal.ID, now)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Skipped)
}

func TestRecentCompletionsOrderAndLimit(t *testing.T) {
	s := NewMemoryStore()
	goal := &types.Goal{Title: "Write a Novel"}
	require.NoError(t, s.InsertGoal(goal))
	move := &types.Move{GoalID: goal.ID, Title: "Outline", DurationSeconds: 600, Category: types.CategoryWriting}
	require.NoError(t, s.InsertMove(move))
	moveID := move.ID

	for days := 1; days <= 5; days++ {
		require.NoError(t, s.InsertProgress(&types.DailyProgress{
			GoalID: goal.ID,
			MoveID: &moveID,
			Date:   time.Now().AddDate(0, 0, -days),
		}))
	}
	// Skips never count as completions
	require.NoError(t, s.InsertProgress(&types.DailyProgress{GoalID: goal.ID, Date: time.Now(), Skipped: true}))

	records, err := s.RecentCompletions(goal.ID, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].Date.After(records[1].Date))
	assert.True(t, records[1].Date.After(records[2].Date))
}

func TestUpdateMove(t *testing.T) {
	s := NewMemoryStore()
	goal := &types.Goal{Title: "Write a Novel"}
	require.NoError(t, s.InsertGoal(goal))
	move := &types.Move{GoalID: goal.ID, Title: "Outline", DurationSeconds: 600, Category: types.CategoryWriting}
	require.NoError(t, s.InsertMove(move))

	move.Title = "Outline act one"
	move.DurationSeconds = 1200
	require.NoError(t, s.UpdateMove(move))

	updated, err := s.GetMove(move.ID)
	require.NoError(t, err)
	assert.Equal(t, "Outline act one", updated.Title)
	assert.Equal(t, float64(1200), updated.DurationSeconds)
}

func TestGetMoveMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetMove("nope")
	assert.Error(t, err)
}
