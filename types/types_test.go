package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.Valid())
	}
	assert.False(t, Category("gardening").Valid())
	assert.False(t, Category("").Valid())
}

func TestMoveValidate(t *testing.T) {
	move := Move{Title: "Outline", DurationSeconds: 600, Category: CategoryWriting}
	assert.NoError(t, move.Validate())

	noTitle := move
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())

	zeroDuration := move
	zeroDuration.DurationSeconds = 0
	assert.Error(t, zeroDuration.Validate())

	badCategory := move
	badCategory.Category = "gardening"
	assert.Error(t, badCategory.Validate())
}

func TestDetailLevelMultipliers(t *testing.T) {
	assert.Equal(t, 0.5, DetailVague.DurationMultiplier())
	assert.Equal(t, 0.75, DetailConcise.DurationMultiplier())
	assert.Equal(t, 1.0, DetailDetailed.DurationMultiplier())
	assert.Equal(t, 1.5, DetailGranular.DurationMultiplier())
	assert.Equal(t, 2.5, DetailStepByStep.DurationMultiplier())
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, time.September, 1, 0, 5, 0, 0, time.Local)
	night := time.Date(2026, time.September, 1, 23, 55, 0, 0, time.Local)
	nextDay := time.Date(2026, time.September, 2, 0, 5, 0, 0, time.Local)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func TestDailyStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "no_goal", StateNoGoal.String())
	assert.Equal(t, "postponed", StatePostponed.String())
}
