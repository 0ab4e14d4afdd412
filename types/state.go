package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// DailyState is the fixed set of states the daily engine moves through.
type DailyState int

const (
	StateLoading DailyState = iota
	StateNoGoal
	StatePending
	StateCompleted
	StateSkipped
	StatePostponed
)

func (s DailyState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNoGoal:
		return "no_goal"
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateSkipped:
		return "skipped"
	case StatePostponed:
		return "postponed"
	default:
		return "unknown"
	}
}

func (s DailyState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *DailyState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, known := range []DailyState{StateLoading, StateNoGoal, StatePending, StateCompleted, StateSkipped, StatePostponed} {
		if known.String() == name {
			*s = known
			return nil
		}
	}
	return fmt.Errorf("unknown daily state %q", name)
}

// DetailLevel is one of the five verbosity tiers a move can be rewritten at.
type DetailLevel string

const (
	DetailVague      DetailLevel = "vague"
	DetailConcise    DetailLevel = "concise"
	DetailDetailed   DetailLevel = "detailed"
	DetailGranular   DetailLevel = "granular"
	DetailStepByStep DetailLevel = "step_by_step"
)

var DetailLevels = []DetailLevel{
	DetailVague,
	DetailConcise,
	DetailDetailed,
	DetailGranular,
	DetailStepByStep,
}

func (l DetailLevel) Valid() bool {
	for _, known := range DetailLevels {
		if l == known {
			return true
		}
	}
	return false
}

// DurationMultiplier is guidance for the AI rewrite relative to the original
// estimate, not a hard constraint on the parsed result.
func (l DetailLevel) DurationMultiplier() float64 {
	switch l {
	case DetailVague:
		return 0.5
	case DetailConcise:
		return 0.75
	case DetailGranular:
		return 1.5
	case DetailStepByStep:
		return 2.5
	default:
		return 1.0
	}
}

// StateSnapshot is what the presentation layer renders: the engine's current
// state plus everything needed to act on it.
type StateSnapshot struct {
	State          DailyState   `json:"state"`
	Goal           *Goal        `json:"goal,omitempty"`
	TodaysMove     *Move        `json:"todays_move,omitempty"`
	Alternatives   []Move       `json:"alternative_moves,omitempty"`
	Suggestions    []Suggestion `json:"ai_suggestions,omitempty"`
	PostponedUntil *time.Time   `json:"postponed_until,omitempty"`
	Loading        bool         `json:"loading"`
	ErrorMessage   string       `json:"error,omitempty"`
}

type StateResponse struct {
	Success      bool          `json:"success"`
	Snapshot     StateSnapshot `json:"snapshot"`
	ErrorMessage string        `json:"error,omitempty"`
}
