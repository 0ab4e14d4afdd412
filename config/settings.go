package config

import "time"

// Engine and suggestion tunables
var Settings = EngineSettings{
	DebounceWindow:       800 * time.Millisecond,
	AIRequestTimeout:     30 * time.Second,
	MaxOutputTokens:      1000,
	Temperature:          0.3,
	MaxPromptTokens:      6000,
	RecentCompletions:    3,
	NewMovesMin:          3,
	NewMovesMax:          5,
	AlternativeMoves:     3,
	DefaultMoveDuration:  900, // seconds
	DefaultMoveCategory:  "planning",
	RecentTitleCacheSize: 64,
}

type EngineSettings struct {
	DebounceWindow       time.Duration
	AIRequestTimeout     time.Duration
	MaxOutputTokens      int
	Temperature          float64
	MaxPromptTokens      int
	RecentCompletions    int
	NewMovesMin          int
	NewMovesMax          int
	AlternativeMoves     int
	DefaultMoveDuration  float64
	DefaultMoveCategory  string
	RecentTitleCacheSize int
}
