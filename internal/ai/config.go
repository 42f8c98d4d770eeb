package ai

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // random capture-preferring play
	Medium                   // one-ply lookahead
	Hard                     // full iterative-deepening search
)

// String returns the lowercase name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty converts a difficulty name to its value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// Config constrains a single move selection. It is an immutable value:
// reconfiguration between moves replaces the whole Config, and a running
// selection never observes a change.
type Config struct {
	Depth      int           // maximum search depth in plies
	Difficulty Difficulty    // which selection strategy to use
	TimeLimit  time.Duration // soft wall-clock budget for the search
}

// DifficultySettings maps each difficulty to its recommended limits.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {Depth: 2, Difficulty: Easy, TimeLimit: 400 * time.Millisecond},
	Medium: {Depth: 3, Difficulty: Medium, TimeLimit: 800 * time.Millisecond},
	Hard:   {Depth: 4, Difficulty: Hard, TimeLimit: 1500 * time.Millisecond},
}

// Config returns the default Config for the difficulty.
func (d Difficulty) Config() Config {
	cfg, ok := DifficultySettings[d]
	if !ok {
		return DifficultySettings[Medium]
	}
	return cfg
}
