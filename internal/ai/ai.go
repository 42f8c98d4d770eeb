// Package ai implements the chess move-selection core: a static position
// evaluator, a capture-first move orderer, a depth- and time-limited
// alpha-beta search, and a difficulty policy that picks between them.
//
// Move legality, position updates and game-over detection come from the
// rules engine (github.com/notnil/chess); the core only consumes legal
// move lists and immutable position copies.
package ai

import (
	"math/rand"
	"time"

	"github.com/notnil/chess"
)

// Engine selects moves under a difficulty-tiered policy. It holds no
// per-game state; every SelectMove call is independent, and the only
// cross-call ingredient is the random source used by the low tiers.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine using the given random source. A nil rng
// gets a time-seeded one; tests pass a fixed seed for determinism.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// SelectMove picks a move for the side to move, or nil when the position
// has no legal moves. A nil result is a normal terminal signal, not a
// failure: the caller is expected to have checked game-over status.
//
//   - Easy picks uniformly at random among captures when any exist,
//     otherwise among all legal moves.
//   - Medium looks ahead one ply with a noisy evaluation.
//   - Hard runs the full iterative-deepening search.
func (e *Engine) SelectMove(pos *chess.Position, cfg Config) *chess.Move {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil
	}

	switch cfg.Difficulty {
	case Easy:
		return e.randomMove(moves)
	case Medium:
		return e.onePlyMove(pos, moves)
	default:
		return Search(pos, cfg.Depth, cfg.TimeLimit)
	}
}

// randomMove implements the easy tier: any capture beats any quiet move,
// the rest is chance.
func (e *Engine) randomMove(moves []*chess.Move) *chess.Move {
	if caps := captures(moves); len(caps) > 0 {
		return caps[e.rng.Intn(len(caps))]
	}
	return moves[e.rng.Intn(len(moves))]
}

// onePlyMove implements the medium tier: evaluate every successor
// position directly, captures examined first, keeping the first strictly
// best score for the side to move.
func (e *Engine) onePlyMove(pos *chess.Position, moves []*chess.Move) *chess.Move {
	maximizing := pos.Turn() == chess.White

	var best *chess.Move
	var bestScore float64
	for _, m := range orderMoves(moves) {
		score := Evaluate(pos.Update(m), Medium, e.rng)
		if best == nil ||
			(maximizing && score > bestScore) ||
			(!maximizing && score < bestScore) {
			best = m
			bestScore = score
		}
	}
	return best
}
