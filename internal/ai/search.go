package ai

import (
	"math"
	"time"

	"github.com/notnil/chess"
)

// Search runs an iterative-deepening minimax with alpha-beta pruning and
// returns the best move found within the time budget, or nil if the
// position has no legal moves.
//
// The deadline is soft: it is polled once per node and once per root move,
// never preempted. Each completed depth replaces the previous depth's
// choice; when time runs out mid-iteration the deepest fully-scored result
// stands. The first root move of every iteration is always scored before
// the deadline is consulted, so any position with a legal move yields a
// move even with a zero budget.
func Search(pos *chess.Position, maxDepth int, timeLimit time.Duration) *chess.Move {
	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return nil
	}

	deadline := time.Now().Add(timeLimit)
	maximizing := pos.Turn() == chess.White

	var best *chess.Move
	for depth := 1; depth <= maxDepth; depth++ {
		var depthBest *chess.Move
		var depthScore float64

		for _, m := range orderMoves(moves) {
			child := pos.Update(m)
			score := minimax(child, depth-1, child.Turn() == chess.White,
				math.Inf(-1), math.Inf(1), deadline)

			// Strict improvement only: ties keep the earliest move.
			if depthBest == nil ||
				(maximizing && score > depthScore) ||
				(!maximizing && score < depthScore) {
				depthBest = m
				depthScore = score
			}

			if time.Now().After(deadline) {
				break
			}
		}

		if depthBest != nil {
			best = depthBest
		}
		if time.Now().After(deadline) {
			break
		}
	}

	return best
}

// minimax evaluates a subtree to the given remaining depth.
//
// maximizing is true when the side to move in pos is White. At depth zero,
// at a game-over position, or past the deadline the node collapses to the
// static evaluation (noise-free). Past-deadline nodes therefore return
// quickly and the partial max/min accumulated above is kept; the budgets
// are soft and the depths shallow, so the approximation is acceptable.
func minimax(pos *chess.Position, depth int, maximizing bool, alpha, beta float64, deadline time.Time) float64 {
	if depth == 0 || pos.Status() != chess.NoMethod || time.Now().After(deadline) {
		return Evaluate(pos, Hard, nil)
	}

	moves := pos.ValidMoves()
	if len(moves) == 0 {
		return Evaluate(pos, Hard, nil)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, m := range orderMoves(moves) {
			score := minimax(pos.Update(m), depth-1, false, alpha, beta, deadline)
			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, m := range orderMoves(moves) {
		score := minimax(pos.Update(m), depth-1, true, alpha, beta, deadline)
		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
