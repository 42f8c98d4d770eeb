package ai

import (
	"sort"

	"github.com/notnil/chess"
)

// isCapture reports whether a move takes an enemy piece. En passant is
// tagged separately by the rules engine, so check both.
func isCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

// orderMoves returns the moves with captures first. The sort is stable:
// within captures and within quiet moves the generator's order is kept,
// which also makes tie-breaks in the search reproducible.
//
// This is a cutoff heuristic for alpha-beta, not a correctness
// requirement; examining likely-good moves first just prunes more.
func orderMoves(moves []*chess.Move) []*chess.Move {
	ordered := make([]*chess.Move, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return isCapture(ordered[i]) && !isCapture(ordered[j])
	})
	return ordered
}

// captures returns only the capturing moves, in generator order.
func captures(moves []*chess.Move) []*chess.Move {
	var out []*chess.Move
	for _, m := range moves {
		if isCapture(m) {
			out = append(out, m)
		}
	}
	return out
}
