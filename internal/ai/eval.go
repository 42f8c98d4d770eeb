package ai

import (
	"math/rand"

	"github.com/notnil/chess"
)

// Evaluation constants. Scores are in pawn units, positive favors White.
const (
	PawnValue   = 1.0
	KnightValue = 3.0
	BishopValue = 3.0
	RookValue   = 5.0
	QueenValue  = 9.0
	KingValue   = 100.0 // sentinel, the king is never actually traded

	// MateScore is the terminal score for a checkmated position.
	MateScore = 1000.0

	// DrawScore is the score for any drawn position.
	DrawScore = 0.0
)

// Evaluator noise amplitude per difficulty, used to diversify low-tier play.
var noiseAmplitude = map[Difficulty]float64{
	Easy:   1.0,
	Medium: 0.5,
	Hard:   0.0,
}

// pieceValue returns the material value for a piece type.
func pieceValue(pt chess.PieceType) float64 {
	switch pt {
	case chess.Pawn:
		return PawnValue
	case chess.Knight:
		return KnightValue
	case chess.Bishop:
		return BishopValue
	case chess.Rook:
		return RookValue
	case chess.Queen:
		return QueenValue
	case chess.King:
		return KingValue
	}
	return 0
}

// Evaluate scores a position from White's perspective.
//
// Checkmate scores ±MateScore for the side that delivered mate, draws score
// exactly zero, and everything else is material plus piece-square bonuses.
// Easy and Medium add fresh uniform noise on every call (±1.0 and ±0.5
// pawns respectively) so low tiers don't play the same game twice; Hard is
// noise-free and therefore deterministic.
func Evaluate(pos *chess.Position, difficulty Difficulty, rng *rand.Rand) float64 {
	switch pos.Status() {
	case chess.Checkmate:
		// The side to move is the side that got mated.
		if pos.Turn() == chess.White {
			return -MateScore
		}
		return MateScore
	case chess.Stalemate, chess.ThreefoldRepetition, chess.FivefoldRepetition,
		chess.FiftyMoveRule, chess.SeventyFiveMoveRule, chess.InsufficientMaterial:
		return DrawScore
	}

	var score float64
	board := pos.Board()
	for sq := chess.Square(0); sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		value := pieceValue(piece.Type()) + squareBonus(piece.Type(), piece.Color(), sq)
		if piece.Color() == chess.White {
			score += value
		} else {
			score -= value
		}
	}

	if amp := noiseAmplitude[difficulty]; amp > 0 && rng != nil {
		score += (rng.Float64()*2 - 1) * amp
	}

	return score
}
