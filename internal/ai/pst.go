package ai

import "github.com/notnil/chess"

// Piece-square tables, in pawn units, written from White's point of view
// with rank 8 as the top row. Black reads the same table with the rank
// index mirrored, so both sides see an identically oriented board.
//
// Every entry is a multiple of 0.5, which keeps sums exact in float64 and
// the evaluation independent of summation order.

var pawnTable = [8][8]float64{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 5, 5, 5, 5, 5, 5, 5},
	{1, 1, 2, 3, 3, 2, 1, 1},
	{0.5, 0.5, 1, 2.5, 2.5, 1, 0.5, 0.5},
	{0, 0, 0, 2, 2, 0, 0, 0},
	{0.5, -0.5, -1, 0, 0, -1, -0.5, 0.5},
	{0.5, 1, 1, -2, -2, 1, 1, 0.5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]float64{
	{-5, -4, -3, -3, -3, -3, -4, -5},
	{-4, -2, 0, 0, 0, 0, -2, -4},
	{-3, 0, 1, 1.5, 1.5, 1, 0, -3},
	{-3, 0.5, 1.5, 2, 2, 1.5, 0.5, -3},
	{-3, 0, 1.5, 2, 2, 1.5, 0, -3},
	{-3, 0.5, 1, 1.5, 1.5, 1, 0.5, -3},
	{-4, -2, 0, 0.5, 0.5, 0, -2, -4},
	{-5, -4, -3, -3, -3, -3, -4, -5},
}

var bishopTable = [8][8]float64{
	{-2, -1, -1, -1, -1, -1, -1, -2},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0.5, 1, 1, 0.5, 0, -1},
	{-1, 0.5, 0.5, 1, 1, 0.5, 0.5, -1},
	{-1, 0, 1, 1, 1, 1, 0, -1},
	{-1, 1, 1, 1, 1, 1, 1, -1},
	{-1, 0.5, 0, 0, 0, 0, 0.5, -1},
	{-2, -1, -1, -1, -1, -1, -1, -2},
}

var rookTable = [8][8]float64{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0.5, 1, 1, 1, 1, 1, 1, 0.5},
	{-0.5, 0, 0, 0, 0, 0, 0, -0.5},
	{-0.5, 0, 0, 0, 0, 0, 0, -0.5},
	{-0.5, 0, 0, 0, 0, 0, 0, -0.5},
	{-0.5, 0, 0, 0, 0, 0, 0, -0.5},
	{-0.5, 0, 0, 0, 0, 0, 0, -0.5},
	{0, 0, 0, 0.5, 0.5, 0, 0, 0},
}

var queenTable = [8][8]float64{
	{-2, -1, -1, -0.5, -0.5, -1, -1, -2},
	{-1, 0, 0, 0, 0, 0, 0, -1},
	{-1, 0, 0.5, 0.5, 0.5, 0.5, 0, -1},
	{-0.5, 0, 0.5, 0.5, 0.5, 0.5, 0, -0.5},
	{0, 0, 0.5, 0.5, 0.5, 0.5, 0, -0.5},
	{-1, 0.5, 0.5, 0.5, 0.5, 0.5, 0, -1},
	{-1, 0, 0.5, 0, 0, 0, 0, -1},
	{-2, -1, -1, -0.5, -0.5, -1, -1, -2},
}

var kingTable = [8][8]float64{
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-3, -4, -4, -5, -5, -4, -4, -3},
	{-2, -3, -3, -4, -4, -3, -3, -2},
	{-1, -2, -2, -2, -2, -2, -2, -1},
	{2, 2, 0, 0, 0, 0, 2, 2},
	{2, 3, 1, 0, 0, 1, 3, 2},
}

var pieceTables = map[chess.PieceType]*[8][8]float64{
	chess.Pawn:   &pawnTable,
	chess.Knight: &knightTable,
	chess.Bishop: &bishopTable,
	chess.Rook:   &rookTable,
	chess.Queen:  &queenTable,
	chess.King:   &kingTable,
}

// squareBonus returns the positional bonus for a piece of the given type
// and color standing on sq.
func squareBonus(pt chess.PieceType, color chess.Color, sq chess.Square) float64 {
	table, ok := pieceTables[pt]
	if !ok {
		return 0
	}
	rank := int(sq.Rank())
	file := int(sq.File())
	if color == chess.White {
		return table[7-rank][file]
	}
	return table[rank][file]
}
