package book

import "github.com/notnil/chess"

// Polyglot Zobrist keys, generated once at startup. Opening books and the
// probe code must agree on these, so the generator and its seed are fixed.
var (
	polyglotPieces     [12][64]uint64 // [piece_kind][square]
	polyglotCastling   [4]uint64      // [KQkq]
	polyglotEnPassant  [8]uint64      // [file]
	polyglotSideToMove uint64
)

// Polyglot piece kinds: black pieces 0-5, white pieces 6-11, pawn first.
var polyglotKind = map[chess.PieceType]int{
	chess.Pawn:   0,
	chess.Knight: 1,
	chess.Bishop: 2,
	chess.Rook:   3,
	chess.Queen:  4,
	chess.King:   5,
}

func init() {
	initPolyglotKeys()
}

// Hash computes the Polyglot hash key for a position.
func Hash(pos *chess.Position) uint64 {
	var hash uint64

	board := pos.Board()
	for sq := chess.Square(0); sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		if p == chess.NoPiece {
			continue
		}
		kind := polyglotKind[p.Type()]
		if p.Color() == chess.White {
			kind += 6
		}
		hash ^= polyglotPieces[kind][int(sq)]
	}

	cr := pos.CastleRights()
	if cr.CanCastle(chess.White, chess.KingSide) {
		hash ^= polyglotCastling[0]
	}
	if cr.CanCastle(chess.White, chess.QueenSide) {
		hash ^= polyglotCastling[1]
	}
	if cr.CanCastle(chess.Black, chess.KingSide) {
		hash ^= polyglotCastling[2]
	}
	if cr.CanCastle(chess.Black, chess.QueenSide) {
		hash ^= polyglotCastling[3]
	}

	// The en passant key counts only when a pawn can actually capture.
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare && epCapturable(pos, ep) {
		hash ^= polyglotEnPassant[int(ep.File())]
	}

	if pos.Turn() == chess.White {
		hash ^= polyglotSideToMove
	}

	return hash
}

// epCapturable reports whether the side to move has a pawn beside the en
// passant target square.
func epCapturable(pos *chess.Position, ep chess.Square) bool {
	pawn := chess.BlackPawn
	rank := 3 // black pawns capture from rank 4
	if pos.Turn() == chess.White {
		pawn = chess.WhitePawn
		rank = 4 // white pawns capture from rank 5
	}

	file := int(ep.File())
	board := pos.Board()
	for _, df := range []int{-1, 1} {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if board.Piece(chess.Square(rank*8+f)) == pawn {
			return true
		}
	}
	return false
}

// initPolyglotKeys fills the key tables from the Polyglot PRNG: 768 piece
// keys, 4 castling keys, 8 en passant keys, one side-to-move key, in that
// order.
func initPolyglotKeys() {
	var s uint64 = 0x37b4a4b3f0d1c0d0

	rng := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = rng()
		}
	}
	for i := 0; i < 4; i++ {
		polyglotCastling[i] = rng()
	}
	for i := 0; i < 8; i++ {
		polyglotEnPassant[i] = rng()
	}
	polyglotSideToMove = rng()
}
