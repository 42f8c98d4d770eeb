// Package book implements Polyglot opening book loading and probing on
// top of the rules engine's positions.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/notnil/chess"
)

// Entry is a single book move for a position. From, To and Promo describe
// the move in board coordinates; the actual *chess.Move is recovered by
// matching against the legal moves when probing.
type Entry struct {
	From   chess.Square
	To     chess.Square
	Promo  chess.PieceType
	Weight uint16
}

// Book is an opening book keyed by Polyglot position hash.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{
		entries: make(map[uint64][]Entry),
	}
}

// LoadPolyglot loads a Polyglot format opening book from a file.
func LoadPolyglot(filename string) (*Book, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadPolyglotReader(file)
}

// LoadPolyglotReader loads a Polyglot format book from a reader.
//
// Each entry is 16 bytes, big-endian: 8 bytes position key, 2 bytes move,
// 2 bytes weight, 4 bytes learn data (ignored).
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	b := New()

	var raw [16]byte
	for {
		_, err := io.ReadFull(r, raw[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		entry, ok := decodeMove(moveData)
		if !ok {
			continue
		}
		entry.Weight = weight
		b.entries[key] = append(b.entries[key], entry)
	}

	return b, nil
}

// decodeMove unpacks a Polyglot move encoding. Bits 0-5 are the target
// square, 6-11 the source square, 12-14 the promotion piece (0=none,
// 1=knight, 2=bishop, 3=rook, 4=queen).
func decodeMove(data uint16) (Entry, bool) {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := int((data >> 12) & 7)

	from := chess.Square(fromRank*8 + fromFile)
	to := chess.Square(toRank*8 + toFile)

	// Polyglot encodes castling as king-captures-rook; convert to the
	// king's destination square.
	switch {
	case from == chess.E1 && to == chess.H1:
		to = chess.G1
	case from == chess.E1 && to == chess.A1:
		to = chess.C1
	case from == chess.E8 && to == chess.H8:
		to = chess.G8
	case from == chess.E8 && to == chess.A8:
		to = chess.C8
	}

	promoTypes := [5]chess.PieceType{
		chess.NoPieceType, chess.Knight, chess.Bishop, chess.Rook, chess.Queen,
	}
	if promo >= len(promoTypes) {
		return Entry{}, false
	}

	return Entry{From: from, To: to, Promo: promoTypes[promo]}, true
}

// Probe looks up the position and returns a book move chosen by weighted
// random selection, verified against the legal moves. A nil rng picks the
// heaviest entry.
func (b *Book) Probe(pos *chess.Position, rng *rand.Rand) (*chess.Move, bool) {
	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		return nil, false
	}

	chosen := entries[0]
	if rng != nil {
		total := uint32(0)
		for _, e := range entries {
			total += uint32(e.Weight)
		}
		if total > 0 {
			r := rng.Uint32() % total
			cumulative := uint32(0)
			for _, e := range entries {
				cumulative += uint32(e.Weight)
				if r < cumulative {
					chosen = e
					break
				}
			}
		}
	}

	m := match(pos, chosen)
	if m == nil {
		return nil, false
	}
	return m, true
}

// ProbeAll returns all book entries for the position, heaviest first.
func (b *Book) ProbeAll(pos *chess.Position) []Entry {
	if b == nil {
		return nil
	}

	entries, ok := b.entries[Hash(pos)]
	if !ok {
		return nil
	}

	result := make([]Entry, len(entries))
	copy(result, entries)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Weight > result[j].Weight
	})
	return result
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// match finds the legal move corresponding to a book entry, or nil when
// the entry does not apply to the position.
func match(pos *chess.Position, e Entry) *chess.Move {
	for _, m := range pos.ValidMoves() {
		if m.S1() == e.From && m.S2() == e.To && m.Promo() == e.Promo {
			return m
		}
	}
	return nil
}
