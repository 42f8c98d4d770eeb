package ai

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/notnil/chess"
)

// Test positions.
const (
	// Scholar's mate: Black to move, checkmated.
	blackMatedFEN = "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4"
	// Fool's mate: White to move, checkmated.
	whiteMatedFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	// Black king on h8 with no moves and not in check.
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	// A developed but unbalanced middlegame position.
	middlegameFEN = "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b - - 0 3"
)

func mustPosition(t *testing.T, fen string) *chess.Position {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("bad FEN %q: %v", fen, err)
	}
	return chess.NewGame(opt).Position()
}

func TestEvaluateCheckmate(t *testing.T) {
	pos := mustPosition(t, blackMatedFEN)
	if got := Evaluate(pos, Hard, nil); got != MateScore {
		t.Errorf("Black mated: got %v, want %v", got, MateScore)
	}

	pos = mustPosition(t, whiteMatedFEN)
	if got := Evaluate(pos, Hard, nil); got != -MateScore {
		t.Errorf("White mated: got %v, want %v", got, -MateScore)
	}
}

func TestEvaluateDraw(t *testing.T) {
	pos := mustPosition(t, stalemateFEN)
	if got := Evaluate(pos, Hard, nil); got != DrawScore {
		t.Errorf("stalemate: got %v, want exactly %v", got, DrawScore)
	}
	// Noise must not leak into terminal scores either.
	rng := rand.New(rand.NewSource(1))
	if got := Evaluate(pos, Easy, rng); got != DrawScore {
		t.Errorf("stalemate at easy tier: got %v, want exactly %v", got, DrawScore)
	}
}

func TestEvaluateStartingPositionBalanced(t *testing.T) {
	pos := chess.NewGame().Position()
	if got := Evaluate(pos, Hard, nil); got != 0 {
		t.Errorf("starting position: got %v, want 0", got)
	}
}

// mirrorFEN flips the position vertically and swaps the colors, dropping
// castling and en passant state.
func mirrorFEN(fen string) string {
	parts := strings.Fields(fen)
	ranks := strings.Split(parts[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	for i, r := range ranks {
		ranks[i] = strings.Map(func(c rune) rune {
			if unicode.IsUpper(c) {
				return unicode.ToLower(c)
			}
			return unicode.ToUpper(c)
		}, r)
	}
	side := "w"
	if parts[1] == "w" {
		side = "b"
	}
	return strings.Join(ranks, "/") + " " + side + " - - " + parts[4] + " " + parts[5]
}

func TestEvaluateMirrorAntisymmetry(t *testing.T) {
	for _, fen := range []string{
		middlegameFEN,
		"k7/8/8/3p4/4P3/8/8/7K w - - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	} {
		pos := mustPosition(t, fen)
		mirror := mustPosition(t, mirrorFEN(fen))

		score := Evaluate(pos, Hard, nil)
		mirrorScore := Evaluate(mirror, Hard, nil)
		if mirrorScore != -score {
			t.Errorf("FEN %s: score %v, mirrored %v, want exact negation", fen, score, mirrorScore)
		}
		t.Logf("%s -> %+.2f", fen, score)
	}
}

func TestEvaluateNoise(t *testing.T) {
	pos := chess.NewGame().Position()
	base := Evaluate(pos, Hard, nil)
	rng := rand.New(rand.NewSource(42))

	for tier, amp := range map[Difficulty]float64{Easy: 1.0, Medium: 0.5} {
		for i := 0; i < 100; i++ {
			got := Evaluate(pos, tier, rng)
			if diff := got - base; diff < -amp || diff > amp {
				t.Fatalf("%v noise out of range: %v (amplitude %v)", tier, diff, amp)
			}
		}
	}

	// Noise is re-drawn on every call, never cached.
	a := Evaluate(pos, Easy, rng)
	b := Evaluate(pos, Easy, rng)
	if a == b {
		t.Errorf("consecutive easy evaluations identical (%v); noise not re-drawn?", a)
	}

	// Hard is noise-free and deterministic.
	if Evaluate(pos, Hard, rng) != base {
		t.Error("hard tier evaluation not deterministic")
	}
}
