package uciengine

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
)

func TestNewMissingBinary(t *testing.T) {
	_, err := New("/nonexistent/engine-binary", nil, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for missing engine binary")
	}
	t.Logf("got: %v", err)
}

func TestMatchLegal(t *testing.T) {
	pos := chess.NewGame().Position()
	moves := pos.ValidMoves()

	if got := matchLegal(pos, moves[0]); got == nil {
		t.Errorf("legal move %s not matched", moves[0])
	}
	if got := matchLegal(pos, nil); got != nil {
		t.Errorf("nil move matched to %s", got)
	}

	// A move legal elsewhere but not here must be rejected.
	opt, err := chess.FEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	other := chess.NewGame(opt).Position()
	var ra8 *chess.Move
	for _, m := range other.ValidMoves() {
		if m.String() == "a1a8" {
			ra8 = m
		}
	}
	if ra8 == nil {
		t.Fatal("a1a8 not generated")
	}
	if got := matchLegal(pos, ra8); got != nil {
		t.Errorf("foreign move matched to %s", got)
	}
}
