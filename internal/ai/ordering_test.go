package ai

import (
	"testing"

	"github.com/notnil/chess"
)

func TestOrderMovesCapturesFirst(t *testing.T) {
	// White has three captures: dxe5, Nxe5 and Bxc6.
	pos := mustPosition(t, "r1bqkbnr/ppp2ppp/2np4/1B2p3/3PP3/5N2/PPP2PPP/RNBQK2R w KQkq - 0 4")
	moves := pos.ValidMoves()

	ordered := orderMoves(moves)
	if len(ordered) != len(moves) {
		t.Fatalf("ordering changed move count: %d != %d", len(ordered), len(moves))
	}

	seenQuiet := false
	nCaptures := 0
	for _, m := range ordered {
		if isCapture(m) {
			nCaptures++
			if seenQuiet {
				t.Fatalf("capture %s after a quiet move", m)
			}
		} else {
			seenQuiet = true
		}
	}
	if nCaptures != 3 {
		t.Errorf("expected 3 captures, got %d", nCaptures)
	}
}

func TestOrderMovesStable(t *testing.T) {
	pos := mustPosition(t, "r1bqkbnr/ppp2ppp/2np4/1B2p3/3PP3/5N2/PPP2PPP/RNBQK2R w KQkq - 0 4")
	moves := pos.ValidMoves()
	ordered := orderMoves(moves)

	// Within each class the generator's order must survive.
	var wantQuiet, gotQuiet []string
	for _, m := range moves {
		if !isCapture(m) {
			wantQuiet = append(wantQuiet, m.String())
		}
	}
	for _, m := range ordered {
		if !isCapture(m) {
			gotQuiet = append(gotQuiet, m.String())
		}
	}
	if len(wantQuiet) != len(gotQuiet) {
		t.Fatalf("quiet move count changed: %d != %d", len(gotQuiet), len(wantQuiet))
	}
	for i := range wantQuiet {
		if wantQuiet[i] != gotQuiet[i] {
			t.Fatalf("quiet order changed at %d: got %s, want %s", i, gotQuiet[i], wantQuiet[i])
		}
	}

	// The input slice itself is left alone.
	fresh := pos.ValidMoves()
	for i := range moves {
		if moves[i].String() != fresh[i].String() {
			t.Fatal("orderMoves mutated its input")
		}
	}
}

func TestCapturesFilter(t *testing.T) {
	// Lone capture exd5 plus three king moves and one pawn push.
	pos := mustPosition(t, "k7/8/8/3p4/4P3/8/8/7K w - - 0 1")
	caps := captures(pos.ValidMoves())
	if len(caps) != 1 || caps[0].String() != "e4d5" {
		t.Fatalf("captures = %v, want [e4d5]", caps)
	}
}

func TestIsCaptureEnPassant(t *testing.T) {
	pos := mustPosition(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	var ep *chess.Move
	for _, m := range pos.ValidMoves() {
		if m.String() == "e5d6" {
			ep = m
		}
	}
	if ep == nil {
		t.Fatal("en passant e5d6 not generated")
	}
	if !isCapture(ep) {
		t.Error("en passant not classified as a capture")
	}
}
