// Package uciengine drives an external UCI engine process and falls back
// to the internal search when the engine fails or overruns its budget.
package uciengine

import (
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/rs/zerolog"
)

// gracePeriod is how long past the move budget the engine may run before
// we stop waiting for it. UCI movetime is advisory and engines routinely
// overshoot by a few milliseconds.
const gracePeriod = 500 * time.Millisecond

// Fallback produces a move when the external engine cannot.
type Fallback func(pos *chess.Position, timeLimit time.Duration) *chess.Move

// Engine wraps a UCI engine process (e.g. Stockfish).
type Engine struct {
	eng      *uci.Engine
	fallback Fallback
	log      zerolog.Logger
}

// New starts the engine binary at path and performs the UCI handshake.
func New(path string, fallback Fallback, logger zerolog.Logger) (*Engine, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("starting uci engine %q: %w", path, err)
	}

	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("uci handshake with %q: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("uci engine ready")
	return &Engine{eng: eng, fallback: fallback, log: logger}, nil
}

// BestMove asks the engine for a move within the time budget. On engine
// error, timeout, or an illegal reply the fallback answers instead, so
// the caller always gets a move while legal moves exist.
func (e *Engine) BestMove(pos *chess.Position, timeLimit time.Duration) *chess.Move {
	type result struct {
		move *chess.Move
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		err := e.eng.Run(
			uci.CmdPosition{Position: pos},
			uci.CmdGo{MoveTime: timeLimit},
		)
		if err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{move: e.eng.SearchResults().BestMove}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			e.log.Warn().Err(res.err).Msg("uci engine failed, using internal search")
			return e.fallback(pos, timeLimit)
		}
		if m := matchLegal(pos, res.move); m != nil {
			return m
		}
		e.log.Warn().Msg("uci engine returned an illegal move, using internal search")
		return e.fallback(pos, timeLimit)

	case <-time.After(timeLimit + gracePeriod):
		e.log.Warn().Dur("budget", timeLimit).Msg("uci engine timed out, using internal search")
		return e.fallback(pos, timeLimit)
	}
}

// Close shuts down the engine process.
func (e *Engine) Close() error {
	if e.eng == nil {
		return nil
	}
	return e.eng.Close()
}

// matchLegal maps the engine's reply onto the position's own legal move
// list, or nil when the reply does not apply.
func matchLegal(pos *chess.Position, m *chess.Move) *chess.Move {
	if m == nil {
		return nil
	}
	for _, lm := range pos.ValidMoves() {
		if lm.S1() == m.S1() && lm.S2() == m.S2() && lm.Promo() == m.Promo() {
			return lm
		}
	}
	return nil
}
