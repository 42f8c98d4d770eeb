package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/medsabbar/react-native-chess/internal/ai"
	"github.com/medsabbar/react-native-chess/internal/book"
	"github.com/medsabbar/react-native-chess/internal/storage"
	"github.com/medsabbar/react-native-chess/internal/uciengine"
)

var (
	fenFlag        = flag.String("fen", "", "position to move from (default: starting position)")
	difficultyFlag = flag.String("difficulty", "", "easy, medium or hard (default: saved preference)")
	depthFlag      = flag.Int("depth", 0, "override maximum search depth in plies")
	moveTimeFlag   = flag.Int("movetime", 0, "override move time budget in milliseconds")
	bookFlag       = flag.String("book", "", "Polyglot opening book file")
	engineFlag     = flag.String("engine", "", "external UCI engine binary for the hard tier")
	seedFlag       = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	quietFlag      = flag.Bool("quiet", false, "suppress log output")
)

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *quietFlag {
		logger = zerolog.Nop()
	}

	// Saved preferences seed the settings; flags override and persist.
	prefs := loadPreferences(logger)

	cfg := prefs.Config()
	logger.Debug().
		Stringer("difficulty", cfg.Difficulty).
		Int("depth", cfg.Depth).
		Dur("movetime", cfg.TimeLimit).
		Msg("selection config")

	pos, err := parsePosition(*fenFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -fen")
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := selectMove(pos, cfg, prefs, rng, logger)
	if m == nil {
		// Checkmate or stalemate: there is no move to make.
		fmt.Println("(none)")
		return
	}
	fmt.Println(m)
}

// loadPreferences reads the saved settings and applies flag overrides,
// writing them back so the next run starts from the same place. Storage
// failures degrade to defaults; move selection never depends on the
// database being available.
func loadPreferences(logger zerolog.Logger) *storage.Preferences {
	prefs := storage.DefaultPreferences()

	var store *storage.Storage
	if s, err := storage.NewStorage(); err != nil {
		logger.Warn().Err(err).Msg("preferences unavailable, using defaults")
	} else {
		store = s
		defer store.Close()

		if first, err := store.IsFirstLaunch(); err == nil && first {
			logger.Info().Msg("first launch, starting from default preferences")
			if err := store.MarkFirstLaunchComplete(); err != nil {
				logger.Warn().Err(err).Msg("recording first launch failed")
			}
		}

		if p, err := store.LoadPreferences(); err != nil {
			logger.Warn().Err(err).Msg("loading preferences failed, using defaults")
		} else {
			prefs = p
		}
	}

	dirty := false
	if *difficultyFlag != "" {
		d, err := ai.ParseDifficulty(*difficultyFlag)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid -difficulty")
		}
		prefs.Difficulty = d
		dirty = true
	}
	if *depthFlag > 0 {
		prefs.SearchDepth = *depthFlag
		dirty = true
	}
	if *moveTimeFlag > 0 {
		prefs.MoveTimeMs = *moveTimeFlag
		dirty = true
	}
	if *bookFlag != "" {
		prefs.BookPath = *bookFlag
		dirty = true
	}
	if *engineFlag != "" {
		prefs.EnginePath = *engineFlag
		dirty = true
	}

	if dirty && store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			logger.Warn().Err(err).Msg("saving preferences failed")
		}
	}

	return prefs
}

// parsePosition builds the position to move from. An empty FEN means the
// standard starting position.
func parsePosition(fen string) (*chess.Position, error) {
	if fen == "" {
		return chess.NewGame().Position(), nil
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing FEN %q: %w", fen, err)
	}
	return chess.NewGame(opt).Position(), nil
}

// selectMove runs the move sources in order: opening book, external UCI
// engine (hard tier only), then the internal difficulty policy.
func selectMove(pos *chess.Position, cfg ai.Config, prefs *storage.Preferences, rng *rand.Rand, logger zerolog.Logger) *chess.Move {
	if len(pos.ValidMoves()) == 0 {
		return nil
	}

	if prefs.BookPath != "" {
		if m := probeBook(pos, prefs.BookPath, rng, logger); m != nil {
			return m
		}
	}

	if cfg.Difficulty == ai.Hard && prefs.EnginePath != "" {
		fallback := func(p *chess.Position, timeLimit time.Duration) *chess.Move {
			return ai.Search(p, cfg.Depth, timeLimit)
		}
		ext, err := uciengine.New(prefs.EnginePath, fallback, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("external engine unavailable, using internal search")
		} else {
			defer ext.Close()
			return ext.BestMove(pos, cfg.TimeLimit)
		}
	}

	return ai.NewEngine(rng).SelectMove(pos, cfg)
}

func probeBook(pos *chess.Position, path string, rng *rand.Rand, logger zerolog.Logger) *chess.Move {
	b, err := book.LoadPolyglot(path)
	if err != nil {
		logger.Warn().Err(err).Str("book", path).Msg("opening book unavailable")
		return nil
	}

	m, found := b.Probe(pos, rng)
	if !found {
		logger.Debug().Msg("position not in opening book")
		return nil
	}
	logger.Info().Stringer("move", m).Msg("book move")
	return m
}
