package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/medsabbar/react-native-chess/internal/ai"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyFirstLaunch = "first_launch"
)

// Preferences stores the player's engine settings. Zero values mean "use
// the difficulty defaults" for the numeric limits and "none" for the
// paths.
type Preferences struct {
	Difficulty  ai.Difficulty `json:"difficulty"`
	SearchDepth int           `json:"search_depth"`
	MoveTimeMs  int           `json:"move_time_ms"`
	BookPath    string        `json:"book_path"`
	EnginePath  string        `json:"engine_path"`
	LastPlayed  time.Time     `json:"last_played"`
}

// DefaultPreferences returns the out-of-the-box settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty: ai.Medium,
		LastPlayed: time.Now(),
	}
}

// Config resolves the preferences into a selection Config, starting from
// the difficulty defaults and applying any explicit overrides.
func (p *Preferences) Config() ai.Config {
	cfg := p.Difficulty.Config()
	if p.SearchDepth > 0 {
		cfg.Depth = p.SearchDepth
	}
	if p.MoveTimeMs > 0 {
		cfg.TimeLimit = time.Duration(p.MoveTimeMs) * time.Millisecond
	}
	return cfg
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database at the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			firstLaunch = true
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves the player's settings
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads the player's settings, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}
