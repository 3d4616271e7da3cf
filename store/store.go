package store

import (
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rustyeddy/tradebook/account"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pkg/fsutil"
)

const (
	tradesFile   = "trades.dat"
	settingsFile = "settings.dat"
	imagesDir    = "images"
)

// Op labels a collection change for subscribers.
type Op string

const (
	OpAdd      Op = "add"
	OpUpdate   Op = "update"
	OpDelete   Op = "delete"
	OpReload   Op = "reload"
	OpSettings Op = "settings"
)

// Change is emitted after every mutating operation, once the mutation has
// been persisted. TradeID is empty for whole-collection and settings
// changes.
type Change struct {
	Op      Op
	TradeID string
}

// Store owns one account's trade collection and settings record for as
// long as that account is active. It is the single writer for the
// account's data directory; every mutation persists inline before
// returning. There is no locking because there is exactly one writer by
// construction.
type Store struct {
	root string
	acct account.Account
	log  *slog.Logger

	trades   []*journal.Trade
	settings *journal.Settings

	listeners []func(Change)

	// onNotice receives user-facing warnings about recoverable I/O
	// failures during loads. The presentation layer renders them.
	onNotice func(msg string)
}

// New constructs a store scoped to acct under root and loads whatever data
// already exists on disk. Load failures leave the default-constructed
// records in place; they never fail construction. onNotice may be nil.
func New(root string, acct account.Account, logger *slog.Logger, onNotice func(string)) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		root:     root,
		acct:     acct,
		log:      logger,
		onNotice: onNotice,
		settings: journal.DefaultSettings(),
	}
	s.Load()
	return s
}

// Account returns the account this store is scoped to.
func (s *Store) Account() account.Account {
	return s.acct
}

// Trades returns the live ordered collection. Callers mutate records
// through their setters and then call UpdateTrade to persist.
func (s *Store) Trades() []*journal.Trade {
	return s.trades
}

// Settings returns the live settings record; call UpdateSettings after
// mutating it.
func (s *Store) Settings() *journal.Settings {
	return s.settings
}

// Subscribe registers a change listener. Listeners run synchronously on
// the mutating call, after persistence.
func (s *Store) Subscribe(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

func (s *Store) dir() string {
	return filepath.Join(s.root, s.acct.ID)
}

func (s *Store) tradesPath() string   { return filepath.Join(s.dir(), tradesFile) }
func (s *Store) settingsPath() string { return filepath.Join(s.dir(), settingsFile) }

// Load reads settings then trades from disk. A missing file is normal for
// a fresh account and keeps the defaults silently; a read or decode error
// is logged and surfaced as a notice, and also keeps the defaults. Load
// never returns an error to the caller.
func (s *Store) Load() {
	s.loadSettings()
	s.loadTrades()
	s.emit(Change{Op: OpReload})
}

func (s *Store) loadTrades() {
	f, err := os.Open(s.tradesPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("failed to open trades file", "path", s.tradesPath(), "error", err)
			s.notice(fmt.Sprintf("Failed to load trades data: %v", err))
		}
		return
	}
	defer f.Close()

	var trades []*journal.Trade
	if err := gob.NewDecoder(f).Decode(&trades); err != nil {
		s.log.Error("failed to decode trades file", "path", s.tradesPath(), "error", err)
		s.notice(fmt.Sprintf("Failed to load trades data: %v", err))
		return
	}
	s.trades = trades
}

func (s *Store) loadSettings() {
	f, err := os.Open(s.settingsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("failed to open settings file", "path", s.settingsPath(), "error", err)
			s.notice(fmt.Sprintf("Failed to load settings data: %v", err))
		}
		return
	}
	defer f.Close()

	var settings journal.Settings
	if err := gob.NewDecoder(f).Decode(&settings); err != nil {
		s.log.Error("failed to decode settings file", "path", s.settingsPath(), "error", err)
		s.notice(fmt.Sprintf("Failed to load settings data: %v", err))
		return
	}
	s.settings = &settings
}

// Save persists the full in-memory state.
func (s *Store) Save() error {
	if err := s.SaveSettings(); err != nil {
		return err
	}
	return s.SaveTrades()
}

// SaveTrades serializes the whole trade collection to its file.
func (s *Store) SaveTrades() error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		s.log.Error("failed to create account directory", "dir", s.dir(), "error", err)
		return fmt.Errorf("create account directory: %w", err)
	}
	err := fsutil.WriteAtomic(s.tradesPath(), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(s.trades)
	})
	if err != nil {
		s.log.Error("failed to save trades file", "path", s.tradesPath(), "error", err)
		return fmt.Errorf("save trades: %w", err)
	}
	return nil
}

// SaveSettings serializes the settings record to its file.
func (s *Store) SaveSettings() error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		s.log.Error("failed to create account directory", "dir", s.dir(), "error", err)
		return fmt.Errorf("create account directory: %w", err)
	}
	err := fsutil.WriteAtomic(s.settingsPath(), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(s.settings)
	})
	if err != nil {
		s.log.Error("failed to save settings file", "path", s.settingsPath(), "error", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// AddTrade appends and persists.
func (s *Store) AddTrade(t *journal.Trade) error {
	s.trades = append(s.trades, t)
	if err := s.SaveTrades(); err != nil {
		return err
	}
	s.emit(Change{Op: OpAdd, TradeID: t.ID})
	return nil
}

// UpdateTrade persists the collection after t has been mutated in place
// through its setters, and notifies subscribers so list bindings refresh.
func (s *Store) UpdateTrade(t *journal.Trade) error {
	if err := s.SaveTrades(); err != nil {
		return err
	}
	s.emit(Change{Op: OpUpdate, TradeID: t.ID})
	return nil
}

// DeleteTrade removes the record by ID and persists.
func (s *Store) DeleteTrade(t *journal.Trade) error {
	for i := range s.trades {
		if s.trades[i].ID == t.ID {
			s.trades = append(s.trades[:i], s.trades[i+1:]...)
			break
		}
	}
	if err := s.SaveTrades(); err != nil {
		return err
	}
	s.emit(Change{Op: OpDelete, TradeID: t.ID})
	return nil
}

// FindTrade looks a record up by ID in the live collection.
func (s *Store) FindTrade(tradeID string) (*journal.Trade, bool) {
	for _, t := range s.trades {
		if t.ID == tradeID {
			return t, true
		}
	}
	return nil, false
}

// ReplaceTrades swaps in an imported collection wholesale and persists.
func (s *Store) ReplaceTrades(trades []*journal.Trade) error {
	s.trades = trades
	if err := s.SaveTrades(); err != nil {
		return err
	}
	s.emit(Change{Op: OpReload})
	return nil
}

// AppendTrades adds imported trades after the existing ones and persists.
func (s *Store) AppendTrades(trades []*journal.Trade) error {
	s.trades = append(s.trades, trades...)
	if err := s.SaveTrades(); err != nil {
		return err
	}
	s.emit(Change{Op: OpReload})
	return nil
}

// UpdateSettings persists the settings record and notifies subscribers.
func (s *Store) UpdateSettings() error {
	if err := s.SaveSettings(); err != nil {
		return err
	}
	s.emit(Change{Op: OpSettings})
	return nil
}

func (s *Store) notice(msg string) {
	if s.onNotice != nil {
		s.onNotice(msg)
	}
}
