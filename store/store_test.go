package store

import (
	"encoding/gob"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/account"
	"github.com/rustyeddy/tradebook/journal"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), account.New("Test Account"), testLogger(), nil)
}

func testTrade(symbol string, returns float64) *journal.Trade {
	return journal.NewTrade("", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		"2h", symbol, 100, 110, 1, journal.Long, "setup1", "entry1", returns, 10000)
}

func TestNewStoreStartsWithDefaults(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	assert.Empty(t, s.Trades())
	assert.Equal(t, journal.DefaultSettings(), s.Settings())
}

func TestAddTradePersists(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Persist")
	s := New(root, acct, testLogger(), nil)

	tr := testTrade("EURUSD", 50)
	require.NoError(t, s.AddTrade(tr))

	// A fresh store over the same directory sees the trade.
	s2 := New(root, acct, testLogger(), nil)
	require.Len(t, s2.Trades(), 1)
	assert.Equal(t, tr.ID, s2.Trades()[0].ID)
	assert.Equal(t, "EURUSD", s2.Trades()[0].Symbol)
}

func TestUpdateTradePersistsInPlaceMutation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Update")
	s := New(root, acct, testLogger(), nil)

	tr := testTrade("EURUSD", 50)
	require.NoError(t, s.AddTrade(tr))

	tr.SetReturns(-25)
	tr.SetNotes("went wrong")
	require.NoError(t, s.UpdateTrade(tr))

	s2 := New(root, acct, testLogger(), nil)
	require.Len(t, s2.Trades(), 1)
	got := s2.Trades()[0]
	assert.Equal(t, -25.0, got.Returns)
	assert.Equal(t, journal.Loss, got.RefreshStatus())
	assert.Equal(t, "went wrong", got.Notes)
}

func TestDeleteTradeRemovesByID(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Delete")
	s := New(root, acct, testLogger(), nil)

	a := testTrade("EURUSD", 10)
	b := testTrade("GBPUSD", 20)
	require.NoError(t, s.AddTrade(a))
	require.NoError(t, s.AddTrade(b))

	require.NoError(t, s.DeleteTrade(a))
	require.Len(t, s.Trades(), 1)
	assert.Equal(t, b.ID, s.Trades()[0].ID)

	s2 := New(root, acct, testLogger(), nil)
	require.Len(t, s2.Trades(), 1)
	assert.Equal(t, b.ID, s2.Trades()[0].ID)
}

func TestMutationsEmitChanges(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	tr := testTrade("EURUSD", 10)
	require.NoError(t, s.AddTrade(tr))
	require.NoError(t, s.UpdateTrade(tr))
	require.NoError(t, s.DeleteTrade(tr))
	require.NoError(t, s.UpdateSettings())

	require.Len(t, changes, 4)
	assert.Equal(t, Change{Op: OpAdd, TradeID: tr.ID}, changes[0])
	assert.Equal(t, Change{Op: OpUpdate, TradeID: tr.ID}, changes[1])
	assert.Equal(t, Change{Op: OpDelete, TradeID: tr.ID}, changes[2])
	assert.Equal(t, Change{Op: OpSettings}, changes[3])
}

func TestReplaceAndAppendTrades(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Import")
	s := New(root, acct, testLogger(), nil)
	require.NoError(t, s.AddTrade(testTrade("OLD", 1)))

	imported := []*journal.Trade{testTrade("NEW1", 2), testTrade("NEW2", 3)}
	require.NoError(t, s.ReplaceTrades(imported))
	require.Len(t, s.Trades(), 2)
	assert.Equal(t, "NEW1", s.Trades()[0].Symbol)

	require.NoError(t, s.AppendTrades([]*journal.Trade{testTrade("NEW3", 4)}))
	require.Len(t, s.Trades(), 3)

	// Both paths persist immediately.
	s2 := New(root, acct, testLogger(), nil)
	require.Len(t, s2.Trades(), 3)
	assert.Equal(t, "NEW3", s2.Trades()[2].Symbol)
}

func TestSettingsPersistAcrossStores(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Settings")
	s := New(root, acct, testLogger(), nil)

	s.Settings().AccountBalance = 25000
	s.Settings().AddSymbol("US30")
	s.Settings().SetSetupTags(append(s.Settings().SetupTags, journal.NewTag("breakout")))
	require.NoError(t, s.UpdateSettings())

	s2 := New(root, acct, testLogger(), nil)
	assert.Equal(t, 25000.0, s2.Settings().AccountBalance)
	assert.Contains(t, s2.Settings().Symbols, "US30")
	assert.Contains(t, s2.Settings().SetupNames(), "breakout")
}

func TestLoadCorruptTradesKeepsDefaultsAndNotifies(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Corrupt")
	dir := filepath.Join(root, acct.ID)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, tradesFile), []byte("garbage"), 0o644))

	var notices []string
	s := New(root, acct, testLogger(), func(msg string) { notices = append(notices, msg) })

	assert.Empty(t, s.Trades(), "corrupt file falls back to the empty default")
	assert.Equal(t, journal.DefaultSettings(), s.Settings())
	require.NotEmpty(t, notices)
	assert.True(t, strings.Contains(notices[0], "Failed to load trades data"), "notice should name the failure: %q", notices[0])
}

func TestSaveAttachmentCopiesWithTimestampPrefix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Images")
	s := New(root, acct, testLogger(), nil)

	src := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(src, []byte("png bytes"), 0o644))

	stored, err := s.SaveAttachment(src)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(stored))
	assert.Equal(t, filepath.Join(root, acct.ID, imagesDir), filepath.Dir(stored))

	base := filepath.Base(stored)
	assert.True(t, strings.HasSuffix(base, "_chart.png"), "stored name keeps the original: %q", base)
	assert.Greater(t, len(base), len("_chart.png"), "millisecond prefix expected")

	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)
}

func TestSaveAttachmentUnreadableSource(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	stored, err := s.SaveAttachment(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
	assert.Empty(t, stored)
}

func TestDeleteAttachment(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	src := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	stored, err := s.SaveAttachment(src)
	require.NoError(t, err)

	require.NoError(t, s.DeleteAttachment(stored))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestTradesFileHoldsWholeCollection(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	acct := account.New("Raw")
	s := New(root, acct, testLogger(), nil)
	require.NoError(t, s.AddTrade(testTrade("EURUSD", 10)))
	require.NoError(t, s.AddTrade(testTrade("GBPUSD", -5)))

	// The trades file is a plain gob of the ordered collection.
	f, err := os.Open(filepath.Join(root, acct.ID, tradesFile))
	require.NoError(t, err)
	defer f.Close()

	var onDisk []*journal.Trade
	require.NoError(t, gob.NewDecoder(f).Decode(&onDisk))
	require.Len(t, onDisk, 2)
	assert.Equal(t, "EURUSD", onDisk[0].Symbol)
	assert.Equal(t, "GBPUSD", onDisk[1].Symbol)
}
