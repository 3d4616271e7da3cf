package journal

import (
	"time"

	"github.com/rustyeddy/tradebook/pkg/id"
)

// Trade sides.
const (
	Long  = "LONG"
	Short = "SHORT"
)

// Trade statuses.
const (
	Win  = "WIN"
	Loss = "LOSS"
)

// Trade is one closed position. Returns is the authoritative signed P&L
// entered by the trader; it is not derived from entry/exit/size. Status and
// ReturnPercentage are derived fields maintained by the setters below —
// mutate through the setters, not the fields, or the derived values go
// stale.
type Trade struct {
	ID               string
	Date             time.Time // calendar date, no time component
	Duration         string    // free-form, e.g. "2h 15m"
	Symbol           string
	Entry            float64
	Exit             float64
	Size             float64
	Side             string
	Setup            string
	EntryType        string
	Returns          float64
	ReturnPercentage float64
	Status           string
	Balance          float64 // account balance snapshot at trade time
	Notes            string
	Images           []string
}

// NewTrade builds a trade from explicit fields. The status argument is
// accepted for compatibility with legacy imports but always overwritten
// from the sign of returns.
func NewTrade(status string, date time.Time, duration, symbol string,
	entry, exit, size float64, side, setup, entryType string,
	returns, balance float64) *Trade {

	_ = status

	t := &Trade{
		ID:        id.New(),
		Date:      date,
		Duration:  duration,
		Symbol:    symbol,
		Entry:     entry,
		Exit:      exit,
		Size:      size,
		Side:      side,
		Setup:     setup,
		EntryType: entryType,
		Returns:   returns,
		Balance:   balance,
	}
	t.recomputeReturnPercentage()
	t.deriveStatusFromReturns()
	return t
}

// recomputeReturnPercentage derives the percentage move from entry toward
// exit. It only fires from SetEntry, SetSide and SetReturns; an exit- or
// size-only change leaves the percentage untouched. That asymmetry is
// long-standing journal behavior and is pinned by tests — do not extend
// the trigger set.
func (t *Trade) recomputeReturnPercentage() {
	if t.Entry > 0 && t.Size > 0 {
		switch t.Side {
		case Long:
			t.ReturnPercentage = (t.Exit - t.Entry) / t.Entry * 100
		case Short:
			t.ReturnPercentage = (t.Entry - t.Exit) / t.Entry * 100
		}
	} else {
		t.ReturnPercentage = 0
	}
}

// deriveStatusFromReturns and deriveStatusFromPercentage are two distinct
// derivation paths for Status. Returns-sign is the authoritative rule used
// on construction, on SetReturns and on every RefreshStatus read.
// Percentage-sign fires only from SetSide. The divergence is preserved
// behavior; keep them separate.
func (t *Trade) deriveStatusFromReturns() {
	if t.Returns >= 0 {
		t.Status = Win
	} else {
		t.Status = Loss
	}
}

func (t *Trade) deriveStatusFromPercentage() {
	if t.ReturnPercentage > 0 {
		t.Status = Win
	} else {
		t.Status = Loss
	}
}

func (t *Trade) SetDate(d time.Time)     { t.Date = d }
func (t *Trade) SetDuration(s string)    { t.Duration = s }
func (t *Trade) SetSymbol(s string)      { t.Symbol = s }
func (t *Trade) SetSetup(s string)       { t.Setup = s }
func (t *Trade) SetEntryType(s string)   { t.EntryType = s }
func (t *Trade) SetNotes(s string)       { t.Notes = s }
func (t *Trade) SetBalance(b float64)    { t.Balance = b }

// SetEntry stores the entry price and recomputes the return percentage.
// No validation: negative or zero prices are accepted, the percentage rule
// simply yields 0 for a non-positive entry.
func (t *Trade) SetEntry(v float64) {
	t.Entry = v
	t.recomputeReturnPercentage()
}

// SetExit stores the exit price only. The return percentage is NOT
// recomputed here.
func (t *Trade) SetExit(v float64) {
	t.Exit = v
}

// SetSize stores the quantity only. Like SetExit, no recompute.
func (t *Trade) SetSize(v float64) {
	t.Size = v
}

// SetSide recomputes the return percentage for the new direction and then
// re-derives status from the percentage sign, not the returns sign.
func (t *Trade) SetSide(side string) {
	t.Side = side
	t.recomputeReturnPercentage()
	t.deriveStatusFromPercentage()
}

// SetReturns stores the signed P&L, re-derives status from its sign and
// refreshes the return percentage.
func (t *Trade) SetReturns(v float64) {
	t.Returns = v
	t.deriveStatusFromReturns()
	t.recomputeReturnPercentage()
}

// RefreshStatus is the status read path: it always re-derives Status from
// the current sign of Returns before returning it, so a stale value left
// behind by SetSide never leaks out of a read.
func (t *Trade) RefreshStatus() string {
	t.deriveStatusFromReturns()
	return t.Status
}

// AddImage appends a stored attachment path.
func (t *Trade) AddImage(path string) {
	t.Images = append(t.Images, path)
}

// RemoveImage drops the first reference to path. The caller owns deleting
// the underlying file.
func (t *Trade) RemoveImage(path string) {
	for i, p := range t.Images {
		if p == path {
			t.Images = append(t.Images[:i], t.Images[i+1:]...)
			return
		}
	}
}
