package account

import (
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rustyeddy/tradebook/pkg/fsutil"
)

const (
	accountsFile = "accounts.dat"

	// DefaultAccountName is the account the registry self-heals with
	// whenever it would otherwise be empty.
	DefaultAccountName = "Default Account"
)

// Registry owns the account list and the current-account pointer. It is
// never empty: removing the last account recreates a default one. Every
// mutation persists the whole list to <root>/accounts.dat before returning.
//
// I/O failures are logged and surfaced through OnNotice; they never
// propagate to the caller.
type Registry struct {
	root string
	log  *slog.Logger

	accounts []Account
	current  Account

	// onNotice receives user-facing warnings about recoverable I/O
	// failures. The presentation layer renders them.
	onNotice func(msg string)
}

// NewRegistry loads the persisted registry from root. A missing, corrupt or
// empty registry falls back to a single default account, persisted
// immediately. The current account starts as the first in the list.
// onNotice may be nil.
func NewRegistry(root string, logger *slog.Logger, onNotice func(string)) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{root: root, log: logger, onNotice: onNotice}
	r.load()

	if len(r.accounts) == 0 {
		def := New(DefaultAccountName)
		r.accounts = append(r.accounts, def)
		r.current = def
		r.save()
	} else {
		r.current = r.accounts[0]
	}
	return r
}

// List returns the accounts in insertion order.
func (r *Registry) List() []Account {
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Current returns the current account.
func (r *Registry) Current() Account {
	return r.current
}

// SetCurrent sets the current account directly. Membership is not
// validated; callers pick from List.
func (r *Registry) SetCurrent(a Account) {
	r.current = a
}

// Add constructs an account from name, appends it and persists the
// registry.
func (r *Registry) Add(name string) Account {
	a := New(name)
	r.accounts = append(r.accounts, a)
	r.save()
	return a
}

// Remove drops the account by ID and applies the self-healing policy: an
// emptied list gets a fresh default account made current; removing the
// current account promotes the new first element; otherwise current is
// untouched. The registry is persisted before the removed account's data
// directory is deleted, so a failed deletion never leaves a phantom
// registry entry. Deletion failure is logged, not propagated.
func (r *Registry) Remove(a Account) {
	wasCurrent := r.current.ID == a.ID

	for i := range r.accounts {
		if r.accounts[i].ID == a.ID {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			break
		}
	}

	if len(r.accounts) == 0 {
		def := New(DefaultAccountName)
		r.accounts = append(r.accounts, def)
		r.current = def
	} else if wasCurrent {
		r.current = r.accounts[0]
	}

	r.save()

	dir := filepath.Join(r.root, a.ID)
	if err := os.RemoveAll(dir); err != nil {
		r.log.Error("failed to delete account data directory", "dir", dir, "error", err)
		r.notice(fmt.Sprintf("Failed to delete data for account %q: %v", a.Name, err))
	}
}

func (r *Registry) path() string {
	return filepath.Join(r.root, accountsFile)
}

// load treats every failure as "no accounts"; the constructor then seeds
// the default.
func (r *Registry) load() {
	f, err := os.Open(r.path())
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error("failed to open accounts file", "path", r.path(), "error", err)
			r.notice(fmt.Sprintf("Failed to load accounts: %v", err))
		}
		return
	}
	defer f.Close()

	var accounts []Account
	if err := gob.NewDecoder(f).Decode(&accounts); err != nil {
		r.log.Error("failed to decode accounts file", "path", r.path(), "error", err)
		r.notice(fmt.Sprintf("Failed to load accounts: %v", err))
		return
	}
	r.accounts = accounts
}

func (r *Registry) save() {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		r.log.Error("failed to create data directory", "dir", r.root, "error", err)
		r.notice(fmt.Sprintf("Failed to save accounts: %v", err))
		return
	}

	err := fsutil.WriteAtomic(r.path(), func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(r.accounts)
	})
	if err != nil {
		r.log.Error("failed to save accounts file", "path", r.path(), "error", err)
		r.notice(fmt.Sprintf("Failed to save accounts: %v", err))
	}
}

func (r *Registry) notice(msg string) {
	if r.onNotice != nil {
		r.onNotice(msg)
	}
}
