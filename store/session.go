package store

import (
	"fmt"
	"log/slog"

	"github.com/rustyeddy/tradebook/account"
)

// Session ties the account registry to exactly one active Store. Switching
// accounts is a strict hand-off: the outgoing store's full state is saved
// before the incoming store reads anything, and the old store is discarded.
// There is never more than one live store per session.
type Session struct {
	root     string
	log      *slog.Logger
	onNotice func(string)

	Registry *account.Registry
	store    *Store
}

// NewSession loads the registry from root and opens a store for the
// current account. onNotice may be nil; when set it receives user-facing
// warnings from both the registry and every store the session opens.
func NewSession(root string, logger *slog.Logger, onNotice func(string)) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	reg := account.NewRegistry(root, logger, onNotice)
	return &Session{
		root:     root,
		log:      logger,
		onNotice: onNotice,
		Registry: reg,
		store:    New(root, reg.Current(), logger, onNotice),
	}
}

// Store returns the active account's store.
func (s *Session) Store() *Store {
	return s.store
}

// Use switches the active account by ID. The outgoing store is saved
// first, then discarded; only after that is the new account's data read.
func (s *Session) Use(accountID string) error {
	var target account.Account
	found := false
	for _, a := range s.Registry.List() {
		if a.ID == accountID {
			target = a
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown account %q", accountID)
	}

	if err := s.store.Save(); err != nil {
		return fmt.Errorf("save outgoing account %q: %w", s.store.Account().ID, err)
	}

	s.Registry.SetCurrent(target)
	s.store = New(s.root, target, s.log, s.onNotice)
	return nil
}

// Remove deletes an account through the registry and, when the active
// account was the one removed, hands the session over to whatever the
// registry promoted to current. The doomed store is not saved; its data
// directory is going away.
func (s *Session) Remove(a account.Account) {
	removingCurrent := a.ID == s.Registry.Current().ID

	s.Registry.Remove(a)

	if removingCurrent {
		s.store = New(s.root, s.Registry.Current(), s.log, s.onNotice)
	}
}
