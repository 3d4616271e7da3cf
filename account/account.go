package account

import "strings"

// Account is an isolated journal namespace: its ID names the on-disk
// directory holding the account's trades, settings and attachments.
type Account struct {
	Name string
	ID   string
}

// New derives the account ID from the name once, at construction. The ID is
// never recomputed afterwards, even if the name changes, because it anchors
// the data directory.
func New(name string) Account {
	return Account{Name: name, ID: NormalizeID(name)}
}

// NormalizeID lower-cases name and replaces every character outside
// [a-z0-9] with an underscore, yielding a filesystem-safe identifier.
// Total over all inputs and idempotent.
func NormalizeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
