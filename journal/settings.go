package journal

// Tag is a named classification for trades (a setup or an entry type),
// carrying its own notes and attachments. Names are unique within their
// catalog by convention; this layer does not enforce it.
type Tag struct {
	Name   string
	Notes  string
	Images []string
}

// NewTag returns a tag with just a name.
func NewTag(name string) Tag {
	return Tag{Name: name}
}

// AddImage appends a stored attachment path to the tag.
func (t *Tag) AddImage(path string) {
	t.Images = append(t.Images, path)
}

// Settings is the per-account configuration record.
type Settings struct {
	AccountBalance float64
	AverageRisk    float64 // percent risked per trade
	TradingRules   string
	Symbols        []string
	SetupTags      []Tag
	EntryTypeTags  []Tag
}

// DefaultSettings seeds a new account with the stock symbol list, four
// setup tags, four entry-type tags and the starter rules text.
func DefaultSettings() *Settings {
	s := &Settings{
		AccountBalance: 10000.0,
		AverageRisk:    1.0,
		TradingRules:   "1. Always use stop loss\n2. Risk max 1% per trade\n3. Follow the trading plan",
		Symbols:        []string{"XAUUSD", "XLMUSD", "EURUSD", "GBPUSD", "NAS100"},
	}
	for _, name := range []string{"setup1", "setup2", "setup3", "setup4"} {
		s.SetupTags = append(s.SetupTags, NewTag(name))
	}
	for _, name := range []string{"entry1", "entry2", "entry3", "entry4"} {
		s.EntryTypeTags = append(s.EntryTypeTags, NewTag(name))
	}
	return s
}

// AddSymbol appends without duplicate checking; deduplication, if wanted,
// belongs to the caller.
func (s *Settings) AddSymbol(symbol string) {
	s.Symbols = append(s.Symbols, symbol)
}

// SetSetupTags replaces the whole setup catalog. Per-tag edits are done by
// the caller on the returned slice and written back in bulk.
func (s *Settings) SetSetupTags(tags []Tag) {
	s.SetupTags = tags
}

// SetEntryTypeTags replaces the whole entry-type catalog.
func (s *Settings) SetEntryTypeTags(tags []Tag) {
	s.EntryTypeTags = tags
}

// SetupNames projects the setup catalog to its names, in catalog order.
func (s *Settings) SetupNames() []string {
	names := make([]string, 0, len(s.SetupTags))
	for _, t := range s.SetupTags {
		names = append(names, t.Name)
	}
	return names
}

// EntryTypeNames projects the entry-type catalog to its names.
func (s *Settings) EntryTypeNames() []string {
	names := make([]string, 0, len(s.EntryTypeTags))
	for _, t := range s.EntryTypeTags {
		names = append(names, t.Name)
	}
	return names
}
