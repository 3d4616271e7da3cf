package journal

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// The CSV layout is shared with older exports and is bit-exact on the wire:
// fixed column order, fixed decimal widths, and quoting only ever applied
// to the NOTES field. Symbol, side, setup, entry type and duration must not
// contain commas or quotes; the codec does not escape them.
const csvHeader = "DATE,SYMBOL,SIDE,ENTRY,EXIT,SIZE,RETURNS,STATUS,SETUP,ENTRY_TYPE,DURATION,NOTES,BALANCE"

const csvDateLayout = "2006-01-02"

// ExportCSV writes the collection in its current order, one line per trade.
func ExportCSV(w io.Writer, trades []*Trade) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range trades {
		notes := ""
		if t.Notes != "" {
			notes = `"` + strings.ReplaceAll(t.Notes, `"`, `""`) + `"`
		}
		_, err := fmt.Fprintf(bw, "%s,%s,%s,%.5f,%.5f,%.2f,%.2f,%s,%s,%s,%s,%s,%.2f\n",
			t.Date.Format(csvDateLayout),
			t.Symbol,
			t.Side,
			t.Entry,
			t.Exit,
			t.Size,
			t.Returns,
			t.RefreshStatus(),
			t.Setup,
			t.EntryType,
			t.Duration,
			notes,
			t.Balance,
		)
		if err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ImportCSV parses an export back into trades. The header line is skipped.
// Column positions are fixed per layout. Current exports carry thirteen
// columns:
//
//	[0]=date [1]=symbol [2]=side [3]=entry [4]=exit [5]=size [6]=returns
//	[7]=status [8]=setup [9]=entryType [10]=duration [11]=notes
//	[12]=balance (optional)
//
// Exports from before the status column was deduplicated carry fourteen,
// with a duplicate status slot at [7] shifting everything after it right
// by one; those are read in that exact order for backward compatibility:
//
//	... [7]=duplicate status slot (ignored) [8]=status [9]=setup
//	[10]=entryType [11]=duration [12]=notes [13]=balance (optional)
//
// Size is truncated to whole units; fractional quantities do not survive a
// CSV round trip. The status column is read but re-derived from the
// returns sign on construction, so stale exports cannot smuggle an
// inconsistent status in. Absent or unparsable balance defaults to 0.
// Rows shorter than twelve columns or with a date/number parse failure are
// skipped and logged, never fatal.
func ImportCSV(r io.Reader) (trades []*Trade, skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		return nil, 0, nil
	}

	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		t, ok := parseCSVRow(line)
		if !ok {
			skipped++
			slog.Warn("skipping malformed csv row", "line", lineNo)
			continue
		}
		trades = append(trades, t)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read csv: %w", err)
	}
	return trades, skipped, nil
}

func parseCSVRow(line string) (*Trade, bool) {
	parts := splitCSVRow(line)
	if len(parts) < 12 {
		return nil, false
	}

	date, err := time.Parse(csvDateLayout, parts[0])
	if err != nil {
		return nil, false
	}
	entry, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, false
	}
	exit, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, false
	}
	rawSize, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return nil, false
	}
	size := float64(int(rawSize)) // whole units only, see doc comment
	returns, err := strconv.ParseFloat(parts[6], 64)
	if err != nil {
		return nil, false
	}

	var status, setup, entryType, duration, notes, rawBalance string
	if len(parts) >= 14 {
		// Legacy layout: [7] is a duplicate status slot; skip it.
		status, setup, entryType, duration = parts[8], parts[9], parts[10], parts[11]
		notes = parts[12]
		rawBalance = parts[13]
	} else {
		status, setup, entryType, duration = parts[7], parts[8], parts[9], parts[10]
		notes = parts[11]
		if len(parts) > 12 {
			rawBalance = parts[12]
		}
	}

	balance := 0.0
	if v, err := strconv.ParseFloat(rawBalance, 64); err == nil {
		balance = v
	}

	t := NewTrade(status, date, duration, parts[1],
		entry, exit, size, parts[2], setup, entryType,
		returns, balance)
	t.Notes = unquoteNotes(notes)
	return t, true
}

// splitCSVRow splits on commas that are not inside a quoted span. A single
// pair of double quotes may enclose commas; only the notes field uses this.
func splitCSVRow(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			b.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}

func unquoteNotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}
