// Package ledger parses raw delimited transaction exports into normalized
// records. Export formats vary wildly between banks, so header matching is
// substring-based and row-level anomalies are skipped rather than reported.
package ledger

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/merchant"
	"github.com/subtrack-dev/subtrack/internal/model"
)

const (
	separator = ','
	quote     = '"'
)

// columns holds the resolved indexes of the three required header roles.
type columns struct {
	date   int
	desc   int
	amount int
}

var (
	isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// M/D/YY[YY] or M-D-YY[YY].
	slashDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	// Everything that is not part of a plain decimal number.
	amountNoise = regexp.MustCompile(`[^0-9.\-]`)
)

// Parse turns raw ledger text into transaction records. It fails soft:
// missing required headers or too few lines yield an empty result, and
// rows with a missing date or unparseable amount are skipped.
func Parse(text string) []model.TransactionRecord {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	cols, ok := matchHeader(lines[0])
	if !ok {
		return nil
	}

	var records []model.TransactionRecord
	for _, line := range lines[1:] {
		rec, ok := parseRow(line, cols)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// splitLines splits on any line-ending convention and drops blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// matchHeader resolves column roles from the header row. Matching is
// case-insensitive substring search so "Transaction Date" and
// "Description/Memo" both qualify.
func matchHeader(header string) (columns, bool) {
	fields := splitRow(header)
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}

	cols := columns{
		date:   findColumn(fields, "date"),
		desc:   findColumn(fields, "desc"),
		amount: findColumn(fields, "amount"),
	}
	if cols.date == -1 || cols.desc == -1 || cols.amount == -1 {
		return columns{}, false
	}
	return cols, true
}

func findColumn(fields []string, substr string) int {
	for i, f := range fields {
		if strings.Contains(f, substr) {
			return i
		}
	}
	return -1
}

func parseRow(line string, cols columns) (model.TransactionRecord, bool) {
	fields := splitRow(line)

	rawDate := strings.TrimSpace(fieldAt(fields, cols.date))
	rawDesc := strings.TrimSpace(fieldAt(fields, cols.desc))
	rawAmount := strings.TrimSpace(fieldAt(fields, cols.amount))

	if rawDate == "" || rawAmount == "" {
		return model.TransactionRecord{}, false
	}

	amount, err := decimal.NewFromString(amountNoise.ReplaceAllString(rawAmount, ""))
	if err != nil {
		return model.TransactionRecord{}, false
	}

	return model.TransactionRecord{
		Date:        coerceDate(rawDate),
		MerchantRaw: rawDesc,
		MerchantKey: merchant.Normalize(rawDesc),
		// A negative ledger amount means money out; store the magnitude.
		Amount:      amount.Abs(),
		Description: rawDesc,
	}, true
}

func fieldAt(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// splitRow splits a delimited row honoring quoted fields: a quote toggles
// an "inside quotes" state and separators inside quotes are literal.
// Unterminated quotes are tolerated; the state simply stays open for the
// rest of the line.
func splitRow(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == quote:
			inQuotes = !inQuotes
		case ch == separator && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// coerceDate normalizes common date formats to YYYY-MM-DD. Values already
// in canonical form pass through; M/D/YY[YY] is reassembled with zero
// padding and a 2-digit year assumed to be 20YY. Anything else passes
// through unchanged and is handled downstream as best-effort.
func coerceDate(raw string) string {
	if isoDate.MatchString(raw) {
		return raw
	}
	m := slashDate.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	month, day, year := m[1], m[2], m[3]
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	if len(year) == 2 {
		year = "20" + year
	}
	return year + "-" + month + "-" + day
}
