package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		"2025-09-14,SPOTIFY *12345,-9.99\n" +
		"2025-10-14,SPOTIFY *98765,-9.99\n"

	records := Parse(csv)
	require.Len(t, records, 2)

	assert.Equal(t, "2025-09-14", records[0].Date)
	assert.Equal(t, "SPOTIFY *12345", records[0].MerchantRaw)
	assert.Equal(t, "spotify", records[0].MerchantKey)
	assert.Equal(t, "9.99", records[0].Amount.StringFixed(2))
	assert.Equal(t, "SPOTIFY *12345", records[0].Description)
}

func TestParse_HeaderSubstringMatch(t *testing.T) {
	csv := "Transaction Date,Description/Memo,Posted Amount\n" +
		"2025-01-05,NETFLIX.COM,-15.49\n"

	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "netflix com", records[0].MerchantKey)
}

func TestParse_MissingRequiredHeader(t *testing.T) {
	// No amount column: soft-fail to empty, not an error.
	csv := "Date,Description\n2025-01-05,NETFLIX.COM\n"
	assert.Empty(t, Parse(csv))
}

func TestParse_TooFewLines(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("Date,Description,Amount\n"))
	assert.Empty(t, Parse("   \n\n  \n"))
}

func TestParse_QuotedFields(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		`2025-03-01,"ACME, INC.",-20.00` + "\n"

	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "ACME, INC.", records[0].MerchantRaw)
	assert.Equal(t, "acme", records[0].MerchantKey)
}

func TestParse_UnterminatedQuote(t *testing.T) {
	// The quote state stays open for the rest of the line; the row still
	// parses because date and amount come before the description.
	csv := "Date,Description,Amount\n" +
		"2025-03-01,\"ACME, -20.00\n" +
		"2025-04-01,GYM,-30.00\n"

	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "GYM", records[0].MerchantRaw)
}

func TestParse_SignNormalization(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		"2025-01-01,DEBIT STYLE,-12.50\n" +
		"2025-02-01,CREDIT STYLE,12.50\n"

	records := Parse(csv)
	require.Len(t, records, 2)
	assert.Equal(t, "12.50", records[0].Amount.StringFixed(2))
	assert.Equal(t, "12.50", records[1].Amount.StringFixed(2))
}

func TestParse_AmountNoiseStripped(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		`2025-01-01,BIG PURCHASE,"-$1,234.56"` + "\n"

	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "1234.56", records[0].Amount.StringFixed(2))
}

func TestParse_SkipsBadRows(t *testing.T) {
	csv := "Date,Description,Amount\n" +
		",MISSING DATE,-5.00\n" +
		"2025-01-01,MISSING AMOUNT,\n" +
		"2025-01-02,NOT A NUMBER,abc\n" +
		"2025-01-03,GOOD ROW,-5.00\n"

	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "GOOD ROW", records[0].MerchantRaw)
}

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-14", "2025-09-14"},
		{"9/14/2025", "2025-09-14"},
		{"9/4/25", "2025-09-04"},
		{"12-31-25", "2025-12-31"},
		{"1-2-2026", "2026-01-02"},
		{"Sep 14 2025", "Sep 14 2025"}, // unrecognized formats pass through
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coerceDate(tt.in), "coerceDate(%q)", tt.in)
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	csv := "Date,Description,Amount\r\n2025-01-01,CRLF ROW,-3.00\r\n"
	records := Parse(csv)
	require.Len(t, records, 1)
	assert.Equal(t, "CRLF ROW", records[0].MerchantRaw)
}

func TestSplitRow(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitRow("a,b,c"))
	assert.Equal(t, []string{"a", "b,c", "d"}, splitRow(`a,"b,c",d`))
	assert.Equal(t, []string{""}, splitRow(""))
}
