package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StoreNumbers(t *testing.T) {
	assert.Equal(t, "spotify", Normalize("SPOTIFY *12345"))
	assert.Equal(t, "spotify", Normalize("SPOTIFY*98765"))
	assert.Equal(t, "spotify", Normalize("spotify"))
}

func TestNormalize_IdentifierTokens(t *testing.T) {
	assert.Equal(t, "acme", Normalize("ACME #1234"))
	assert.Equal(t, "acme", Normalize("ACME:9876"))
	assert.Equal(t, "acme", Normalize("ACME_42"))
}

func TestNormalize_LongDigitRuns(t *testing.T) {
	assert.Equal(t, "payment ref", Normalize("PAYMENT REF 20250103"))
	// Runs shorter than 4 digits survive the digit rule but die as
	// punctuation anyway.
	assert.Equal(t, "store", Normalize("STORE 123"))
}

func TestNormalize_CorporateSuffixes(t *testing.T) {
	assert.Equal(t, "acme", Normalize("ACME, INC."))
	assert.Equal(t, "acme", Normalize("Acme Corp"))
	assert.Equal(t, "widgets", Normalize("WIDGETS LLC USA"))
	// Whole words only: "incubator" keeps its prefix.
	assert.Equal(t, "incubator", Normalize("Incubator"))
}

func TestNormalize_PunctuationBecomesSpace(t *testing.T) {
	// Punctuation turns into whitespace so adjacent words never fuse.
	assert.Equal(t, "netflix com", Normalize("netflix.com"))
	assert.Equal(t, "uber eats", Normalize("UBER*EATS"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"SPOTIFY *12345",
		"ACME, INC. #999",
		"netflix.com",
		"  Plain Merchant  ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("*12345 #999"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Netflix.com", TitleCase("netflix.com"))
	assert.Equal(t, "Netflix.com", TitleCase("NETFLIX.COM"))
	assert.Equal(t, "Spotify Premium", TitleCase("SPOTIFY PREMIUM"))
	assert.Equal(t, "Unknown", TitleCase("unknown"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "", TitleCase("   "))
}
