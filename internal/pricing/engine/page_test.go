package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestra/attestra/internal/pricing/domain"
)

func testConfig() domain.Config {
	return domain.Config{
		BaseRate:     decimal.NewFromInt(65),
		WordsPerPage: 225,
		ComplexityMultipliers: map[domain.ComplexityTier]decimal.Decimal{
			domain.ComplexityEasy:   decimal.RequireFromString("1.0"),
			domain.ComplexityMedium: decimal.RequireFromString("1.15"),
			domain.ComplexityHard:   decimal.RequireFromString("1.25"),
		},
		MinBillablePages:  decimal.RequireFromString("1.0"),
		RushMultiplier:    decimal.RequireFromString("0.30"),
		SameDayMultiplier: decimal.RequireFromString("2.00"),
		StandardDays:      7,
		RushDays:          2,
	}
}

func TestPageBillablePages_CeilToTenth(t *testing.T) {
	cfg := testConfig()

	// 500 words at medium complexity: ceil(500/225*1.15*10)/10 = 2.6
	units, err := PageBillablePages(cfg, domain.Page{Number: 1, WordCount: 500, Complexity: domain.ComplexityMedium})
	require.NoError(t, err)
	assert.True(t, units.Equal(decimal.RequireFromString("2.6")), "got %s", units)

	// 50 words at easy complexity: ceil(0.222*10)/10 = 0.3
	units, err = PageBillablePages(cfg, domain.Page{Number: 1, WordCount: 50, Complexity: domain.ComplexityEasy})
	require.NoError(t, err)
	assert.True(t, units.Equal(decimal.RequireFromString("0.3")), "got %s", units)

	// Exact page boundary stays exact: 450/225 = 2.0
	units, err = PageBillablePages(cfg, domain.Page{Number: 1, WordCount: 450, Complexity: domain.ComplexityEasy})
	require.NoError(t, err)
	assert.True(t, units.Equal(decimal.RequireFromString("2.0")), "got %s", units)
}

func TestPageBillablePages_ZeroWords(t *testing.T) {
	units, err := PageBillablePages(testConfig(), domain.Page{Number: 1, WordCount: 0, Complexity: domain.ComplexityHard})
	require.NoError(t, err)
	assert.True(t, units.IsZero())
}

func TestPageBillablePages_NegativeWordCount(t *testing.T) {
	_, err := PageBillablePages(testConfig(), domain.Page{Number: 3, WordCount: -1, Complexity: domain.ComplexityEasy})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeWordCount)
	assert.Equal(t, "pages[3].word_count", domain.FieldFromError(err))
}

func TestPageBillablePages_UnknownComplexity(t *testing.T) {
	_, err := PageBillablePages(testConfig(), domain.Page{Number: 1, WordCount: 100, Complexity: "extreme"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownComplexity)
}

func TestPageBillablePages_Monotonic(t *testing.T) {
	cfg := testConfig()
	prev := decimal.Zero
	for words := 0; words <= 2000; words += 25 {
		units, err := PageBillablePages(cfg, domain.Page{Number: 1, WordCount: words, Complexity: domain.ComplexityMedium})
		require.NoError(t, err)
		assert.True(t, units.GreaterThanOrEqual(prev), "words=%d units=%s prev=%s", words, units, prev)
		prev = units
	}
}
