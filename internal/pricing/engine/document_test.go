package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestra/attestra/internal/pricing/domain"
)

func TestPerPageRate_CeilToStep(t *testing.T) {
	// 65 * 1.3 = 84.5 -> ceil(84.5/2.5)*2.5 = 85.0
	rate := PerPageRate(decimal.NewFromInt(65), decimal.RequireFromString("1.3"))
	assert.True(t, rate.Equal(decimal.RequireFromString("85.0")), "got %s", rate)

	// Already on the step stays put.
	rate = PerPageRate(decimal.NewFromInt(65), decimal.NewFromInt(1))
	assert.True(t, rate.Equal(decimal.RequireFromString("65")), "got %s", rate)
}

func TestPerPageRate_Properties(t *testing.T) {
	base := decimal.NewFromInt(65)
	for _, mult := range []string{"0.5", "0.8", "1.0", "1.15", "1.3", "2.0", "3.0"} {
		m := decimal.RequireFromString(mult)
		rate := PerPageRate(base, m)
		// Always an exact multiple of 2.5 and never below the raw rate.
		assert.True(t, rate.Mod(decimal.RequireFromString("2.5")).IsZero(), "mult=%s rate=%s", mult, rate)
		assert.True(t, rate.GreaterThanOrEqual(base.Mul(m)), "mult=%s rate=%s", mult, rate)
	}
}

func TestDocumentTotals_MinimumAppliedOnce(t *testing.T) {
	cfg := testConfig()

	// Two tiny pages: raw 0.2 + 0.3 = 0.5, below the 1.0 minimum.
	doc := domain.Document{
		ID: "doc-1",
		Pages: []domain.Page{
			{Number: 1, WordCount: 30, Complexity: domain.ComplexityEasy},
			{Number: 2, WordCount: 50, Complexity: domain.ComplexityEasy},
		},
	}
	totals, err := DocumentTotals(cfg, doc, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, totals.RawBillablePages.Equal(decimal.RequireFromString("0.5")), "raw %s", totals.RawBillablePages)
	assert.True(t, totals.BillablePages.Equal(decimal.RequireFromString("1.0")), "billable %s", totals.BillablePages)
	assert.True(t, totals.MinApplied)
	// 1.0 pages * $65 = $65
	assert.True(t, totals.TranslationCost.Equal(decimal.NewFromInt(65)), "translation %s", totals.TranslationCost)
}

func TestDocumentTotals_SinglePageBelowMinimum(t *testing.T) {
	cfg := testConfig()

	doc := domain.Document{
		ID:    "doc-1",
		Pages: []domain.Page{{Number: 1, WordCount: 50, Complexity: domain.ComplexityEasy}},
	}
	totals, err := DocumentTotals(cfg, doc, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, totals.RawBillablePages.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, totals.BillablePages.Equal(decimal.RequireFromString("1.0")))
	assert.True(t, totals.MinApplied)
}

func TestDocumentTotals_ZeroContentSkipsMinimum(t *testing.T) {
	cfg := testConfig()

	doc := domain.Document{
		ID: "doc-1",
		Pages: []domain.Page{
			{Number: 1, WordCount: 0, Complexity: domain.ComplexityEasy},
			{Number: 2, WordCount: 0, Complexity: domain.ComplexityHard},
		},
	}
	totals, err := DocumentTotals(cfg, doc, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, totals.BillablePages.IsZero())
	assert.False(t, totals.MinApplied)
	assert.True(t, totals.TranslationCost.IsZero())
	assert.True(t, totals.LineTotal.IsZero())
}

func TestDocumentTotals_CertificationsAreFlat(t *testing.T) {
	cfg := testConfig()

	doc := domain.Document{
		ID:    "doc-1",
		Pages: []domain.Page{{Number: 1, WordCount: 450, Complexity: domain.ComplexityEasy}},
		CertificationPrices: []decimal.Decimal{
			decimal.RequireFromString("24.99"),
			decimal.NewFromInt(10),
		},
	}
	// Language multiplier must not touch certification prices.
	totals, err := DocumentTotals(cfg, doc, decimal.RequireFromString("1.3"))
	require.NoError(t, err)
	assert.True(t, totals.CertificationCost.Equal(decimal.RequireFromString("34.99")), "cert %s", totals.CertificationCost)
	assert.True(t, totals.LineTotal.Equal(totals.TranslationCost.Add(totals.CertificationCost)))
}

func TestDocumentTotals_NegativeCertificationPrice(t *testing.T) {
	doc := domain.Document{
		ID:                  "doc-1",
		Pages:               []domain.Page{{Number: 1, WordCount: 100, Complexity: domain.ComplexityEasy}},
		CertificationPrices: []decimal.Decimal{decimal.NewFromInt(-5)},
	}
	_, err := DocumentTotals(testConfig(), doc, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCertificationPrice)
}
