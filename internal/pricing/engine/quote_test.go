package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestra/attestra/internal/pricing/domain"
)

func dptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Builds a quote whose subtotal is exactly $200: one document, 450 words easy
// (2.0 pages * $65 = $130) plus a $70 certification.
func subtotal200Input() domain.QuoteInput {
	return domain.QuoteInput{
		Documents: []domain.Document{
			{
				ID:                  "doc-1",
				Pages:               []domain.Page{{Number: 1, WordCount: 450, Complexity: domain.ComplexityEasy}},
				CertificationPrices: []decimal.Decimal{decimal.NewFromInt(70)},
			},
		},
		Turnaround:         domain.RushSelection{Tier: domain.TurnaroundStandard},
		LanguageMultiplier: decimal.NewFromInt(1),
	}
}

func TestComputeQuoteTotals_TaxOnAdjustedBase(t *testing.T) {
	in := subtotal200Input()
	in.Adjustments = []domain.Adjustment{
		{ID: "a1", Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentPercentage, Value: decimal.NewFromInt(10), Reason: "returning customer"},
	}
	in.TaxRate = decimal.RequireFromString("0.05")

	totals, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.AdjustmentsTotal.Equal(decimal.NewFromInt(-20)), "adjustments %s", totals.AdjustmentsTotal)
	assert.True(t, totals.TaxableAmount.Equal(decimal.NewFromInt(180)), "taxable %s", totals.TaxableAmount)
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(9)), "tax %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(189)), "total %s", totals.Total)
}

func TestComputeQuoteTotals_FeesInTaxBase(t *testing.T) {
	in := subtotal200Input()
	in.Turnaround = domain.RushSelection{Tier: domain.TurnaroundRush}
	in.DeliveryFee = decimal.NewFromInt(15)
	in.TaxRate = decimal.RequireFromString("0.10")

	totals, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)

	// rush = 200 * 0.30 = 60; taxable = 200 + 60 + 15 = 275
	assert.True(t, totals.RushFee.Equal(decimal.NewFromInt(60)))
	assert.True(t, totals.TaxableAmount.Equal(decimal.NewFromInt(275)))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("27.50")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("302.50")))
}

func TestComputeQuoteTotals_Idempotent(t *testing.T) {
	in := subtotal200Input()
	in.Adjustments = []domain.Adjustment{
		{ID: "a1", Kind: domain.AdjustmentSurcharge, ValueType: domain.AdjustmentPercentage, Value: decimal.RequireFromString("3.33"), Reason: "expedited sourcing"},
	}
	in.Turnaround = domain.RushSelection{Tier: domain.TurnaroundSameDay}
	in.TaxRate = decimal.RequireFromString("0.0825")

	first, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)
	second, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.AdjustmentsTotal.Equal(second.AdjustmentsTotal))
}

func TestComputeQuoteTotals_LanguageMultiplierOverride(t *testing.T) {
	in := subtotal200Input()
	in.LanguageMultiplier = decimal.NewFromInt(1)
	in.Overrides.LanguageMultiplier = dptr("1.3")

	totals, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)

	// 65 * 1.3 = 84.5 -> rate 85; 2.0 pages * 85 = 170 + 70 cert = 240
	require.Len(t, totals.Documents, 1)
	assert.True(t, totals.Documents[0].PerPageRate.Equal(decimal.NewFromInt(85)))
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(240)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Overridden.LanguageMultiplier)
}

func TestComputeQuoteTotals_ManualOverrides(t *testing.T) {
	in := subtotal200Input()
	in.Turnaround = domain.RushSelection{Tier: domain.TurnaroundRush}
	in.Overrides.RushFee = dptr("25")
	in.Overrides.DeliveryFee = dptr("9.95")
	in.Overrides.TaxRate = dptr("0.07")
	in.Overrides.CertificationTotal = dptr("50")

	totals, err := ComputeQuoteTotals(testConfig(), in)
	require.NoError(t, err)

	// subtotal = 130 translation + 50 overridden cert = 180
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(180)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.RushFee.Equal(decimal.NewFromInt(25)))
	assert.True(t, totals.DeliveryFee.Equal(decimal.RequireFromString("9.95")))
	assert.True(t, totals.TaxRate.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, totals.Overridden.RushFee)
	assert.True(t, totals.Overridden.DeliveryFee)
	assert.True(t, totals.Overridden.TaxRate)
	assert.True(t, totals.Overridden.CertificationTotal)

	taxable := decimal.NewFromInt(180).Add(decimal.NewFromInt(25)).Add(decimal.RequireFromString("9.95"))
	assert.True(t, totals.TaxableAmount.Equal(taxable))
	assert.True(t, totals.TaxAmount.Equal(RoundCents(taxable.Mul(decimal.RequireFromString("0.07")))))
}

func TestComputeQuoteTotals_EmptyQuote(t *testing.T) {
	totals, err := ComputeQuoteTotals(testConfig(), domain.QuoteInput{
		Turnaround:         domain.RushSelection{Tier: domain.TurnaroundStandard},
		LanguageMultiplier: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeQuoteTotals_InvalidConfigAborts(t *testing.T) {
	cfg := testConfig()
	cfg.BaseRate = decimal.Zero

	_, err := ComputeQuoteTotals(cfg, subtotal200Input())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingBaseRate)
	assert.True(t, domain.IsConfigurationError(err))
}

func TestComputeQuoteTotals_ValidationAbortsWithoutPartials(t *testing.T) {
	in := subtotal200Input()
	in.Documents[0].Pages = append(in.Documents[0].Pages, domain.Page{Number: 2, WordCount: -10, Complexity: domain.ComplexityEasy})

	totals, err := ComputeQuoteTotals(testConfig(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeWordCount)
	assert.Empty(t, totals.Documents)
}

func TestComputeQuoteTotals_MonotonicLineTotal(t *testing.T) {
	cfg := testConfig()
	prev := decimal.Zero
	for words := 0; words <= 3000; words += 100 {
		in := domain.QuoteInput{
			Documents: []domain.Document{
				{ID: "d", Pages: []domain.Page{{Number: 1, WordCount: words, Complexity: domain.ComplexityHard}}},
			},
			Turnaround:         domain.RushSelection{Tier: domain.TurnaroundStandard},
			LanguageMultiplier: decimal.NewFromInt(1),
		}
		totals, err := ComputeQuoteTotals(cfg, in)
		require.NoError(t, err)
		line := totals.Documents[0].LineTotal
		assert.True(t, line.GreaterThanOrEqual(prev), "words=%d line=%s prev=%s", words, line, prev)
		prev = line
	}
}
