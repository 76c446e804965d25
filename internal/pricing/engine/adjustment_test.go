package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestra/attestra/internal/pricing/domain"
)

func TestResolveAdjustments_SignedAmounts(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	resolved, total, err := ResolveAdjustments(subtotal, []domain.Adjustment{
		{ID: "a1", Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentPercentage, Value: decimal.NewFromInt(10), Reason: "loyalty"},
		{ID: "a2", Kind: domain.AdjustmentSurcharge, ValueType: domain.AdjustmentFixed, Value: decimal.RequireFromString("12.50"), Reason: "notarized copies"},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.True(t, resolved[0].CalculatedAmount.Equal(decimal.NewFromInt(-20)), "discount %s", resolved[0].CalculatedAmount)
	assert.True(t, resolved[1].CalculatedAmount.Equal(decimal.RequireFromString("12.50")), "surcharge %s", resolved[1].CalculatedAmount)
	assert.True(t, total.Equal(decimal.RequireFromString("-7.50")), "total %s", total)
}

func TestResolveAdjustments_PercentageFloatsWithSubtotal(t *testing.T) {
	adjustments := []domain.Adjustment{
		{ID: "a1", Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentPercentage, Value: decimal.NewFromInt(10), Reason: "promo"},
	}

	_, atSmall, err := ResolveAdjustments(decimal.NewFromInt(100), adjustments)
	require.NoError(t, err)
	_, atLarge, err := ResolveAdjustments(decimal.NewFromInt(300), adjustments)
	require.NoError(t, err)

	assert.True(t, atSmall.Equal(decimal.NewFromInt(-10)))
	assert.True(t, atLarge.Equal(decimal.NewFromInt(-30)))
}

func TestResolveAdjustments_NotMerged(t *testing.T) {
	// Two opposing entries stay itemized instead of netting out.
	resolved, total, err := ResolveAdjustments(decimal.NewFromInt(100), []domain.Adjustment{
		{ID: "a1", Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentFixed, Value: decimal.NewFromInt(10), Reason: "goodwill"},
		{ID: "a2", Kind: domain.AdjustmentSurcharge, ValueType: domain.AdjustmentFixed, Value: decimal.NewFromInt(10), Reason: "handling"},
	})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.True(t, total.IsZero())
}

func TestValidateAdjustment_Rejections(t *testing.T) {
	cases := []struct {
		name string
		adj  domain.Adjustment
		want error
	}{
		{
			name: "zero value",
			adj:  domain.Adjustment{Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentFixed, Value: decimal.Zero, Reason: "x"},
			want: domain.ErrInvalidAdjustmentValue,
		},
		{
			name: "missing reason",
			adj:  domain.Adjustment{Kind: domain.AdjustmentDiscount, ValueType: domain.AdjustmentFixed, Value: decimal.NewFromInt(5), Reason: "  "},
			want: domain.ErrMissingAdjustmentReason,
		},
		{
			name: "bad kind",
			adj:  domain.Adjustment{Kind: "rebate", ValueType: domain.AdjustmentFixed, Value: decimal.NewFromInt(5), Reason: "x"},
			want: domain.ErrInvalidAdjustmentKind,
		},
		{
			name: "bad value type",
			adj:  domain.Adjustment{Kind: domain.AdjustmentDiscount, ValueType: "ratio", Value: decimal.NewFromInt(5), Reason: "x"},
			want: domain.ErrInvalidAdjustmentValueType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAdjustment(0, tc.adj)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}
