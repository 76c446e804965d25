package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestra/attestra/internal/pricing/domain"
)

func TestResolveRushFee_Standard(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	// standard is zero even with a custom override left on the selection.
	fee, err := ResolveRushFee(testConfig(), subtotal, domain.RushSelection{
		Tier:          domain.TurnaroundStandard,
		OverrideMode:  domain.RushOverrideCustom,
		OverrideType:  domain.RushOverrideFixed,
		OverrideValue: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, fee.IsZero())
}

func TestResolveRushFee_Auto(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	fee, err := ResolveRushFee(testConfig(), subtotal, domain.RushSelection{Tier: domain.TurnaroundRush})
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(60)), "rush fee %s", fee) // 200 * 0.30

	fee, err = ResolveRushFee(testConfig(), subtotal, domain.RushSelection{Tier: domain.TurnaroundSameDay})
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(200)), "same day fee %s", fee) // 200 * (2.00 - 1)
}

func TestResolveRushFee_CustomOverrides(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	fee, err := ResolveRushFee(testConfig(), subtotal, domain.RushSelection{
		Tier:          domain.TurnaroundRush,
		OverrideMode:  domain.RushOverrideCustom,
		OverrideType:  domain.RushOverridePercentage,
		OverrideValue: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(30)), "custom pct fee %s", fee)

	fee, err = ResolveRushFee(testConfig(), subtotal, domain.RushSelection{
		Tier:          domain.TurnaroundRush,
		OverrideMode:  domain.RushOverrideCustom,
		OverrideType:  domain.RushOverrideFixed,
		OverrideValue: decimal.RequireFromString("42.50"),
	})
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("42.50")), "custom fixed fee %s", fee)
}

func TestResolveRushFee_Invalid(t *testing.T) {
	subtotal := decimal.NewFromInt(100)

	_, err := ResolveRushFee(testConfig(), subtotal, domain.RushSelection{Tier: "overnight"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTurnaroundTier)

	_, err = ResolveRushFee(testConfig(), subtotal, domain.RushSelection{
		Tier:          domain.TurnaroundRush,
		OverrideMode:  domain.RushOverrideCustom,
		OverrideType:  domain.RushOverrideFixed,
		OverrideValue: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRushOverride)
}
