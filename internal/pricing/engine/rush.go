package engine

import (
	"github.com/shopspring/decimal"

	"github.com/attestra/attestra/internal/pricing/domain"
)

var one = decimal.NewFromInt(1)

// ResolveRushFee computes the turnaround surcharge for the selected tier.
//
// standard is always zero, regardless of any override left on the selection.
// In auto mode, rush charges subtotal × rushMultiplier and same_day charges
// subtotal × (sameDayMultiplier − 1). In custom mode a staff-entered
// percentage of the subtotal or a fixed amount replaces the formula.
func ResolveRushFee(cfg domain.Config, subtotal decimal.Decimal, sel domain.RushSelection) (decimal.Decimal, error) {
	switch sel.Tier {
	case domain.TurnaroundStandard:
		return decimal.Zero, nil
	case domain.TurnaroundRush, domain.TurnaroundSameDay:
	default:
		return decimal.Decimal{}, domain.NewFieldError("turnaround.tier", domain.ErrInvalidTurnaroundTier)
	}

	mode := sel.OverrideMode
	if mode == "" {
		mode = domain.RushOverrideAuto
	}

	switch mode {
	case domain.RushOverrideAuto:
		if sel.Tier == domain.TurnaroundSameDay {
			return RoundCents(subtotal.Mul(cfg.SameDayMultiplier.Sub(one))), nil
		}
		return RoundCents(subtotal.Mul(cfg.RushMultiplier)), nil

	case domain.RushOverrideCustom:
		switch sel.OverrideType {
		case domain.RushOverridePercentage:
			if sel.OverrideValue.IsNegative() {
				return decimal.Decimal{}, domain.NewFieldError("turnaround.override_value", domain.ErrInvalidRushOverride)
			}
			return RoundCents(subtotal.Mul(sel.OverrideValue).Div(hundred)), nil
		case domain.RushOverrideFixed:
			if sel.OverrideValue.IsNegative() {
				return decimal.Decimal{}, domain.NewFieldError("turnaround.override_value", domain.ErrInvalidRushOverride)
			}
			return RoundCents(sel.OverrideValue), nil
		default:
			return decimal.Decimal{}, domain.NewFieldError("turnaround.override_type", domain.ErrInvalidRushOverride)
		}

	default:
		return decimal.Decimal{}, domain.NewFieldError("turnaround.override_mode", domain.ErrInvalidRushOverride)
	}
}
