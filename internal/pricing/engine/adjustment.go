package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/attestra/attestra/internal/pricing/domain"
)

// ValidateAdjustment enforces the ledger entry rules: positive value,
// mandatory audit reason, known kind and value type.
func ValidateAdjustment(idx int, adj domain.Adjustment) error {
	field := func(name string) string { return fmt.Sprintf("adjustments[%d].%s", idx, name) }

	switch adj.Kind {
	case domain.AdjustmentDiscount, domain.AdjustmentSurcharge:
	default:
		return domain.NewFieldError(field("kind"), domain.ErrInvalidAdjustmentKind)
	}
	switch adj.ValueType {
	case domain.AdjustmentPercentage, domain.AdjustmentFixed:
	default:
		return domain.NewFieldError(field("value_type"), domain.ErrInvalidAdjustmentValueType)
	}
	if !adj.Value.IsPositive() {
		return domain.NewFieldError(field("value"), domain.ErrInvalidAdjustmentValue)
	}
	if strings.TrimSpace(adj.Reason) == "" {
		return domain.NewFieldError(field("reason"), domain.ErrMissingAdjustmentReason)
	}
	return nil
}

// ResolveAdjustments turns each ledger entry into a signed currency amount
// against the current subtotal. Percentage entries always re-resolve; they
// are never snapshotted, so they float with the subtotal. Entries are kept
// itemized and independently signed, never merged or netted.
func ResolveAdjustments(subtotal decimal.Decimal, adjustments []domain.Adjustment) ([]domain.AdjustmentTotals, decimal.Decimal, error) {
	resolved := make([]domain.AdjustmentTotals, 0, len(adjustments))
	total := decimal.Zero

	for i, adj := range adjustments {
		if err := ValidateAdjustment(i, adj); err != nil {
			return nil, decimal.Decimal{}, err
		}

		var amount decimal.Decimal
		switch adj.ValueType {
		case domain.AdjustmentPercentage:
			amount = RoundCents(subtotal.Mul(adj.Value).Div(hundred))
		case domain.AdjustmentFixed:
			amount = RoundCents(adj.Value)
		}
		if adj.Kind == domain.AdjustmentDiscount {
			amount = amount.Neg()
		}

		resolved = append(resolved, domain.AdjustmentTotals{
			ID:               adj.ID,
			Kind:             adj.Kind,
			CalculatedAmount: amount,
		})
		total = total.Add(amount)
	}

	return resolved, total, nil
}
