package engine

import (
	"github.com/shopspring/decimal"

	"github.com/attestra/attestra/internal/pricing/domain"
)

var maxLanguageMultiplier = decimal.RequireFromString("3.0")

// ComputeQuoteTotals is the primary entry point of the engine. It validates
// the configuration and the quote snapshot, aggregates documents into a
// subtotal, resolves the adjustment ledger, the rush fee and the delivery
// fee, and computes tax on the fully adjusted pre-tax amount:
//
//	taxable = subtotal + adjustmentsTotal + rushFee + deliveryFee
//	tax     = round2(taxable × taxRate)
//	total   = taxable + tax
//
// Manual overrides replace the computed certification total, rush fee,
// delivery fee, tax rate, or language multiplier for this run and are flagged
// in the result. On any error no partial totals are returned.
func ComputeQuoteTotals(cfg domain.Config, in domain.QuoteInput) (domain.QuoteTotals, error) {
	if err := cfg.Validate(); err != nil {
		return domain.QuoteTotals{}, err
	}

	totals := domain.QuoteTotals{}

	languageMultiplier := in.LanguageMultiplier
	if in.Overrides.LanguageMultiplier != nil {
		languageMultiplier = *in.Overrides.LanguageMultiplier
		totals.Overridden.LanguageMultiplier = true
	}
	if !languageMultiplier.IsPositive() || languageMultiplier.GreaterThan(maxLanguageMultiplier) {
		return domain.QuoteTotals{}, domain.NewFieldError("language_multiplier", domain.ErrInvalidLanguageMultiplier)
	}

	taxRate := in.TaxRate
	if in.Overrides.TaxRate != nil {
		taxRate = *in.Overrides.TaxRate
		totals.Overridden.TaxRate = true
	}
	if taxRate.IsNegative() {
		return domain.QuoteTotals{}, domain.NewFieldError("tax_rate", domain.ErrInvalidTaxRate)
	}

	deliveryFee := RoundCents(in.DeliveryFee)
	if in.Overrides.DeliveryFee != nil {
		deliveryFee = RoundCents(*in.Overrides.DeliveryFee)
		totals.Overridden.DeliveryFee = true
	}
	if deliveryFee.IsNegative() {
		return domain.QuoteTotals{}, domain.NewFieldError("delivery_fee", domain.ErrInvalidDeliveryFee)
	}

	totals.Documents = make([]domain.DocumentTotals, 0, len(in.Documents))
	translationTotal := decimal.Zero
	certificationTotal := decimal.Zero
	for _, doc := range in.Documents {
		docTotals, err := DocumentTotals(cfg, doc, languageMultiplier)
		if err != nil {
			return domain.QuoteTotals{}, err
		}
		totals.Documents = append(totals.Documents, docTotals)
		translationTotal = translationTotal.Add(docTotals.TranslationCost)
		certificationTotal = certificationTotal.Add(docTotals.CertificationCost)
	}

	if in.Overrides.CertificationTotal != nil {
		certificationTotal = RoundCents(*in.Overrides.CertificationTotal)
		totals.Overridden.CertificationTotal = true
	}
	totals.Subtotal = translationTotal.Add(certificationTotal)

	adjustments, adjustmentsTotal, err := ResolveAdjustments(totals.Subtotal, in.Adjustments)
	if err != nil {
		return domain.QuoteTotals{}, err
	}
	totals.Adjustments = adjustments
	totals.AdjustmentsTotal = adjustmentsTotal

	if in.Overrides.RushFee != nil {
		totals.RushFee = RoundCents(*in.Overrides.RushFee)
		totals.Overridden.RushFee = true
	} else {
		rushFee, err := ResolveRushFee(cfg, totals.Subtotal, in.Turnaround)
		if err != nil {
			return domain.QuoteTotals{}, err
		}
		totals.RushFee = rushFee
	}

	totals.DeliveryFee = deliveryFee
	totals.TaxRate = taxRate
	totals.TaxableAmount = totals.Subtotal.
		Add(totals.AdjustmentsTotal).
		Add(totals.RushFee).
		Add(totals.DeliveryFee)
	totals.TaxAmount = RoundCents(totals.TaxableAmount.Mul(taxRate))
	totals.Total = totals.TaxableAmount.Add(totals.TaxAmount)

	return totals, nil
}
