package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/attestra/attestra/internal/pricing/domain"
)

// PerPageRate derives the document rate from the base rate and the language
// multiplier, rounded up to the nearest $2.50. Complexity is already embedded
// in the billable-page units, so it must not appear here: complexity and rate
// are never both multiplied into the same cost term.
func PerPageRate(baseRate, languageMultiplier decimal.Decimal) decimal.Decimal {
	return CeilToRateStep(baseRate.Mul(languageMultiplier))
}

// DocumentTotals aggregates a document: page units summed, the per-document
// minimum applied at most once, translation cost from the language-derived
// rate, and flat certification prices added on top.
//
// A document whose pages are all empty contributes zero. No content, no
// charge; the minimum is skipped, and that is a valid state rather than an
// error.
func DocumentTotals(cfg domain.Config, doc domain.Document, languageMultiplier decimal.Decimal) (domain.DocumentTotals, error) {
	out := domain.DocumentTotals{
		ID:    doc.ID,
		Pages: make([]domain.PageTotals, 0, len(doc.Pages)),
	}

	raw := decimal.Zero
	for _, page := range doc.Pages {
		units, err := PageBillablePages(cfg, page)
		if err != nil {
			return domain.DocumentTotals{}, err
		}
		raw = raw.Add(units)
		out.Pages = append(out.Pages, domain.PageTotals{Number: page.Number, BillablePages: units})
	}

	out.RawBillablePages = raw
	out.BillablePages = raw
	if raw.IsPositive() && raw.LessThan(cfg.MinBillablePages) {
		out.BillablePages = cfg.MinBillablePages
		out.MinApplied = true
	}

	out.PerPageRate = PerPageRate(cfg.BaseRate, languageMultiplier)
	out.TranslationCost = RoundCents(out.BillablePages.Mul(out.PerPageRate))

	certTotal := decimal.Zero
	for i, price := range doc.CertificationPrices {
		if price.IsNegative() {
			return domain.DocumentTotals{}, domain.NewFieldError(
				fmt.Sprintf("documents[%s].certifications[%d]", doc.ID, i),
				domain.ErrInvalidCertificationPrice,
			)
		}
		certTotal = certTotal.Add(price)
	}
	out.CertificationCost = RoundCents(certTotal)
	out.LineTotal = out.TranslationCost.Add(out.CertificationCost)

	return out, nil
}
