package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/attestra/attestra/internal/pricing/domain"
)

// PageBillablePages converts one page's word count and complexity into
// billable-page units:
//
//	ceil((wordCount / wordsPerPage) * complexityMultiplier * 10) / 10
//
// Zero words yields zero units; the per-document minimum is applied by the
// document aggregator, never here.
func PageBillablePages(cfg domain.Config, page domain.Page) (decimal.Decimal, error) {
	if page.WordCount < 0 {
		return decimal.Decimal{}, domain.NewFieldError(fmt.Sprintf("pages[%d].word_count", page.Number), domain.ErrNegativeWordCount)
	}
	mult, err := cfg.ComplexityMultiplier(page.Complexity)
	if err != nil {
		return decimal.Decimal{}, domain.NewFieldError(fmt.Sprintf("pages[%d].complexity", page.Number), domain.ErrUnknownComplexity)
	}
	if page.WordCount == 0 {
		return decimal.Zero, nil
	}

	raw := decimal.NewFromInt(int64(page.WordCount)).
		Div(decimal.NewFromInt(int64(cfg.WordsPerPage))).
		Mul(mult)
	return CeilToTenth(raw), nil
}
