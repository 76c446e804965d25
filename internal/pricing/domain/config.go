package domain

import "github.com/shopspring/decimal"

// Validate checks that every rate the pipeline will touch is present and in
// domain. A config that fails here aborts the calculation; nothing defaults
// to a zero charge.
func (c Config) Validate() error {
	if !c.BaseRate.IsPositive() {
		return NewFieldError("base_rate", ErrMissingBaseRate)
	}
	if c.WordsPerPage <= 0 {
		return NewFieldError("words_per_page", ErrInvalidWordsPerPage)
	}
	if len(c.ComplexityMultipliers) == 0 {
		return NewFieldError("complexity_multipliers", ErrMissingComplexityMultiplier)
	}
	for tier, mult := range c.ComplexityMultipliers {
		if !mult.IsPositive() {
			return NewFieldError("complexity_multipliers."+string(tier), ErrMissingComplexityMultiplier)
		}
	}
	if c.MinBillablePages.IsNegative() {
		return NewFieldError("min_billable_pages", ErrInvalidMinBillablePages)
	}
	if c.RushMultiplier.IsNegative() {
		return NewFieldError("rush_multiplier", ErrInvalidRushMultiplier)
	}
	if c.SameDayMultiplier.LessThan(decimal.NewFromInt(1)) {
		return NewFieldError("same_day_multiplier", ErrInvalidSameDayMultiplier)
	}
	return nil
}

// ComplexityMultiplier resolves a tier against the configured table.
func (c Config) ComplexityMultiplier(tier ComplexityTier) (decimal.Decimal, error) {
	mult, ok := c.ComplexityMultipliers[tier]
	if !ok {
		return decimal.Decimal{}, NewFieldError(string(tier), ErrUnknownComplexity)
	}
	return mult, nil
}
