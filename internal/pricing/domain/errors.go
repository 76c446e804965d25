package domain

import (
	"errors"
	"fmt"
)

// Configuration errors: a required rate, multiplier, or reference row is
// missing or unresolvable. Fatal to the calculation; the engine never falls
// back to a guessed default.
var (
	ErrMissingBaseRate             = errors.New("missing_base_rate")
	ErrInvalidWordsPerPage         = errors.New("invalid_words_per_page")
	ErrMissingComplexityMultiplier = errors.New("missing_complexity_multiplier")
	ErrInvalidMinBillablePages     = errors.New("invalid_min_billable_pages")
	ErrInvalidRushMultiplier       = errors.New("invalid_rush_multiplier")
	ErrInvalidSameDayMultiplier    = errors.New("invalid_same_day_multiplier")
	ErrUnknownLanguage             = errors.New("unknown_language")
	ErrUnknownCertification        = errors.New("unknown_certification")
	ErrUnknownDeliveryOption       = errors.New("unknown_delivery_option")
	ErrUnknownTaxRate              = errors.New("unknown_tax_rate")
)

// Validation errors: caller-supplied data is out of domain. Rejected before
// any totals are produced.
var (
	ErrNegativeWordCount          = errors.New("negative_word_count")
	ErrUnknownComplexity          = errors.New("unknown_complexity")
	ErrInvalidLanguageMultiplier  = errors.New("invalid_language_multiplier")
	ErrInvalidCertificationPrice  = errors.New("invalid_certification_price")
	ErrInvalidAdjustmentKind      = errors.New("invalid_adjustment_kind")
	ErrInvalidAdjustmentValueType = errors.New("invalid_adjustment_value_type")
	ErrInvalidAdjustmentValue     = errors.New("invalid_adjustment_value")
	ErrMissingAdjustmentReason    = errors.New("missing_adjustment_reason")
	ErrInvalidTurnaroundTier      = errors.New("invalid_turnaround_tier")
	ErrInvalidRushOverride        = errors.New("invalid_rush_override")
	ErrInvalidTaxRate             = errors.New("invalid_tax_rate")
	ErrInvalidDeliveryFee         = errors.New("invalid_delivery_fee")
)

// FieldError wraps a sentinel with the offending field path so callers can
// report exactly which input was rejected.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError attaches a field path to a sentinel error.
func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldFromError returns the field path carried by err, if any.
func FieldFromError(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// IsConfigurationError reports whether err is fatal missing-reference or
// missing-rate configuration.
func IsConfigurationError(err error) bool {
	switch {
	case errors.Is(err, ErrMissingBaseRate),
		errors.Is(err, ErrInvalidWordsPerPage),
		errors.Is(err, ErrMissingComplexityMultiplier),
		errors.Is(err, ErrInvalidMinBillablePages),
		errors.Is(err, ErrInvalidRushMultiplier),
		errors.Is(err, ErrInvalidSameDayMultiplier),
		errors.Is(err, ErrUnknownLanguage),
		errors.Is(err, ErrUnknownCertification),
		errors.Is(err, ErrUnknownDeliveryOption),
		errors.Is(err, ErrUnknownTaxRate):
		return true
	default:
		return false
	}
}

// IsValidationError reports whether err rejects caller-supplied quote data.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrNegativeWordCount),
		errors.Is(err, ErrUnknownComplexity),
		errors.Is(err, ErrInvalidLanguageMultiplier),
		errors.Is(err, ErrInvalidCertificationPrice),
		errors.Is(err, ErrInvalidAdjustmentKind),
		errors.Is(err, ErrInvalidAdjustmentValueType),
		errors.Is(err, ErrInvalidAdjustmentValue),
		errors.Is(err, ErrMissingAdjustmentReason),
		errors.Is(err, ErrInvalidTurnaroundTier),
		errors.Is(err, ErrInvalidRushOverride),
		errors.Is(err, ErrInvalidTaxRate),
		errors.Is(err, ErrInvalidDeliveryFee):
		return true
	default:
		return false
	}
}
