package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, filter ListFilter) ([]Response, error)

	AddDocument(ctx context.Context, quoteID string, req DocumentRequest) (*Response, error)
	UpdateDocument(ctx context.Context, quoteID, documentID string, req DocumentRequest) (*Response, error)
	RemoveDocument(ctx context.Context, quoteID, documentID string) (*Response, error)

	SetTurnaround(ctx context.Context, quoteID string, req TurnaroundRequest) (*Response, error)
	SetRushOverride(ctx context.Context, quoteID string, req RushOverrideRequest) (*Response, error)
	ClearRushOverride(ctx context.Context, quoteID string) (*Response, error)
	SetDeliveryOption(ctx context.Context, quoteID string, code string) (*Response, error)
	SetOverrides(ctx context.Context, quoteID string, req OverridesRequest) (*Response, error)

	AddAdjustment(ctx context.Context, quoteID string, req AdjustmentRequest) (*Response, error)
	RemoveAdjustment(ctx context.Context, quoteID, adjustmentID string) (*Response, error)

	Recalculate(ctx context.Context, quoteID string) (*Response, error)
	Preview(ctx context.Context, req PreviewRequest) (*pricingdomain.QuoteTotals, error)
}

type CreateRequest struct {
	QuoteNumber        string            `json:"quote_number"`
	SourceLanguageCode *string           `json:"source_language_code"`
	TargetLanguageCode string            `json:"target_language_code"`
	TaxRegion          *string           `json:"tax_region"`
	Metadata           map[string]any    `json:"metadata"`
	Documents          []DocumentRequest `json:"documents"`
}

type DocumentRequest struct {
	Name           string        `json:"name"`
	Certifications []string      `json:"certifications"`
	Pages          []PageRequest `json:"pages"`
}

type PageRequest struct {
	WordCount  int                          `json:"word_count"`
	Complexity pricingdomain.ComplexityTier `json:"complexity"`
}

type TurnaroundRequest struct {
	Tier pricingdomain.TurnaroundTier `json:"tier"`
}

type RushOverrideRequest struct {
	Type  pricingdomain.RushOverrideType `json:"type"`
	Value decimal.Decimal                `json:"value"`
}

// OverridesRequest sets or clears the manual correction columns. A nil field
// leaves the current value, a Clear flag removes it.
type OverridesRequest struct {
	CertificationTotal      *decimal.Decimal `json:"certification_total"`
	ClearCertificationTotal bool             `json:"clear_certification_total"`
	RushFee                 *decimal.Decimal `json:"rush_fee"`
	ClearRushFee            bool             `json:"clear_rush_fee"`
	DeliveryFee             *decimal.Decimal `json:"delivery_fee"`
	ClearDeliveryFee        bool             `json:"clear_delivery_fee"`
	TaxRate                 *decimal.Decimal `json:"tax_rate"`
	ClearTaxRate            bool             `json:"clear_tax_rate"`
	LanguageMultiplier      *decimal.Decimal `json:"language_multiplier"`
	ClearLanguageMultiplier bool             `json:"clear_language_multiplier"`
}

type AdjustmentRequest struct {
	Kind      pricingdomain.AdjustmentKind      `json:"kind"`
	ValueType pricingdomain.AdjustmentValueType `json:"value_type"`
	Value     decimal.Decimal                   `json:"value"`
	Reason    string                            `json:"reason"`
}

// PreviewRequest is a caller-supplied quote snapshot priced without
// persistence. Reference codes resolve against the same catalog as the
// authoritative recalculation.
type PreviewRequest struct {
	TargetLanguageCode string                       `json:"target_language_code"`
	LanguageMultiplier *decimal.Decimal             `json:"language_multiplier"`
	Documents          []DocumentRequest            `json:"documents"`
	Adjustments        []AdjustmentRequest          `json:"adjustments"`
	Turnaround         pricingdomain.TurnaroundTier `json:"turnaround"`
	RushOverride       *RushOverrideRequest         `json:"rush_override"`
	DeliveryOptionCode *string                      `json:"delivery_option_code"`
	TaxRegion          *string                      `json:"tax_region"`
	CertificationTotal *decimal.Decimal             `json:"certification_total"`
	RushFee            *decimal.Decimal             `json:"rush_fee"`
	DeliveryFee        *decimal.Decimal             `json:"delivery_fee"`
	TaxRate            *decimal.Decimal             `json:"tax_rate"`
}

// Response is the quote head with its graph and the totals of the latest
// calculation run.
type Response struct {
	Quote    Quote                     `json:"quote"`
	Totals   pricingdomain.QuoteTotals `json:"totals"`
	Warnings []pricingdomain.Warning   `json:"warnings,omitempty"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidQuoteNumber = errors.New("invalid_quote_number")
	ErrDuplicateQuote     = errors.New("duplicate_quote_number")
	ErrInvalidLanguage    = errors.New("invalid_language")
	ErrNotFound           = errors.New("quote_not_found")
	ErrDocumentNotFound   = errors.New("document_not_found")
	ErrAdjustmentNotFound = errors.New("adjustment_not_found")
)
