// Package domain contains the input and output types of the quote
// calculation engine. Everything here is plain data: the engine is a pure
// function over these values and the pricing Config, so the same types serve
// the live preview endpoint and the authoritative recalculation.
package domain

import (
	"github.com/shopspring/decimal"
)

// ComplexityTier buckets a page by translation difficulty. Each tier maps to
// exactly one multiplier in Config.ComplexityMultipliers.
type ComplexityTier string

const (
	ComplexityEasy   ComplexityTier = "easy"
	ComplexityMedium ComplexityTier = "medium"
	ComplexityHard   ComplexityTier = "hard"
)

// TurnaroundTier is the delivery-speed selection driving the rush surcharge.
type TurnaroundTier string

const (
	TurnaroundStandard TurnaroundTier = "standard"
	TurnaroundRush     TurnaroundTier = "rush"
	TurnaroundSameDay  TurnaroundTier = "same_day"
)

// RushOverrideMode selects between the formula-driven rush fee and a
// staff-entered one.
type RushOverrideMode string

const (
	RushOverrideAuto   RushOverrideMode = "auto"
	RushOverrideCustom RushOverrideMode = "custom"
)

// RushOverrideType is the shape of a custom rush fee.
type RushOverrideType string

const (
	RushOverridePercentage RushOverrideType = "percentage"
	RushOverrideFixed      RushOverrideType = "fixed"
)

// AdjustmentKind signs an adjustment: discounts subtract, surcharges add.
type AdjustmentKind string

const (
	AdjustmentDiscount  AdjustmentKind = "discount"
	AdjustmentSurcharge AdjustmentKind = "surcharge"
)

// AdjustmentValueType determines how an adjustment value resolves against the
// subtotal.
type AdjustmentValueType string

const (
	AdjustmentPercentage AdjustmentValueType = "percentage"
	AdjustmentFixed      AdjustmentValueType = "fixed"
)

// Config is the tenant-level pricing configuration. It is immutable per
// calculation run; callers take a snapshot from the config holder and pass it
// in explicitly.
type Config struct {
	BaseRate              decimal.Decimal
	WordsPerPage          int
	ComplexityMultipliers map[ComplexityTier]decimal.Decimal
	MinBillablePages      decimal.Decimal
	RushMultiplier        decimal.Decimal
	SameDayMultiplier     decimal.Decimal
	StandardDays          int
	RushDays              int
}

// Page is one page of a document as seen by the calculator.
type Page struct {
	Number     int
	WordCount  int
	Complexity ComplexityTier
}

// Document carries the pages and the already-resolved certification prices of
// one document. Reference-data resolution (certification id -> price) happens
// upstream so the engine stays pure; an unresolvable id never reaches it.
type Document struct {
	ID                  string
	Pages               []Page
	CertificationPrices []decimal.Decimal
}

// Adjustment is one staff-entered discount or surcharge. Reason is mandatory
// for audit.
type Adjustment struct {
	ID        string
	Kind      AdjustmentKind
	ValueType AdjustmentValueType
	Value     decimal.Decimal
	Reason    string
}

// RushSelection is the turnaround choice plus its override sub-mode.
type RushSelection struct {
	Tier          TurnaroundTier
	OverrideMode  RushOverrideMode
	OverrideType  RushOverrideType
	OverrideValue decimal.Decimal
}

// Overrides holds the staff correction escape hatches of a quote. A nil field
// means "use the computed value". Present values replace the computed ones
// for the run and are flagged in the totals so a later re-run cannot silently
// discard staff intent.
type Overrides struct {
	CertificationTotal *decimal.Decimal
	RushFee            *decimal.Decimal
	DeliveryFee        *decimal.Decimal
	TaxRate            *decimal.Decimal
	LanguageMultiplier *decimal.Decimal
}

// QuoteInput is the full snapshot one calculation runs against.
type QuoteInput struct {
	Documents          []Document
	Adjustments        []Adjustment
	Turnaround         RushSelection
	DeliveryFee        decimal.Decimal
	TaxRate            decimal.Decimal
	LanguageMultiplier decimal.Decimal
	Overrides          Overrides
}

// PageTotals is the billable-unit outcome for one page.
type PageTotals struct {
	Number        int             `json:"number"`
	BillablePages decimal.Decimal `json:"billable_pages"`
}

// DocumentTotals is the per-document billing breakdown.
type DocumentTotals struct {
	ID                string          `json:"id"`
	Pages             []PageTotals    `json:"pages"`
	RawBillablePages  decimal.Decimal `json:"raw_billable_pages"`
	BillablePages     decimal.Decimal `json:"billable_pages"`
	MinApplied        bool            `json:"min_applied"`
	PerPageRate       decimal.Decimal `json:"per_page_rate"`
	TranslationCost   decimal.Decimal `json:"translation_cost"`
	CertificationCost decimal.Decimal `json:"certification_cost"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// AdjustmentTotals is one resolved ledger entry. CalculatedAmount is signed.
type AdjustmentTotals struct {
	ID               string          `json:"id"`
	Kind             AdjustmentKind  `json:"kind"`
	CalculatedAmount decimal.Decimal `json:"calculated_amount"`
}

// OverrideFlags records which computed values were replaced by manual entry
// in this run.
type OverrideFlags struct {
	CertificationTotal bool `json:"certification_total"`
	RushFee            bool `json:"rush_fee"`
	DeliveryFee        bool `json:"delivery_fee"`
	TaxRate            bool `json:"tax_rate"`
	LanguageMultiplier bool `json:"language_multiplier"`
}

// QuoteTotals is the engine output: every derived figure of a quote plus the
// flag metadata the UI needs for transparency.
type QuoteTotals struct {
	Documents        []DocumentTotals   `json:"documents"`
	Adjustments      []AdjustmentTotals `json:"adjustments"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	AdjustmentsTotal decimal.Decimal    `json:"adjustments_total"`
	RushFee          decimal.Decimal    `json:"rush_fee"`
	DeliveryFee      decimal.Decimal    `json:"delivery_fee"`
	TaxRate          decimal.Decimal    `json:"tax_rate"`
	TaxableAmount    decimal.Decimal    `json:"taxable_amount"`
	TaxAmount        decimal.Decimal    `json:"tax_amount"`
	Total            decimal.Decimal    `json:"total"`
	Overridden       OverrideFlags      `json:"overridden"`
	Warnings         []Warning          `json:"warnings,omitempty"`
}

// Warning is non-fatal calculation metadata. The result next to a warning is
// fully valid.
type Warning string

// WarningRushOverrideReset reports that a turnaround tier change cleared a
// custom rush override before this run.
const WarningRushOverrideReset Warning = "rush_override_reset"
