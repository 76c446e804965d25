package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
)

type QuoteStatus string

var (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusAccepted QuoteStatus = "accepted"
	StatusDeclined QuoteStatus = "declined"
)

// Quote is the persisted quote head. Columns split into three groups:
// staff selections (turnaround, delivery, overrides), the persisted derived
// totals written only by Recalculate, and metadata.
type Quote struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	QuoteNumber string       `json:"quote_number" gorm:"type:text;not null;uniqueIndex"`
	Status      QuoteStatus  `json:"status" gorm:"type:text;not null;default:draft"`

	SourceLanguageCode         *string                          `json:"source_language_code,omitempty" gorm:"type:text"`
	TargetLanguageCode         string                           `json:"target_language_code" gorm:"type:text;not null"`
	LanguageMultiplierOverride *decimal.Decimal                 `json:"language_multiplier_override,omitempty" gorm:"type:numeric(8,4)"`
	TurnaroundTier             pricingdomain.TurnaroundTier     `json:"turnaround_tier" gorm:"type:text;not null;default:standard"`
	RushOverrideMode           pricingdomain.RushOverrideMode   `json:"rush_override_mode" gorm:"type:text;not null;default:auto"`
	RushOverrideType           *pricingdomain.RushOverrideType  `json:"rush_override_type,omitempty" gorm:"type:text"`
	RushOverrideValue          *decimal.Decimal                 `json:"rush_override_value,omitempty" gorm:"type:numeric(12,4)"`
	DeliveryOptionCode         *string                          `json:"delivery_option_code,omitempty" gorm:"type:text"`
	TaxRegion                  *string                          `json:"tax_region,omitempty" gorm:"type:text"`

	CertificationTotalOverride *decimal.Decimal `json:"certification_total_override,omitempty" gorm:"type:numeric(12,2)"`
	RushFeeOverride            *decimal.Decimal `json:"rush_fee_override,omitempty" gorm:"type:numeric(12,2)"`
	DeliveryFeeOverride        *decimal.Decimal `json:"delivery_fee_override,omitempty" gorm:"type:numeric(12,2)"`
	TaxRateOverride            *decimal.Decimal `json:"tax_rate_override,omitempty" gorm:"type:numeric(8,5)"`

	Subtotal           decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2);not null;default:0"`
	TranslationTotal   decimal.Decimal `json:"translation_total" gorm:"type:numeric(12,2);not null;default:0"`
	CertificationTotal decimal.Decimal `json:"certification_total" gorm:"type:numeric(12,2);not null;default:0"`
	AdjustmentsTotal   decimal.Decimal `json:"adjustments_total" gorm:"type:numeric(12,2);not null;default:0"`
	RushFee            decimal.Decimal `json:"rush_fee" gorm:"type:numeric(12,2);not null;default:0"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee" gorm:"type:numeric(12,2);not null;default:0"`
	TaxRate            decimal.Decimal `json:"tax_rate" gorm:"type:numeric(8,5);not null;default:0"`
	TaxableAmount      decimal.Decimal `json:"taxable_amount" gorm:"type:numeric(12,2);not null;default:0"`
	TaxAmount          decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2);not null;default:0"`
	Total              decimal.Decimal `json:"total" gorm:"type:numeric(12,2);not null;default:0"`

	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Documents   []Document        `json:"documents,omitempty" gorm:"foreignKey:QuoteID"`
	Adjustments []QuoteAdjustment `json:"adjustments,omitempty" gorm:"foreignKey:QuoteID"`
}

func (Quote) TableName() string { return "quotes" }

// Document is one source document on a quote. A document with zero pages is
// a valid zero-cost state; the analysis pipeline and manual staff entry both
// write through the same rows.
type Document struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	QuoteID  snowflake.ID `json:"quote_id" gorm:"column:quote_id;not null;index"`
	Name     string       `json:"name" gorm:"type:text;not null;default:''"`
	Position int          `json:"position" gorm:"not null;default:0"`

	RawBillablePages  decimal.Decimal `json:"raw_billable_pages" gorm:"type:numeric(10,1);not null;default:0"`
	BillablePages     decimal.Decimal `json:"billable_pages" gorm:"type:numeric(10,1);not null;default:0"`
	MinApplied        bool            `json:"min_applied" gorm:"not null;default:false"`
	PerPageRate       decimal.Decimal `json:"per_page_rate" gorm:"type:numeric(12,2);not null;default:0"`
	TranslationCost   decimal.Decimal `json:"translation_cost" gorm:"type:numeric(12,2);not null;default:0"`
	CertificationCost decimal.Decimal `json:"certification_cost" gorm:"type:numeric(12,2);not null;default:0"`
	LineTotal         decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Pages          []Page                  `json:"pages,omitempty" gorm:"foreignKey:DocumentID"`
	Certifications []DocumentCertification `json:"certifications,omitempty" gorm:"foreignKey:DocumentID"`
}

func (Document) TableName() string { return "quote_documents" }

// DocumentCertification links a document to a certification type. The price
// is resolved from the catalog at every recalculation, never stored here.
type DocumentCertification struct {
	DocumentID        snowflake.ID `json:"document_id" gorm:"primaryKey;column:document_id"`
	CertificationCode string       `json:"certification_code" gorm:"primaryKey;type:text;column:certification_code"`
}

func (DocumentCertification) TableName() string { return "quote_document_certifications" }

// Page carries the analyzed word count and complexity tier of one page.
// BillablePages is derived and rewritten on every recalculation.
type Page struct {
	ID         snowflake.ID                 `json:"id" gorm:"primaryKey"`
	DocumentID snowflake.ID                 `json:"document_id" gorm:"column:document_id;not null;index"`
	Position   int                          `json:"position" gorm:"not null;default:0"`
	WordCount  int                          `json:"word_count" gorm:"not null;default:0"`
	Complexity pricingdomain.ComplexityTier `json:"complexity" gorm:"type:text;not null;default:easy"`

	BillablePages decimal.Decimal `json:"billable_pages" gorm:"type:numeric(10,1);not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Page) TableName() string { return "quote_pages" }

// QuoteAdjustment is one ledger entry. Amount is the resolved signed value
// from the latest recalculation; Value is the staff-entered magnitude.
type QuoteAdjustment struct {
	ID        snowflake.ID                      `json:"id" gorm:"primaryKey"`
	QuoteID   snowflake.ID                      `json:"quote_id" gorm:"column:quote_id;not null;index"`
	Position  int                               `json:"position" gorm:"not null;default:0"`
	Kind      pricingdomain.AdjustmentKind      `json:"kind" gorm:"type:text;not null"`
	ValueType pricingdomain.AdjustmentValueType `json:"value_type" gorm:"type:text;not null"`
	Value     decimal.Decimal                   `json:"value" gorm:"type:numeric(12,4);not null"`
	Reason    string                            `json:"reason" gorm:"type:text;not null"`
	Amount    decimal.Decimal                   `json:"amount" gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (QuoteAdjustment) TableName() string { return "quote_adjustments" }
