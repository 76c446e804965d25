package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Language carries the per-language pricing multiplier applied to the base
// per-page rate. Tier groups languages 1-3 (1 common, 2 standard,
// 3 specialist) for console display; only the multiplier prices.
type Language struct {
	Code       string          `json:"code" gorm:"type:text;primaryKey;column:code"`
	Name       string          `json:"name" gorm:"type:text;not null"`
	Tier       int             `json:"tier" gorm:"not null;default:1"`
	Multiplier decimal.Decimal `json:"multiplier" gorm:"type:numeric(8,4);not null"`
	IsActive   bool            `json:"is_active,omitempty" gorm:"not null;default:true"`
	CreatedAt  time.Time       `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Language) TableName() string { return "languages" }

// CertificationType is a flat-priced add-on attached per document.
type CertificationType struct {
	Code      string          `json:"code" gorm:"type:text;primaryKey;column:code"`
	Name      string          `json:"name" gorm:"type:text;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	IsActive  bool            `json:"is_active,omitempty" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CertificationType) TableName() string { return "certification_types" }

const (
	DeliveryKindPhysical = "physical"
	DeliveryKindDigital  = "digital"
)

// DeliveryOption is a quote-level flat fee.
type DeliveryOption struct {
	Code            string          `json:"code" gorm:"type:text;primaryKey;column:code"`
	Name            string          `json:"name" gorm:"type:text;not null"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Kind            string          `json:"kind" gorm:"type:text;not null"`
	RequiresAddress bool            `json:"requires_address" gorm:"not null;default:false"`
	IsActive        bool            `json:"is_active,omitempty" gorm:"not null;default:true"`
	CreatedAt       time.Time       `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DeliveryOption) TableName() string { return "delivery_options" }

// TaxRate is a fractional rate keyed by region, e.g. 0.05 for 5%.
type TaxRate struct {
	Region    string          `json:"region" gorm:"type:text;primaryKey;column:region"`
	Rate      decimal.Decimal `json:"rate" gorm:"type:numeric(8,5);not null"`
	Enabled   bool            `json:"enabled" gorm:"not null;default:true"`
	CreatedAt time.Time       `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TaxRate) TableName() string { return "tax_rates" }
