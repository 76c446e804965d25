package seed

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/attestra/attestra/internal/reference/domain"
)

// EnsureReferenceData seeds the reference catalog so a fresh install can
// price quotes immediately. Existing rows are left untouched, which keeps
// operator edits across restarts.
func EnsureReferenceData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureLanguages(ctx, tx); err != nil {
			return err
		}
		if err := ensureCertificationTypes(ctx, tx); err != nil {
			return err
		}
		if err := ensureDeliveryOptions(ctx, tx); err != nil {
			return err
		}
		return ensureTaxRates(ctx, tx)
	})
}

func ensureLanguages(ctx context.Context, tx *gorm.DB) error {
	languages := []domain.Language{
		{Code: "es", Name: "Spanish", Tier: 1, Multiplier: decimal.NewFromFloat(1.0)},
		{Code: "fr", Name: "French", Tier: 1, Multiplier: decimal.NewFromFloat(1.0)},
		{Code: "pt", Name: "Portuguese", Tier: 1, Multiplier: decimal.NewFromFloat(1.0)},
		{Code: "de", Name: "German", Tier: 2, Multiplier: decimal.NewFromFloat(1.1)},
		{Code: "ru", Name: "Russian", Tier: 2, Multiplier: decimal.NewFromFloat(1.15)},
		{Code: "zh", Name: "Chinese", Tier: 3, Multiplier: decimal.NewFromFloat(1.3)},
		{Code: "ja", Name: "Japanese", Tier: 3, Multiplier: decimal.NewFromFloat(1.3)},
		{Code: "ar", Name: "Arabic", Tier: 3, Multiplier: decimal.NewFromFloat(1.25)},
	}
	for _, language := range languages {
		language.IsActive = true
		err := tx.WithContext(ctx).
			Where(domain.Language{Code: language.Code}).
			FirstOrCreate(&language).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureCertificationTypes(ctx context.Context, tx *gorm.DB) error {
	types := []domain.CertificationType{
		{Code: "certified", Name: "Certification Statement", Price: decimal.NewFromFloat(10.00)},
		{Code: "notarized", Name: "Notarization", Price: decimal.NewFromFloat(34.95)},
		{Code: "apostille", Name: "Apostille Handling", Price: decimal.NewFromFloat(75.00)},
	}
	for _, certification := range types {
		certification.IsActive = true
		err := tx.WithContext(ctx).
			Where(domain.CertificationType{Code: certification.Code}).
			FirstOrCreate(&certification).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureDeliveryOptions(ctx context.Context, tx *gorm.DB) error {
	options := []domain.DeliveryOption{
		{Code: "digital", Name: "Digital Delivery", Price: decimal.Zero, Kind: domain.DeliveryKindDigital},
		{Code: "mail", Name: "Standard Mail", Price: decimal.NewFromFloat(9.95), Kind: domain.DeliveryKindPhysical, RequiresAddress: true},
		{Code: "express", Name: "Express Courier", Price: decimal.NewFromFloat(29.95), Kind: domain.DeliveryKindPhysical, RequiresAddress: true},
	}
	for _, option := range options {
		option.IsActive = true
		err := tx.WithContext(ctx).
			Where(domain.DeliveryOption{Code: option.Code}).
			FirstOrCreate(&option).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureTaxRates(ctx context.Context, tx *gorm.DB) error {
	rates := []domain.TaxRate{
		{Region: "none", Rate: decimal.Zero, Enabled: true},
		{Region: "us-fl", Rate: decimal.NewFromFloat(0.06), Enabled: true},
		{Region: "ca-on", Rate: decimal.NewFromFloat(0.13), Enabled: true},
	}
	for _, rate := range rates {
		err := tx.WithContext(ctx).
			Where(domain.TaxRate{Region: rate.Region}).
			FirstOrCreate(&rate).Error
		if err != nil {
			return err
		}
	}
	return nil
}
