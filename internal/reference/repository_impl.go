package reference

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
	"github.com/attestra/attestra/internal/reference/domain"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	var languages []domain.Language
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&languages).Error
	if err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *repository) GetLanguage(ctx context.Context, code string) (domain.Language, error) {
	var language domain.Language
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Language{}, pricingdomain.ErrUnknownLanguage
		}
		return domain.Language{}, err
	}
	return language, nil
}

func (r *repository) ListCertificationTypes(ctx context.Context) ([]domain.CertificationType, error) {
	var types []domain.CertificationType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repository) GetCertificationType(ctx context.Context, code string) (domain.CertificationType, error) {
	var certification domain.CertificationType
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&certification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CertificationType{}, pricingdomain.ErrUnknownCertification
		}
		return domain.CertificationType{}, err
	}
	return certification, nil
}

func (r *repository) ListDeliveryOptions(ctx context.Context) ([]domain.DeliveryOption, error) {
	var options []domain.DeliveryOption
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) GetDeliveryOption(ctx context.Context, code string) (domain.DeliveryOption, error) {
	var option domain.DeliveryOption
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeliveryOption{}, pricingdomain.ErrUnknownDeliveryOption
		}
		return domain.DeliveryOption{}, err
	}
	return option, nil
}

func (r *repository) ListTaxRates(ctx context.Context) ([]domain.TaxRate, error) {
	var rates []domain.TaxRate
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("region").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) GetTaxRate(ctx context.Context, region string) (domain.TaxRate, error) {
	var rate domain.TaxRate
	err := r.db.WithContext(ctx).
		Where("region = ? AND enabled = ?", region, true).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TaxRate{}, pricingdomain.ErrUnknownTaxRate
		}
		return domain.TaxRate{}, err
	}
	return rate, nil
}
