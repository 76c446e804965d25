package domain

import "context"

type Repository interface {
	ListLanguages(ctx context.Context) ([]Language, error)
	GetLanguage(ctx context.Context, code string) (Language, error)
	ListCertificationTypes(ctx context.Context) ([]CertificationType, error)
	GetCertificationType(ctx context.Context, code string) (CertificationType, error)
	ListDeliveryOptions(ctx context.Context) ([]DeliveryOption, error)
	GetDeliveryOption(ctx context.Context, code string) (DeliveryOption, error)
	ListTaxRates(ctx context.Context) ([]TaxRate, error)
	GetTaxRate(ctx context.Context, region string) (TaxRate, error)
}
