package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/attestra/attestra/internal/config"
	"github.com/attestra/attestra/internal/observability/metrics"
	pricingdomain "github.com/attestra/attestra/internal/pricing/domain"
	"github.com/attestra/attestra/internal/pricing/engine"
	quotedomain "github.com/attestra/attestra/internal/quote/domain"
	referencedomain "github.com/attestra/attestra/internal/reference/domain"
	"github.com/attestra/attestra/pkg/db"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    quotedomain.Repository
	RefRepo referencedomain.Repository
	Pricing *config.PricingConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    quotedomain.Repository
	refRepo referencedomain.Repository
	pricing *config.PricingConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) quotedomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("quote.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		refRepo: p.RefRepo,
		pricing: p.Pricing,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req quotedomain.CreateRequest) (*quotedomain.Response, error) {
	number := strings.TrimSpace(req.QuoteNumber)
	if number == "" {
		return nil, quotedomain.ErrInvalidQuoteNumber
	}
	target := strings.TrimSpace(req.TargetLanguageCode)
	if target == "" {
		return nil, quotedomain.ErrInvalidLanguage
	}
	if _, err := s.refRepo.GetLanguage(ctx, target); err != nil {
		if errors.Is(err, pricingdomain.ErrUnknownLanguage) {
			return nil, quotedomain.ErrInvalidLanguage
		}
		return nil, err
	}

	now := time.Now().UTC()
	entity := &quotedomain.Quote{
		ID:                 s.genID.Generate(),
		QuoteNumber:        number,
		Status:             quotedomain.StatusDraft,
		SourceLanguageCode: req.SourceLanguageCode,
		TargetLanguageCode: target,
		TurnaroundTier:     pricingdomain.TurnaroundStandard,
		RushOverrideMode:   pricingdomain.RushOverrideAuto,
		TaxRegion:          req.TaxRegion,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}
	for i, docReq := range req.Documents {
		entity.Documents = append(entity.Documents, s.buildDocument(entity.ID, i, docReq))
	}

	var resp *quotedomain.Response
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, entity); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return quotedomain.ErrDuplicateQuote
			}
			return err
		}
		loaded, err := s.repo.FindByID(ctx, tx, entity.ID)
		if err != nil {
			return err
		}
		totals, err := s.recalculate(ctx, tx, loaded, "create")
		if err != nil {
			return err
		}
		resp = s.toResponse(loaded, totals, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*quotedomain.Response, error) {
	quoteID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	quote, err := s.repo.FindByID(ctx, s.db, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quotedomain.ErrNotFound
		}
		return nil, err
	}
	return s.toResponse(quote, persistedTotals(quote), nil), nil
}

func (s *Service) List(ctx context.Context, filter quotedomain.ListFilter) ([]quotedomain.Response, error) {
	quotes, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]quotedomain.Response, 0, len(quotes))
	for i := range quotes {
		resp = append(resp, *s.toResponse(&quotes[i], persistedTotals(&quotes[i]), nil))
	}
	return resp, nil
}

func (s *Service) AddDocument(ctx context.Context, quoteID string, req quotedomain.DocumentRequest) (*quotedomain.Response, error) {
	return s.mutate(ctx, quoteID, "add_document", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		doc := s.buildDocument(quote.ID, len(quote.Documents), req)
		if err := s.repo.InsertDocument(ctx, tx, &doc); err != nil {
			return nil, err
		}
		return nil, nil
	})
}

func (s *Service) UpdateDocument(ctx context.Context, quoteID, documentID string, req quotedomain.DocumentRequest) (*quotedomain.Response, error) {
	docID, err := parseID(documentID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, quoteID, "update_document", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		doc := findDocument(quote, docID)
		if doc == nil {
			return nil, quotedomain.ErrDocumentNotFound
		}
		doc.Name = req.Name
		doc.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateDocument(ctx, tx, doc); err != nil {
			return nil, err
		}
		pages := make([]quotedomain.Page, 0, len(req.Pages))
		for i, pageReq := range req.Pages {
			pages = append(pages, quotedomain.Page{
				ID:         s.genID.Generate(),
				Position:   i,
				WordCount:  pageReq.WordCount,
				Complexity: pageReq.Complexity,
			})
		}
		if err := s.repo.ReplaceDocumentPages(ctx, tx, docID, pages); err != nil {
			return nil, err
		}
		return nil, s.repo.ReplaceDocumentCertifications(ctx, tx, docID, req.Certifications)
	})
}

func (s *Service) RemoveDocument(ctx context.Context, quoteID, documentID string) (*quotedomain.Response, error) {
	docID, err := parseID(documentID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, quoteID, "remove_document", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		if err := s.repo.DeleteDocument(ctx, tx, quote.ID, docID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, quotedomain.ErrDocumentNotFound
			}
			return nil, err
		}
		return nil, nil
	})
}

// SetTurnaround switches the turnaround tier. Changing tier while a custom
// rush override is active resets the override to auto so a fee negotiated for
// one tier can never silently price another.
func (s *Service) SetTurnaround(ctx context.Context, quoteID string, req quotedomain.TurnaroundRequest) (*quotedomain.Response, error) {
	switch req.Tier {
	case pricingdomain.TurnaroundStandard, pricingdomain.TurnaroundRush, pricingdomain.TurnaroundSameDay:
	default:
		return nil, pricingdomain.NewFieldError("turnaround.tier", pricingdomain.ErrInvalidTurnaroundTier)
	}
	return s.mutate(ctx, quoteID, "set_turnaround", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		var warnings []pricingdomain.Warning
		if quote.TurnaroundTier != req.Tier && quote.RushOverrideMode == pricingdomain.RushOverrideCustom {
			quote.RushOverrideMode = pricingdomain.RushOverrideAuto
			quote.RushOverrideType = nil
			quote.RushOverrideValue = nil
			warnings = append(warnings, pricingdomain.WarningRushOverrideReset)
			s.metrics.RecordRushOverrideReset(ctx)
			s.log.Info("rush override reset on turnaround change",
				zap.String("quote_id", quote.ID.String()),
				zap.String("tier", string(req.Tier)),
			)
		}
		quote.TurnaroundTier = req.Tier
		quote.UpdatedAt = time.Now().UTC()
		return warnings, s.repo.Update(ctx, tx, quote)
	})
}

func (s *Service) SetRushOverride(ctx context.Context, quoteID string, req quotedomain.RushOverrideRequest) (*quotedomain.Response, error) {
	switch req.Type {
	case pricingdomain.RushOverridePercentage, pricingdomain.RushOverrideFixed:
	default:
		return nil, pricingdomain.NewFieldError("turnaround.override_type", pricingdomain.ErrInvalidRushOverride)
	}
	if req.Value.IsNegative() {
		return nil, pricingdomain.NewFieldError("turnaround.override_value", pricingdomain.ErrInvalidRushOverride)
	}
	return s.mutate(ctx, quoteID, "set_rush_override", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		overrideType := req.Type
		overrideValue := req.Value
		quote.RushOverrideMode = pricingdomain.RushOverrideCustom
		quote.RushOverrideType = &overrideType
		quote.RushOverrideValue = &overrideValue
		quote.UpdatedAt = time.Now().UTC()
		return nil, s.repo.Update(ctx, tx, quote)
	})
}

func (s *Service) ClearRushOverride(ctx context.Context, quoteID string) (*quotedomain.Response, error) {
	return s.mutate(ctx, quoteID, "clear_rush_override", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		quote.RushOverrideMode = pricingdomain.RushOverrideAuto
		quote.RushOverrideType = nil
		quote.RushOverrideValue = nil
		quote.UpdatedAt = time.Now().UTC()
		return nil, s.repo.Update(ctx, tx, quote)
	})
}

func (s *Service) SetDeliveryOption(ctx context.Context, quoteID string, code string) (*quotedomain.Response, error) {
	code = strings.TrimSpace(code)
	if code != "" {
		if _, err := s.refRepo.GetDeliveryOption(ctx, code); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, quoteID, "set_delivery_option", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		if code == "" {
			quote.DeliveryOptionCode = nil
		} else {
			quote.DeliveryOptionCode = &code
		}
		quote.UpdatedAt = time.Now().UTC()
		return nil, s.repo.Update(ctx, tx, quote)
	})
}

func (s *Service) SetOverrides(ctx context.Context, quoteID string, req quotedomain.OverridesRequest) (*quotedomain.Response, error) {
	return s.mutate(ctx, quoteID, "set_overrides", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		applyOverride(&quote.CertificationTotalOverride, req.CertificationTotal, req.ClearCertificationTotal)
		applyOverride(&quote.RushFeeOverride, req.RushFee, req.ClearRushFee)
		applyOverride(&quote.DeliveryFeeOverride, req.DeliveryFee, req.ClearDeliveryFee)
		applyOverride(&quote.TaxRateOverride, req.TaxRate, req.ClearTaxRate)
		applyOverride(&quote.LanguageMultiplierOverride, req.LanguageMultiplier, req.ClearLanguageMultiplier)
		quote.UpdatedAt = time.Now().UTC()
		return nil, s.repo.Update(ctx, tx, quote)
	})
}

func (s *Service) AddAdjustment(ctx context.Context, quoteID string, req quotedomain.AdjustmentRequest) (*quotedomain.Response, error) {
	return s.mutate(ctx, quoteID, "add_adjustment", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		candidate := pricingdomain.Adjustment{
			Kind:      req.Kind,
			ValueType: req.ValueType,
			Value:     req.Value,
			Reason:    req.Reason,
		}
		if err := engine.ValidateAdjustment(len(quote.Adjustments), candidate); err != nil {
			s.metrics.RecordValidationRejected(ctx, validationCode(err))
			return nil, err
		}
		now := time.Now().UTC()
		adjustment := &quotedomain.QuoteAdjustment{
			ID:        s.genID.Generate(),
			QuoteID:   quote.ID,
			Position:  len(quote.Adjustments),
			Kind:      req.Kind,
			ValueType: req.ValueType,
			Value:     req.Value,
			Reason:    strings.TrimSpace(req.Reason),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil, s.repo.InsertAdjustment(ctx, tx, adjustment)
	})
}

func (s *Service) RemoveAdjustment(ctx context.Context, quoteID, adjustmentID string) (*quotedomain.Response, error) {
	id, err := parseID(adjustmentID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, quoteID, "remove_adjustment", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		if err := s.repo.DeleteAdjustment(ctx, tx, quote.ID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, quotedomain.ErrAdjustmentNotFound
			}
			return nil, err
		}
		return nil, nil
	})
}

func (s *Service) Recalculate(ctx context.Context, quoteID string) (*quotedomain.Response, error) {
	return s.mutate(ctx, quoteID, "manual", func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error) {
		return nil, nil
	})
}

func (s *Service) Preview(ctx context.Context, req quotedomain.PreviewRequest) (*pricingdomain.QuoteTotals, error) {
	cfg := s.pricing.Snapshot()

	langMultiplier, err := s.resolveLanguageMultiplier(ctx, req.TargetLanguageCode)
	if err != nil {
		return nil, err
	}

	input := pricingdomain.QuoteInput{
		LanguageMultiplier: langMultiplier,
		Turnaround: pricingdomain.RushSelection{
			Tier:         req.Turnaround,
			OverrideMode: pricingdomain.RushOverrideAuto,
		},
		Overrides: pricingdomain.Overrides{
			CertificationTotal: req.CertificationTotal,
			RushFee:            req.RushFee,
			DeliveryFee:        req.DeliveryFee,
			TaxRate:            req.TaxRate,
			LanguageMultiplier: req.LanguageMultiplier,
		},
	}
	if req.RushOverride != nil {
		input.Turnaround.OverrideMode = pricingdomain.RushOverrideCustom
		input.Turnaround.OverrideType = req.RushOverride.Type
		input.Turnaround.OverrideValue = req.RushOverride.Value
	}

	for i, docReq := range req.Documents {
		doc := pricingdomain.Document{ID: strconv.Itoa(i + 1)}
		for j, pageReq := range docReq.Pages {
			doc.Pages = append(doc.Pages, pricingdomain.Page{
				Number:     j + 1,
				WordCount:  pageReq.WordCount,
				Complexity: pageReq.Complexity,
			})
		}
		for _, code := range docReq.Certifications {
			certification, err := s.refRepo.GetCertificationType(ctx, code)
			if err != nil {
				return nil, err
			}
			doc.CertificationPrices = append(doc.CertificationPrices, certification.Price)
		}
		input.Documents = append(input.Documents, doc)
	}
	for i, adjReq := range req.Adjustments {
		input.Adjustments = append(input.Adjustments, pricingdomain.Adjustment{
			ID:        strconv.Itoa(i + 1),
			Kind:      adjReq.Kind,
			ValueType: adjReq.ValueType,
			Value:     adjReq.Value,
			Reason:    adjReq.Reason,
		})
	}

	if req.DeliveryOptionCode != nil && *req.DeliveryOptionCode != "" {
		option, err := s.refRepo.GetDeliveryOption(ctx, *req.DeliveryOptionCode)
		if err != nil {
			return nil, err
		}
		input.DeliveryFee = option.Price
	}
	if req.TaxRegion != nil && *req.TaxRegion != "" {
		rate, err := s.refRepo.GetTaxRate(ctx, *req.TaxRegion)
		if err != nil {
			return nil, err
		}
		input.TaxRate = rate.Rate
	}

	totals, err := engine.ComputeQuoteTotals(cfg, input)
	if err != nil {
		if pricingdomain.IsValidationError(err) {
			s.metrics.RecordValidationRejected(ctx, validationCode(err))
		}
		return nil, err
	}
	s.metrics.RecordPreview(ctx)
	return &totals, nil
}

// mutate runs one quote mutation and the authoritative recalculation in a
// single transaction. The closure changes rows through the repository; the
// fresh graph is then reloaded and repriced so persisted derived fields can
// never drift from the inputs.
func (s *Service) mutate(ctx context.Context, quoteID, trigger string, fn func(tx *gorm.DB, quote *quotedomain.Quote) ([]pricingdomain.Warning, error)) (*quotedomain.Response, error) {
	id, err := parseID(quoteID)
	if err != nil {
		return nil, err
	}

	var resp *quotedomain.Response
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quote, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return quotedomain.ErrNotFound
			}
			return err
		}

		warnings, err := fn(tx, quote)
		if err != nil {
			return err
		}

		quote, err = s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		totals, err := s.recalculate(ctx, tx, quote, trigger)
		if err != nil {
			return err
		}
		resp = s.toResponse(quote, totals, warnings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// recalculate is the single write path for every derived figure. It resolves
// reference data, snapshots the pricing config, runs the engine and persists
// the result, replacing whatever the previous run wrote.
func (s *Service) recalculate(ctx context.Context, tx *gorm.DB, quote *quotedomain.Quote, trigger string) (pricingdomain.QuoteTotals, error) {
	cfg := s.pricing.Snapshot()

	langMultiplier, err := s.resolveLanguageMultiplier(ctx, quote.TargetLanguageCode)
	if err != nil {
		return pricingdomain.QuoteTotals{}, err
	}

	input := pricingdomain.QuoteInput{
		LanguageMultiplier: langMultiplier,
		Turnaround: pricingdomain.RushSelection{
			Tier:         quote.TurnaroundTier,
			OverrideMode: quote.RushOverrideMode,
		},
		Overrides: pricingdomain.Overrides{
			CertificationTotal: quote.CertificationTotalOverride,
			RushFee:            quote.RushFeeOverride,
			DeliveryFee:        quote.DeliveryFeeOverride,
			TaxRate:            quote.TaxRateOverride,
			LanguageMultiplier: quote.LanguageMultiplierOverride,
		},
	}
	if quote.RushOverrideType != nil {
		input.Turnaround.OverrideType = *quote.RushOverrideType
	}
	if quote.RushOverrideValue != nil {
		input.Turnaround.OverrideValue = *quote.RushOverrideValue
	}

	for i := range quote.Documents {
		doc := &quote.Documents[i]
		docInput := pricingdomain.Document{ID: doc.ID.String()}
		for _, page := range doc.Pages {
			docInput.Pages = append(docInput.Pages, pricingdomain.Page{
				Number:     page.Position + 1,
				WordCount:  page.WordCount,
				Complexity: page.Complexity,
			})
		}
		for _, link := range doc.Certifications {
			certification, err := s.refRepo.GetCertificationType(ctx, link.CertificationCode)
			if err != nil {
				return pricingdomain.QuoteTotals{}, err
			}
			docInput.CertificationPrices = append(docInput.CertificationPrices, certification.Price)
		}
		input.Documents = append(input.Documents, docInput)
	}

	for i := range quote.Adjustments {
		adjustment := &quote.Adjustments[i]
		input.Adjustments = append(input.Adjustments, pricingdomain.Adjustment{
			ID:        adjustment.ID.String(),
			Kind:      adjustment.Kind,
			ValueType: adjustment.ValueType,
			Value:     adjustment.Value,
			Reason:    adjustment.Reason,
		})
	}

	if quote.DeliveryOptionCode != nil && *quote.DeliveryOptionCode != "" {
		option, err := s.refRepo.GetDeliveryOption(ctx, *quote.DeliveryOptionCode)
		if err != nil {
			return pricingdomain.QuoteTotals{}, err
		}
		input.DeliveryFee = option.Price
	}
	if quote.TaxRegion != nil && *quote.TaxRegion != "" {
		rate, err := s.refRepo.GetTaxRate(ctx, *quote.TaxRegion)
		if err != nil {
			return pricingdomain.QuoteTotals{}, err
		}
		input.TaxRate = rate.Rate
	}

	totals, err := engine.ComputeQuoteTotals(cfg, input)
	if err != nil {
		if pricingdomain.IsValidationError(err) {
			s.metrics.RecordValidationRejected(ctx, validationCode(err))
		}
		return pricingdomain.QuoteTotals{}, err
	}

	if err := s.persistTotals(ctx, tx, quote, totals); err != nil {
		return pricingdomain.QuoteTotals{}, err
	}

	s.metrics.RecordRecalculation(ctx, trigger)
	return totals, nil
}

func (s *Service) persistTotals(ctx context.Context, tx *gorm.DB, quote *quotedomain.Quote, totals pricingdomain.QuoteTotals) error {
	now := time.Now().UTC()
	translation := decimal.Zero

	for i := range totals.Documents {
		docTotals := totals.Documents[i]
		doc := &quote.Documents[i]
		doc.RawBillablePages = docTotals.RawBillablePages
		doc.BillablePages = docTotals.BillablePages
		doc.MinApplied = docTotals.MinApplied
		doc.PerPageRate = docTotals.PerPageRate
		doc.TranslationCost = docTotals.TranslationCost
		doc.CertificationCost = docTotals.CertificationCost
		doc.LineTotal = docTotals.LineTotal
		doc.UpdatedAt = now
		if err := s.repo.UpdateDocument(ctx, tx, doc); err != nil {
			return err
		}
		for j := range docTotals.Pages {
			page := &doc.Pages[j]
			page.BillablePages = docTotals.Pages[j].BillablePages
			if err := s.repo.UpdatePageBilling(ctx, tx, page); err != nil {
				return err
			}
		}
		translation = translation.Add(docTotals.TranslationCost)
	}

	for i := range totals.Adjustments {
		adjustment := &quote.Adjustments[i]
		adjustment.Amount = totals.Adjustments[i].CalculatedAmount
		adjustment.UpdatedAt = now
		if err := s.repo.UpdateAdjustment(ctx, tx, adjustment); err != nil {
			return err
		}
	}

	quote.Subtotal = totals.Subtotal
	quote.TranslationTotal = translation
	quote.CertificationTotal = totals.Subtotal.Sub(translation)
	quote.AdjustmentsTotal = totals.AdjustmentsTotal
	quote.RushFee = totals.RushFee
	quote.DeliveryFee = totals.DeliveryFee
	quote.TaxRate = totals.TaxRate
	quote.TaxableAmount = totals.TaxableAmount
	quote.TaxAmount = totals.TaxAmount
	quote.Total = totals.Total
	quote.UpdatedAt = now
	return s.repo.Update(ctx, tx, quote)
}

func (s *Service) resolveLanguageMultiplier(ctx context.Context, code string) (decimal.Decimal, error) {
	language, err := s.refRepo.GetLanguage(ctx, strings.TrimSpace(code))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return language.Multiplier, nil
}

func (s *Service) buildDocument(quoteID snowflake.ID, position int, req quotedomain.DocumentRequest) quotedomain.Document {
	now := time.Now().UTC()
	doc := quotedomain.Document{
		ID:        s.genID.Generate(),
		QuoteID:   quoteID,
		Name:      req.Name,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, pageReq := range req.Pages {
		doc.Pages = append(doc.Pages, quotedomain.Page{
			ID:         s.genID.Generate(),
			DocumentID: doc.ID,
			Position:   i,
			WordCount:  pageReq.WordCount,
			Complexity: pageReq.Complexity,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	for _, code := range req.Certifications {
		doc.Certifications = append(doc.Certifications, quotedomain.DocumentCertification{
			DocumentID:        doc.ID,
			CertificationCode: code,
		})
	}
	return doc
}

func (s *Service) toResponse(quote *quotedomain.Quote, totals pricingdomain.QuoteTotals, warnings []pricingdomain.Warning) *quotedomain.Response {
	if len(warnings) > 0 {
		totals.Warnings = append(totals.Warnings, warnings...)
	}
	return &quotedomain.Response{
		Quote:    *quote,
		Totals:   totals,
		Warnings: totals.Warnings,
	}
}

// persistedTotals rebuilds the totals view from the stored derived columns
// without running the engine, for read paths.
func persistedTotals(quote *quotedomain.Quote) pricingdomain.QuoteTotals {
	totals := pricingdomain.QuoteTotals{
		Subtotal:         quote.Subtotal,
		AdjustmentsTotal: quote.AdjustmentsTotal,
		RushFee:          quote.RushFee,
		DeliveryFee:      quote.DeliveryFee,
		TaxRate:          quote.TaxRate,
		TaxableAmount:    quote.TaxableAmount,
		TaxAmount:        quote.TaxAmount,
		Total:            quote.Total,
		Overridden: pricingdomain.OverrideFlags{
			CertificationTotal: quote.CertificationTotalOverride != nil,
			RushFee:            quote.RushFeeOverride != nil,
			DeliveryFee:        quote.DeliveryFeeOverride != nil,
			TaxRate:            quote.TaxRateOverride != nil,
			LanguageMultiplier: quote.LanguageMultiplierOverride != nil,
		},
	}
	for i := range quote.Documents {
		doc := &quote.Documents[i]
		docTotals := pricingdomain.DocumentTotals{
			ID:                doc.ID.String(),
			RawBillablePages:  doc.RawBillablePages,
			BillablePages:     doc.BillablePages,
			MinApplied:        doc.MinApplied,
			PerPageRate:       doc.PerPageRate,
			TranslationCost:   doc.TranslationCost,
			CertificationCost: doc.CertificationCost,
			LineTotal:         doc.LineTotal,
		}
		for _, page := range doc.Pages {
			docTotals.Pages = append(docTotals.Pages, pricingdomain.PageTotals{
				Number:        page.Position + 1,
				BillablePages: page.BillablePages,
			})
		}
		totals.Documents = append(totals.Documents, docTotals)
	}
	for i := range quote.Adjustments {
		adjustment := &quote.Adjustments[i]
		totals.Adjustments = append(totals.Adjustments, pricingdomain.AdjustmentTotals{
			ID:               adjustment.ID.String(),
			Kind:             adjustment.Kind,
			CalculatedAmount: adjustment.Amount,
		})
	}
	return totals
}

func findDocument(quote *quotedomain.Quote, id snowflake.ID) *quotedomain.Document {
	for i := range quote.Documents {
		if quote.Documents[i].ID == id {
			return &quote.Documents[i]
		}
	}
	return nil
}

func applyOverride(target **decimal.Decimal, value *decimal.Decimal, clear bool) {
	if clear {
		*target = nil
		return
	}
	if value != nil {
		v := *value
		*target = &v
	}
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, quotedomain.ErrInvalidID
	}
	return id, nil
}

func validationCode(err error) string {
	var fe *pricingdomain.FieldError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}
	return err.Error()
}
