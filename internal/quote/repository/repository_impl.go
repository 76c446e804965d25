package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	quotedomain "github.com/attestra/attestra/internal/quote/domain"
)

type repo struct{}

func Provide() quotedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quote *quotedomain.Quote) error {
	return db.WithContext(ctx).Create(quote).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*quotedomain.Quote, error) {
	var quote quotedomain.Quote
	err := db.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Preload("Documents.Pages", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Preload("Documents.Certifications").
		Preload("Adjustments", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter quotedomain.ListFilter) ([]quotedomain.Quote, error) {
	query := db.WithContext(ctx).Model(&quotedomain.Quote{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var quotes []quotedomain.Quote
	if err := query.Order("created_at DESC, id DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, quote *quotedomain.Quote) error {
	return db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: false}).
		Omit("Documents", "Adjustments").
		Save(quote).Error
}

func (r *repo) InsertDocument(ctx context.Context, db *gorm.DB, doc *quotedomain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) UpdateDocument(ctx context.Context, db *gorm.DB, doc *quotedomain.Document) error {
	return db.WithContext(ctx).
		Omit("Pages", "Certifications").
		Save(doc).Error
}

func (r *repo) DeleteDocument(ctx context.Context, db *gorm.DB, quoteID, docID snowflake.ID) error {
	tx := db.WithContext(ctx)
	if err := tx.Where("document_id = ?", docID).Delete(&quotedomain.Page{}).Error; err != nil {
		return err
	}
	if err := tx.Where("document_id = ?", docID).Delete(&quotedomain.DocumentCertification{}).Error; err != nil {
		return err
	}
	result := tx.Where("quote_id = ? AND id = ?", quoteID, docID).Delete(&quotedomain.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) ReplaceDocumentCertifications(ctx context.Context, db *gorm.DB, docID snowflake.ID, codes []string) error {
	tx := db.WithContext(ctx)
	if err := tx.Where("document_id = ?", docID).Delete(&quotedomain.DocumentCertification{}).Error; err != nil {
		return err
	}
	for _, code := range codes {
		link := quotedomain.DocumentCertification{DocumentID: docID, CertificationCode: code}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) ReplaceDocumentPages(ctx context.Context, db *gorm.DB, docID snowflake.ID, pages []quotedomain.Page) error {
	tx := db.WithContext(ctx)
	if err := tx.Where("document_id = ?", docID).Delete(&quotedomain.Page{}).Error; err != nil {
		return err
	}
	for i := range pages {
		pages[i].DocumentID = docID
		if err := tx.Create(&pages[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) UpdatePageBilling(ctx context.Context, db *gorm.DB, page *quotedomain.Page) error {
	return db.WithContext(ctx).
		Model(&quotedomain.Page{}).
		Where("id = ?", page.ID).
		Update("billable_pages", page.BillablePages).Error
}

func (r *repo) InsertAdjustment(ctx context.Context, db *gorm.DB, adjustment *quotedomain.QuoteAdjustment) error {
	return db.WithContext(ctx).Create(adjustment).Error
}

func (r *repo) UpdateAdjustment(ctx context.Context, db *gorm.DB, adjustment *quotedomain.QuoteAdjustment) error {
	return db.WithContext(ctx).Save(adjustment).Error
}

func (r *repo) DeleteAdjustment(ctx context.Context, db *gorm.DB, quoteID, adjustmentID snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("quote_id = ? AND id = ?", quoteID, adjustmentID).
		Delete(&quotedomain.QuoteAdjustment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
