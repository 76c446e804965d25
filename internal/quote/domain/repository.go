package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows quote listings.
type ListFilter struct {
	Status QuoteStatus
	Limit  int
	Offset int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, quote *Quote) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Quote, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Quote, error)
	Update(ctx context.Context, db *gorm.DB, quote *Quote) error

	InsertDocument(ctx context.Context, db *gorm.DB, doc *Document) error
	UpdateDocument(ctx context.Context, db *gorm.DB, doc *Document) error
	DeleteDocument(ctx context.Context, db *gorm.DB, quoteID, docID snowflake.ID) error
	ReplaceDocumentCertifications(ctx context.Context, db *gorm.DB, docID snowflake.ID, codes []string) error
	ReplaceDocumentPages(ctx context.Context, db *gorm.DB, docID snowflake.ID, pages []Page) error
	UpdatePageBilling(ctx context.Context, db *gorm.DB, page *Page) error

	InsertAdjustment(ctx context.Context, db *gorm.DB, adjustment *QuoteAdjustment) error
	UpdateAdjustment(ctx context.Context, db *gorm.DB, adjustment *QuoteAdjustment) error
	DeleteAdjustment(ctx context.Context, db *gorm.DB, quoteID, adjustmentID snowflake.ID) error
}
