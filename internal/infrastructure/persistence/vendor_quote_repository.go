package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorQuoteRepository implements VendorQuoteRepository using GORM
type GormVendorQuoteRepository struct {
	db *gorm.DB
}

// NewGormVendorQuoteRepository creates a new GormVendorQuoteRepository
func NewGormVendorQuoteRepository(db *gorm.DB) *GormVendorQuoteRepository {
	return &GormVendorQuoteRepository{db: db}
}

// FindByID finds a vendor quote by its ID, with lines ordered by position
func (r *GormVendorQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.VendorQuote, error) {
	var model models.VendorQuoteModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRequestID finds all quotes for a request ordered by ascending
// total amount, each with its lines
func (r *GormVendorQuoteRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]procurement.VendorQuote, error) {
	var quoteModels []models.VendorQuoteModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("quote_request_id = ?", requestID).
		Order("total_amount ASC").
		Find(&quoteModels).Error; err != nil {
		return nil, err
	}

	quotes := make([]procurement.VendorQuote, len(quoteModels))
	for i, model := range quoteModels {
		quotes[i] = *model.ToDomain()
	}
	return quotes, nil
}

// CountByRequestIDs returns a map of request ID to quote count
func (r *GormVendorQuoteRepository) CountByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(requestIDs))
	if len(requestIDs) == 0 {
		return counts, nil
	}

	type requestCount struct {
		QuoteRequestID uuid.UUID
		Count          int64
	}

	var rows []requestCount
	if err := r.db.WithContext(ctx).
		Model(&models.VendorQuoteModel{}).
		Select("quote_request_id, COUNT(*) AS count").
		Where("quote_request_id IN ?", requestIDs).
		Group("quote_request_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.QuoteRequestID] = row.Count
	}
	return counts, nil
}

// Create persists a new quote with its lines. When request is not nil
// its header is saved in the same transaction, so the first quote can
// flip a sent request to quotes received atomically.
func (r *GormVendorQuoteRepository) Create(ctx context.Context, quote *procurement.VendorQuote, request *procurement.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.VendorQuoteModelFromDomain(quote)
		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}

		for i := range quote.Lines {
			quote.Lines[i].VendorQuoteID = quote.ID
			lineModel := models.VendorQuoteLineModelFromDomain(&quote.Lines[i])
			if err := tx.Create(lineModel).Error; err != nil {
				return err
			}
		}

		if request != nil {
			if err := saveQuoteRequestHeader(tx, request); err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormVendorQuoteRepository implements VendorQuoteRepository
var _ procurement.VendorQuoteRepository = (*GormVendorQuoteRepository)(nil)
