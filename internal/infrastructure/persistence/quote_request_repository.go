package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuoteRequestRepository implements QuoteRequestRepository using GORM
type GormQuoteRequestRepository struct {
	db *gorm.DB
}

// NewGormQuoteRequestRepository creates a new GormQuoteRequestRepository
func NewGormQuoteRequestRepository(db *gorm.DB) *GormQuoteRequestRepository {
	return &GormQuoteRequestRepository{db: db}
}

// FindByID finds a quote request by its ID, with lines ordered by position
func (r *GormQuoteRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.QuoteRequest, error) {
	var model models.QuoteRequestModel
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

// FindAll finds quote requests matching the filter, without lines
func (r *GormQuoteRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.QuoteRequest, error) {
	var requestModels []models.QuoteRequestModel

	query := r.db.WithContext(ctx).Model(&models.QuoteRequestModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]procurement.QuoteRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests, nil
}

// Count counts quote requests matching the filter
func (r *GormQuoteRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.QuoteRequestModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create persists a new quote request. The request number is allocated
// from the year-scoped counter inside the insert transaction.
func (r *GormQuoteRequestRepository) Create(ctx context.Context, request *procurement.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := NextDocumentNumber(tx, QuoteRequestNumberPrefix, QuoteRequestNumberWidth)
		if err != nil {
			return err
		}
		request.RequestNumber = number

		model := models.QuoteRequestModelFromDomain(request)
		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}

		for i := range request.Lines {
			request.Lines[i].QuoteRequestID = request.ID
			lineModel := models.QuoteRequestLineModelFromDomain(&request.Lines[i])
			if err := tx.Create(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Save persists header changes and replaces the line set wholesale,
// with an optimistic version check on the header
func (r *GormQuoteRequestRepository) Save(ctx context.Context, request *procurement.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveQuoteRequestHeader(tx, request); err != nil {
			return err
		}
		return r.replaceLines(tx, request)
	})
}

// SaveWithSelection persists the request header and makes the given
// quote the single selected quote for it, clearing all siblings first
func (r *GormQuoteRequestRepository) SaveWithSelection(ctx context.Context, request *procurement.QuoteRequest, selectedQuoteID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VendorQuoteModel{}).
			Where("quote_request_id = ?", request.ID).
			Update("selected", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.VendorQuoteModel{}).
			Where("id = ? AND quote_request_id = ?", selectedQuoteID, request.ID).
			Updates(map[string]interface{}{
				"selected":   true,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		return saveQuoteRequestHeader(tx, request)
	})
}

// saveQuoteRequestHeader updates the request header with an optimistic
// version check. Domain mutations increment the in-memory version, so
// the stored version must still be behind it; a stored version at or
// past the in-memory one means another writer got there first. Shared
// with the quote and order repositories, which flip request state in
// their own transactions.
func saveQuoteRequestHeader(tx *gorm.DB, request *procurement.QuoteRequest) error {
	// Scan leaves the dest untouched on zero rows instead of erroring,
	// so a vanished header has to be detected through RowsAffected
	var storedVersion int
	headerQuery := tx.Model(&models.QuoteRequestModel{}).
		Where("id = ?", request.ID).
		Select("version").
		Scan(&storedVersion)
	if headerQuery.Error != nil {
		return headerQuery.Error
	}
	if headerQuery.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if storedVersion >= request.Version {
		return shared.ErrConcurrencyConflict
	}

	result := tx.Model(&models.QuoteRequestModel{}).
		Where("id = ? AND version = ?", request.ID, storedVersion).
		Updates(map[string]interface{}{
			"status":            request.Status,
			"funding_source_id": request.FundingSourceID,
			"notes":             request.Notes,
			"due_date":          request.DueDate,
			"approver_id":       request.ApproverID,
			"denier_id":         request.DenierID,
			"denial_reason":     request.DenialReason,
			"sent_at":           request.SentAt,
			"approved_at":       request.ApprovedAt,
			"denied_at":         request.DeniedAt,
			"purchase_order_id": request.PurchaseOrderID,
			"version":           request.Version,
			"updated_at":        request.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// replaceLines deletes the stored line set and reinserts the current one
func (r *GormQuoteRequestRepository) replaceLines(tx *gorm.DB, request *procurement.QuoteRequest) error {
	if err := tx.Where("quote_request_id = ?", request.ID).
		Delete(&models.QuoteRequestLineModel{}).Error; err != nil {
		return err
	}

	for i := range request.Lines {
		request.Lines[i].QuoteRequestID = request.ID
		lineModel := models.QuoteRequestLineModelFromDomain(&request.Lines[i])
		if err := tx.Create(lineModel).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormQuoteRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, QuoteRequestSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQuoteRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("request_number ILIKE ? OR notes ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "requester_id":
			query = query.Where("requester_id = ?", value)
		case "funding_source_id":
			query = query.Where("funding_source_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormQuoteRequestRepository implements QuoteRequestRepository
var _ procurement.QuoteRequestRepository = (*GormQuoteRequestRepository)(nil)
