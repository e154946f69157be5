package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/ordering"
	"github.com/wms/backend/internal/domain/procurement"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID, with lines ordered by position
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
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

// FindByQuoteRequestID finds the order converted from the given request
func (r *GormPurchaseOrderRepository) FindByQuoteRequestID(ctx context.Context, requestID uuid.UUID) (*ordering.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "quote_request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchase orders matching the filter, without lines
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel

	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]ordering.PurchaseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateFromConversion persists the order and flips the source request
// to converted in one transaction. The order number is allocated from
// the year-scoped counter inside the same transaction.
func (r *GormPurchaseOrderRepository) CreateFromConversion(ctx context.Context, order *ordering.PurchaseOrder, request *procurement.QuoteRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := NextDocumentNumber(tx, PurchaseOrderNumberPrefix, PurchaseOrderNumberWidth)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		model := models.PurchaseOrderModelFromDomain(order)
		if err := tx.Omit("Lines").Create(model).Error; err != nil {
			return err
		}

		for i := range order.Lines {
			order.Lines[i].PurchaseOrderID = order.ID
			lineModel := models.PurchaseOrderLineModelFromDomain(&order.Lines[i])
			if err := tx.Create(lineModel).Error; err != nil {
				return err
			}
		}

		return saveQuoteRequestHeader(tx, request)
	})
}

// Save persists header changes with an optimistic version check
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *ordering.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var storedVersion int
		if err := tx.Model(&models.PurchaseOrderModel{}).
			Where("id = ?", order.ID).
			Select("version").
			Scan(&storedVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if storedVersion >= order.Version {
			return shared.ErrConcurrencyConflict
		}

		result := tx.Model(&models.PurchaseOrderModel{}).
			Where("id = ? AND version = ?", order.ID, storedVersion).
			Updates(map[string]interface{}{
				"status":            order.Status,
				"vendor_name":       order.VendorName,
				"total_amount":      order.TotalAmount,
				"shipping_cost":     order.ShippingCost,
				"notes":             order.Notes,
				"funding_source_id": order.FundingSourceID,
				"version":           order.Version,
				"updated_at":        order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR vendor_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "funding_source_id":
			query = query.Where("funding_source_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ ordering.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
