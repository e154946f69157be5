package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFundingSourceRepository implements FundingSourceRepository using GORM
type GormFundingSourceRepository struct {
	db *gorm.DB
}

// NewGormFundingSourceRepository creates a new GormFundingSourceRepository
func NewGormFundingSourceRepository(db *gorm.DB) *GormFundingSourceRepository {
	return &GormFundingSourceRepository{db: db}
}

// FindByID finds a funding source by ID
func (r *GormFundingSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.FundingSource, error) {
	var source partner.FundingSource
	if err := r.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &source, nil
}

// FindAll finds funding sources matching the filter
func (r *GormFundingSourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.FundingSource, error) {
	var sources []partner.FundingSource

	query := r.db.WithContext(ctx).Model(&partner.FundingSource{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, FundingSourceSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(sortField + " " + sortOrder).Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

// Save creates or updates a funding source
func (r *GormFundingSourceRepository) Save(ctx context.Context, source *partner.FundingSource) error {
	return r.db.WithContext(ctx).Save(source).Error
}

// Ensure GormFundingSourceRepository implements FundingSourceRepository
var _ partner.FundingSourceRepository = (*GormFundingSourceRepository)(nil)
