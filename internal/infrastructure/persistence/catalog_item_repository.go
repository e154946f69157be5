package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatalogItemRepository implements ItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindByID finds a catalog item by ID, with its variants
func (r *GormCatalogItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	var item catalog.CatalogItem
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds catalog items matching the filter, with variants
func (r *GormCatalogItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.CatalogItem, error) {
	var items []catalog.CatalogItem

	query := r.db.WithContext(ctx).Model(&catalog.CatalogItem{}).Preload("Variants")

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", searchPattern, searchPattern)
	}

	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, CatalogItemSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(sortField + " " + sortOrder).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ItemNames returns a map of item ID to item name for the given IDs
func (r *GormCatalogItemRepository) ItemNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	type itemName struct {
		ID   uuid.UUID
		Name string
	}

	var rows []itemName
	if err := r.db.WithContext(ctx).
		Model(&catalog.CatalogItem{}).
		Select("id, name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// VariantNames returns a map of variant ID to display name for the given IDs
func (r *GormCatalogItemRepository) VariantNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	type variantName struct {
		ID          uuid.UUID
		DisplayName string
	}

	var rows []variantName
	if err := r.db.WithContext(ctx).
		Model(&catalog.ItemVariant{}).
		Select("id, display_name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.DisplayName
	}
	return names, nil
}

// Save creates or updates a catalog item with its variants
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Save(item).Error; err != nil {
			return err
		}

		currentVariantIDs := make([]uuid.UUID, len(item.Variants))
		for i, variant := range item.Variants {
			currentVariantIDs[i] = variant.ID
		}

		if len(currentVariantIDs) > 0 {
			if err := tx.Where("item_id = ? AND id NOT IN ?", item.ID, currentVariantIDs).
				Delete(&catalog.ItemVariant{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("item_id = ?", item.ID).
				Delete(&catalog.ItemVariant{}).Error; err != nil {
				return err
			}
		}

		for i := range item.Variants {
			item.Variants[i].ItemID = item.ID
			if err := tx.Save(&item.Variants[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormCatalogItemRepository implements ItemRepository
var _ catalog.ItemRepository = (*GormCatalogItemRepository)(nil)
