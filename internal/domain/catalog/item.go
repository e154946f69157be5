package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// CatalogItem represents a stocked item that request lines may reference
type CatalogItem struct {
	shared.BaseAggregateRoot
	Name     string        `gorm:"type:varchar(200);not null"`
	SKU      string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	Active   bool          `gorm:"not null;default:true"`
	Variants []ItemVariant `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// ItemVariant represents a size or configuration of a catalog item
type ItemVariant struct {
	shared.BaseEntity
	ItemID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DisplayName string    `gorm:"type:varchar(200);not null"`
	SKU         string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ItemVariant) TableName() string {
	return "catalog_item_variants"
}

// NewCatalogItem creates a new active catalog item
func NewCatalogItem(name, sku string) (*CatalogItem, error) {
	name = strings.TrimSpace(name)
	sku = strings.ToUpper(strings.TrimSpace(sku))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}

	return &CatalogItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Active:            true,
	}, nil
}

// AddVariant adds a variant to the item
func (i *CatalogItem) AddVariant(displayName, sku string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return shared.NewDomainError("INVALID_VARIANT", "Variant display name cannot be empty")
	}

	i.Variants = append(i.Variants, ItemVariant{
		BaseEntity:  shared.NewBaseEntity(),
		ItemID:      i.ID,
		DisplayName: displayName,
		SKU:         strings.ToUpper(strings.TrimSpace(sku)),
	})
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}
