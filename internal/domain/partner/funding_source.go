package partner

import (
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// FundingSource represents a budget or account purchases are charged against
type FundingSource struct {
	shared.BaseAggregateRoot
	Name   string `gorm:"type:varchar(200);not null"`
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (FundingSource) TableName() string {
	return "funding_sources"
}

// NewFundingSource creates a new active funding source
func NewFundingSource(name, code string) (*FundingSource, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_FUNDING_SOURCE", "Funding source name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_FUNDING_SOURCE", "Funding source code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_FUNDING_SOURCE", "Funding source code cannot exceed 50 characters")
	}

	return &FundingSource{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Active:            true,
	}, nil
}

// Deactivate marks the funding source as no longer usable for new requests
func (f *FundingSource) Deactivate() {
	f.Active = false
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}
