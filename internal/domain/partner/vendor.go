package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor represents a supplier that can be asked for quotes
// It is the aggregate root for vendor-related operations
type Vendor struct {
	shared.BaseAggregateRoot
	Name        string       `gorm:"type:varchar(200);not null"`
	ContactName string       `gorm:"type:varchar(100)"`
	Email       string       `gorm:"type:varchar(200);index"`
	Phone       string       `gorm:"type:varchar(50)"`
	Status      VendorStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new active vendor
func NewVendor(name string) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}

	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Status:            VendorStatusActive,
	}, nil
}

// Update updates the vendor's basic information
func (v *Vendor) Update(name, contactName, email, phone string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}
	if email != "" {
		if err := validateVendorEmail(email); err != nil {
			return err
		}
	}
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}

	v.Name = strings.TrimSpace(name)
	v.ContactName = strings.TrimSpace(contactName)
	v.Email = strings.ToLower(strings.TrimSpace(email))
	v.Phone = strings.TrimSpace(phone)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Deactivate marks the vendor as inactive
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Vendor is already inactive")
	}

	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

func validateVendorName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_VENDOR_NAME", "Vendor name cannot exceed 200 characters")
	}
	return nil
}

func validateVendorEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
