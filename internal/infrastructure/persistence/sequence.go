package persistence

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Document number prefixes and pad widths
const (
	QuoteRequestNumberPrefix = "QR"
	QuoteRequestNumberWidth  = 3

	PurchaseOrderNumberPrefix = "PO"
	PurchaseOrderNumberWidth  = 4
)

// NextDocumentNumber allocates the next document number for the given
// prefix in the current year, formatted as PREFIX-YYYY-NNN. The counter
// row is upserted atomically, so concurrent allocations on separate
// connections never yield the same number. Callers must pass the
// transaction that also persists the consuming document, so a number is
// never burned without its document.
func NextDocumentNumber(tx *gorm.DB, prefix string, width int) (string, error) {
	year := time.Now().Year()

	var lastNumber int64
	err := tx.Raw(`
		INSERT INTO document_sequences (prefix, year, last_number)
		VALUES (?, ?, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`,
		prefix, year).Scan(&lastNumber).Error
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", prefix, err)
	}

	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, lastNumber), nil
}
