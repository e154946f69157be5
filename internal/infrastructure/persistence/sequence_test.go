package persistence

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sequenceUpsertPattern = `(?s)INSERT INTO document_sequences.*ON CONFLICT \(prefix, year\).*RETURNING last_number`

func TestNextDocumentNumber(t *testing.T) {
	year := time.Now().Year()

	t.Run("formats the first quote request number", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(sequenceUpsertPattern).
			WithArgs(QuoteRequestNumberPrefix, year).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(1))

		number, err := NextDocumentNumber(gormDB, QuoteRequestNumberPrefix, QuoteRequestNumberWidth)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("QR-%d-001", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pads purchase order numbers to four digits", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(sequenceUpsertPattern).
			WithArgs(PurchaseOrderNumberPrefix, year).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(42))

		number, err := NextDocumentNumber(gormDB, PurchaseOrderNumberPrefix, PurchaseOrderNumberWidth)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%d-0042", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("grows past the pad width without truncating", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(sequenceUpsertPattern).
			WithArgs(QuoteRequestNumberPrefix, year).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(1234))

		number, err := NextDocumentNumber(gormDB, QuoteRequestNumberPrefix, QuoteRequestNumberWidth)

		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("QR-%d-1234", year), number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps allocation failures", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectQuery(sequenceUpsertPattern).
			WithArgs(QuoteRequestNumberPrefix, year).
			WillReturnError(assert.AnError)

		number, err := NextDocumentNumber(gormDB, QuoteRequestNumberPrefix, QuoteRequestNumberWidth)

		assert.Empty(t, number)
		assert.ErrorContains(t, err, "QR")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
