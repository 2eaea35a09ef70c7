package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/billing"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared"
	"github.com/baovietz98/smart-rental-capstone-sub001/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormInvoiceRepository_FindByCode(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoiceID := uuid.New()
		contractID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "code", "contract_id", "room_id", "tenant_id", "month", "line_items", "total", "paid_amount", "status"}).
			AddRow(invoiceID, 1, int64(50), contractID, uuid.New(), uuid.New(), "06-2025",
				`[{"type":"RENT","description":"Room rent","quantity":"1","unit_price":{"amount":"3000000","currency":"VND"},"amount":{"amount":"3000000","currency":"VND"}}]`,
				"3000000", "0", "UNPAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(50), 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByCode(context.Background(), 50)

		require.NoError(t, err)
		assert.Equal(t, int64(50), invoice.Code)
		assert.Equal(t, "HD50", invoice.Reference())
		assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
		require.Len(t, invoice.LineItems, 1)
		assert.True(t, invoice.Total.Equals(valueobject.NewMoneyVNDFromInt(3000000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown code", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(999), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByCode(context.Background(), 999)

		assert.Nil(t, invoice)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_NextCode(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(db)

	mock.ExpectQuery(`SELECT nextval\('invoice_code_seq'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(51)))

	code, err := repo.NextCode(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(51), code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_SaveWithLock_Conflict(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormInvoiceRepository(db)

	month, err := valueobject.ParseBillingMonth("06-2025")
	require.NoError(t, err)
	invoice, err := billing.NewInvoice(uuid.New(), uuid.New(), uuid.New(), month, billing.LineItems{{
		Type:        billing.LineItemTypeRent,
		Description: "Room rent",
		UnitPrice:   valueobject.NewMoneyVNDFromInt(3000000),
		Amount:      valueobject.NewMoneyVNDFromInt(3000000),
	}})
	require.NoError(t, err)
	invoice.Code = 50
	require.NoError(t, invoice.Issue(nil)) // bumps version to 2

	// no rows match the stale version, a concurrent writer got there first.
	// Model() adds its own primary-key condition after the version guard.
	mock.ExpectExec(`UPDATE "invoices" SET .* WHERE \(id = \$\d+ AND version = \$\d+\) AND "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), invoice)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
