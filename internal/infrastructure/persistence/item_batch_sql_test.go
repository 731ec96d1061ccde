package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockItemBatchRepository creates a GormItemBatchRepository with a mocked SQL connection
func newMockItemBatchRepository(t *testing.T) (*GormItemBatchRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormItemBatchRepository(gormDB), mock, mockDB
}

// TestDeductQuantity_SQLGuard verifies the decrement carries its sufficiency
// check in the same statement. Two concurrent deductions can then never both
// succeed against the same stock.
func TestDeductQuantity_SQLGuard(t *testing.T) {
	t.Run("guard is part of the UPDATE statement", func(t *testing.T) {
		repo, mock, mockDB := newMockItemBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()

		mock.ExpectExec(`UPDATE "item_batches" SET "quantity"=quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
			WithArgs(int64(7), batchID, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeductQuantity(context.Background(), batchID, 7)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows with existing batch maps to insufficient stock", func(t *testing.T) {
		repo, mock, mockDB := newMockItemBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()

		mock.ExpectExec(`UPDATE "item_batches" SET "quantity"=quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
			WithArgs(int64(7), batchID, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "item_batches" WHERE id = \$1`).
			WithArgs(batchID).
			WillReturnRows(rows)

		err := repo.DeductQuantity(context.Background(), batchID, 7)

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows with missing batch maps to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockItemBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()

		mock.ExpectExec(`UPDATE "item_batches" SET "quantity"=quantity - \$1 WHERE id = \$2 AND quantity >= \$3`).
			WithArgs(int64(7), batchID, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"count"}).AddRow(0)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "item_batches" WHERE id = \$1`).
			WithArgs(batchID).
			WillReturnRows(rows)

		err := repo.DeductQuantity(context.Background(), batchID, 7)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddQuantity_SQL(t *testing.T) {
	t.Run("increments in a single UPDATE", func(t *testing.T) {
		repo, mock, mockDB := newMockItemBatchRepository(t)
		defer mockDB.Close()

		batchID := uuid.New()

		mock.ExpectExec(`UPDATE "item_batches" SET "quantity"=quantity \+ \$1 WHERE id = \$2`).
			WithArgs(int64(5), batchID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AddQuantity(context.Background(), batchID, 5)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
