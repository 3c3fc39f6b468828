package bloodbank

import (
	"context"
	"testing"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/testutil/sqlmockdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryGetBankByIDNotFound(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "blood_banks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.GetBankByID(context.Background(), uuid.NewString())

	require.ErrorIs(t, err, domain.ErrBloodBankNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListActiveBanks(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "blood_banks" WHERE is_active = \$1 ORDER BY name`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "is_active"}).
			AddRow(id.String(), "Dhaka Medical College Blood Bank", "Dhaka", true))

	banks, err := repo.ListBanks(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, id, banks[0].ID)
	assert.Equal(t, "Dhaka", banks[0].City)
	assert.True(t, banks[0].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateMissingBank(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectExec(`UPDATE "blood_banks" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateBank(context.Background(), entities.BloodBank{ID: uuid.New(), Name: "Gone"})

	require.ErrorIs(t, err, domain.ErrBloodBankNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteBankClearsReferences(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)
	id := uuid.NewString()

	mock.ExpectExec(`UPDATE "donation_history" SET "blood_bank_id"`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "blood_inventory" WHERE blood_bank_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(`DELETE FROM "blood_banks" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteBank(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteMissingBank(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectExec(`UPDATE "donation_history"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "blood_inventory"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "blood_banks"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBank(context.Background(), uuid.NewString())

	require.ErrorIs(t, err, domain.ErrBloodBankNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateInventoryDuplicate(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectQuery(`INSERT INTO "blood_inventory"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.CreateInventory(context.Background(), entities.BloodInventory{
		BloodBankID:    uuid.New(),
		BloodGroup:     "O-",
		UnitsAvailable: 4,
	})

	require.ErrorIs(t, err, domain.ErrInventoryExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindInventoryMissing(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "blood_inventory" WHERE blood_bank_id = \$1 AND blood_group = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, found, err := repo.FindInventory(context.Background(), uuid.NewString(), "A+")

	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}
