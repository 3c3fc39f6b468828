package donor

import (
	"context"
	"testing"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/testutil/sqlmockdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreateProfileDuplicateUser(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewDonorRepository(db)

	mock.ExpectQuery(`INSERT INTO "donor_profiles"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.CreateProfile(context.Background(), entities.DonorProfile{
		UserID:      uuid.New(),
		BloodGroup:  "A+",
		DateOfBirth: time.Date(1995, 5, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		Address:     "12 Green Road",
		City:        "Dhaka",
	})

	require.ErrorIs(t, err, domain.ErrDonorProfileExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySearchAvailableEscapesCity(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewDonorRepository(db)
	profileID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "donor_profiles" WHERE is_available = \$1 AND blood_group = \$2 AND city ILIKE \$3 ORDER BY created_at DESC,id`).
		WithArgs(true, "O-", `%dhaka\_50\%%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "blood_group", "city", "is_available"}).
			AddRow(profileID.String(), userID.String(), "O-", "Dhaka_50%", true))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(userID.String(), "alex_jones", "alex@example.com"))

	profiles, err := repo.SearchAvailable(context.Background(), domain.DonorSearchFilter{BloodGroup: "O-", City: "dhaka_50%"})

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, profileID, profiles[0].ID)
	require.NotNil(t, profiles[0].User)
	assert.Equal(t, "alex_jones", profiles[0].User.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySearchAvailableWithoutFilters(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewDonorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "donor_profiles" WHERE is_available = \$1 ORDER BY`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profiles, err := repo.SearchAvailable(context.Background(), domain.DonorSearchFilter{})

	require.NoError(t, err)
	assert.Empty(t, profiles)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetProfileByUserIDMissing(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewDonorRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "donor_profiles" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, found, err := repo.GetProfileByUserID(context.Background(), uuid.NewString())

	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetLastDonationDate(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewDonorRepository(db)
	id := uuid.NewString()
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "donor_profiles" SET "last_donation_date"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(date, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "donor_profiles" SET "last_donation_date"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetLastDonationDate(context.Background(), id, date))
	err := repo.SetLastDonationDate(context.Background(), uuid.NewString(), date)
	require.ErrorIs(t, err, domain.ErrDonorProfileNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
