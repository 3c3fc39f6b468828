package bloodrequest

import (
	"context"
	"testing"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/testutil/sqlmockdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryListRequestsScopedToRequester(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodRequestRepository(db)
	requester := uuid.New()
	requestID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "blood_requests" WHERE requester_id = \$1 ORDER BY requested_date DESC,id`).
		WithArgs(requester.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "requester_id", "patient_name", "blood_group", "status"}).
			AddRow(requestID.String(), requester.String(), "Jane Doe", "A+", domain.RequestStatusPending))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(requester.String(), "john_doe"))

	requests, err := repo.ListRequests(context.Background(), requester.String(), 0)

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, requestID, requests[0].ID)
	assert.Equal(t, requester, requests[0].RequesterID)
	require.NotNil(t, requests[0].Requester)
	assert.Equal(t, "john_doe", requests[0].Requester.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListAllRequests(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodRequestRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "blood_requests" ORDER BY requested_date DESC,id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	requests, err := repo.ListRequests(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Empty(t, requests)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateStatusMissingRequest(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodRequestRepository(db)

	mock.ExpectExec(`UPDATE "blood_requests" SET "approved_by_id"=\$1,"approved_date"=\$2,"notes"=\$3,"rejection_reason"=\$4,"status"=\$5`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), entities.BloodRequest{ID: uuid.New(), Status: domain.RequestStatusFulfilled})

	require.ErrorIs(t, err, domain.ErrBloodRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteRequest(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodRequestRepository(db)
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "blood_requests" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "blood_requests" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteRequest(context.Background(), id))
	require.ErrorIs(t, repo.DeleteRequest(context.Background(), id), domain.ErrBloodRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetRequestByIDNotFound(t *testing.T) {
	db, mock := sqlmockdb.New(t)
	repo := NewBloodRequestRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "blood_requests" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetRequestByID(context.Background(), uuid.NewString())

	require.ErrorIs(t, err, domain.ErrBloodRequestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
