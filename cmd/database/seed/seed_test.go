package seed

import (
	"context"
	"testing"
	"time"

	"bloodbank/domain"
	"bloodbank/internal/testutil/inmem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSeeder(store *inmem.Store) *Seeder {
	return &Seeder{
		Users:      store,
		Banks:      store,
		Donors:     store,
		Donations:  store,
		Requests:   store,
		Transactor: store,
		Now:        func() time.Time { return time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC) },
		HashCost:   bcrypt.MinCost,
	}
}

func TestSeederCreatesSampleData(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()

	require.NoError(t, newSeeder(store).Run(ctx))

	admin, err := store.GetUserByUsername(ctx, AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(AdminPassword)))

	banks, err := store.ListBanks(ctx, true)
	require.NoError(t, err)
	assert.Len(t, banks, 3)

	inventory, err := store.ListInventory(ctx, false)
	require.NoError(t, err)
	assert.Len(t, inventory, 3*len(domain.BloodGroups))
	for _, item := range inventory {
		assert.Equal(t, 25.0, item.UnitsAvailable)
	}

	profiles, err := store.ListProfiles(ctx, domain.DonorListFilter{})
	require.NoError(t, err)
	assert.Len(t, profiles, 5)

	emma, err := store.GetUserByUsername(ctx, "emma_brown")
	require.NoError(t, err)
	profile, found, err := store.GetProfileByUserID(ctx, emma.ID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, profile.IsAvailable)
	require.NotNil(t, profile.LastDonationDate)
	assert.Equal(t, "2024-05-16", profile.LastDonationDate.Format(domain.DateLayout))

	donations, err := store.ListDonationsByDonor(ctx, profile.ID.String(), 0)
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, domain.DonationStatusApproved, donations[0].Status)

	requests, err := store.ListRequests(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, samplePatientName, requests[0].PatientName)
	assert.Equal(t, "2024-06-17", requests[0].RequiredByDate.Format(domain.DateLayout))
}

func TestSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()
	seeder := newSeeder(store)

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Run(ctx))

	banks, err := store.ListBanks(ctx, false)
	require.NoError(t, err)
	assert.Len(t, banks, 3)

	inventory, err := store.ListInventory(ctx, false)
	require.NoError(t, err)
	assert.Len(t, inventory, 24)

	profiles, err := store.ListProfiles(ctx, domain.DonorListFilter{})
	require.NoError(t, err)
	assert.Len(t, profiles, 5)

	requests, err := store.ListRequests(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestSeederRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := inmem.New()
	store.FailNext("CreateRequest", assert.AnError)

	require.ErrorIs(t, newSeeder(store).Run(ctx), assert.AnError)

	_, err := store.GetUserByUsername(ctx, AdminUsername)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, store.Rollbacks)
}
