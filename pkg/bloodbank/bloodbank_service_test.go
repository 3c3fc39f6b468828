package bloodbank

import (
	"context"
	"testing"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/testutil/inmem"
	"bloodbank/internal/utils"

	"github.com/stretchr/testify/suite"
)

type BloodBankServiceSuite struct {
	suite.Suite

	ctx     context.Context
	store   *inmem.Store
	service BloodBankService

	admin domain.Principal
	donor domain.Principal
}

func TestBloodBankServiceSuite(t *testing.T) {
	suite.Run(t, new(BloodBankServiceSuite))
}

func (s *BloodBankServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = inmem.New()
	s.service = NewBloodBankService(s.store, s.store, utils.NewValidator(), nil)
	s.service.(*bloodBankService).now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	admin := s.store.MustCreateUser("admin", domain.RoleAdmin)
	donor := s.store.MustCreateUser("john", domain.RoleDonor)
	s.admin = domain.Principal{UserID: admin.ID.String(), Role: domain.RoleAdmin}
	s.donor = domain.Principal{UserID: donor.ID.String(), Role: domain.RoleDonor}
}

func bankRequest(name string, active bool) domain.BloodBankRequest {
	return domain.BloodBankRequest{
		Name:        name,
		Address:     "123 Main St",
		City:        "Dhaka",
		PhoneNumber: "01700000000",
		Email:       "info@citybank.org",
		IsActive:    &active,
	}
}

func (s *BloodBankServiceSuite) mustBank(name string, active bool) domain.BloodBank {
	bank, err := s.service.CreateBank(s.ctx, s.admin, bankRequest(name, active))
	s.Require().NoError(err)
	return bank
}

func (s *BloodBankServiceSuite) mustInventory(bankID, group string, units float64) domain.BloodInventory {
	inventory, err := s.service.CreateInventory(s.ctx, s.admin, domain.BloodInventoryRequest{
		BloodBankID:    bankID,
		BloodGroup:     group,
		UnitsAvailable: units,
	})
	s.Require().NoError(err)
	return inventory
}

func (s *BloodBankServiceSuite) TestCreateBank() {
	req := bankRequest("  City Blood Bank ", true)
	req.IsActive = nil

	bank, err := s.service.CreateBank(s.ctx, s.admin, req)
	s.Require().NoError(err)
	s.Equal("City Blood Bank", bank.Name)
	s.True(bank.IsActive)
	s.NotEmpty(bank.ID)
}

func (s *BloodBankServiceSuite) TestCreateBankByDonorIsDenied() {
	_, err := s.service.CreateBank(s.ctx, s.donor, bankRequest("City Blood Bank", true))
	s.ErrorIs(err, domain.ErrPermissionDenied)

	banks, err := s.store.ListBanks(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(banks)
}

func (s *BloodBankServiceSuite) TestCreateBankValidation() {
	req := bankRequest("City Blood Bank", true)
	req.Email = "not-an-email"

	_, err := s.service.CreateBank(s.ctx, s.admin, req)
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *BloodBankServiceSuite) TestUpdateBank() {
	bank := s.mustBank("City Blood Bank", true)

	req := bankRequest("Central Blood Bank", false)
	updated, err := s.service.UpdateBank(s.ctx, s.admin, bank.ID, req)
	s.Require().NoError(err)
	s.Equal("Central Blood Bank", updated.Name)
	s.False(updated.IsActive)

	_, err = s.service.UpdateBank(s.ctx, s.admin, "00000000-0000-0000-0000-000000000001", req)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.service.UpdateBank(s.ctx, s.admin, "abc", req)
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *BloodBankServiceSuite) TestDonorSeesOnlyActiveBanks() {
	active := s.mustBank("Alpha Bank", true)
	inactive := s.mustBank("Beta Bank", false)

	banks, err := s.service.ListBanks(s.ctx, s.donor)
	s.Require().NoError(err)
	s.Require().Len(banks, 1)
	s.Equal(active.ID, banks[0].ID)

	banks, err = s.service.ListBanks(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Len(banks, 2)

	_, err = s.service.GetBank(s.ctx, s.donor, inactive.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	got, err := s.service.GetBank(s.ctx, s.admin, inactive.ID)
	s.Require().NoError(err)
	s.Equal("Beta Bank", got.Name)

	_, err = s.service.ListBanks(s.ctx, domain.Principal{})
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *BloodBankServiceSuite) TestCreateInventory() {
	bank := s.mustBank("City Blood Bank", true)

	inventory := s.mustInventory(bank.ID, "O-", 12.5)
	s.Equal(bank.ID, inventory.BloodBankID)
	s.Equal("City Blood Bank", inventory.BloodBankName)
	s.Equal(12.5, inventory.UnitsAvailable)
}

func (s *BloodBankServiceSuite) TestDuplicateInventoryIsConflict() {
	bank := s.mustBank("City Blood Bank", true)
	existing := s.mustInventory(bank.ID, "O-", 10)

	_, err := s.service.CreateInventory(s.ctx, s.admin, domain.BloodInventoryRequest{
		BloodBankID:    bank.ID,
		BloodGroup:     "O-",
		UnitsAvailable: 99,
	})
	s.ErrorIs(err, domain.ErrConflict)

	stored, err := s.service.GetInventory(s.ctx, s.admin, existing.ID)
	s.Require().NoError(err)
	s.Equal(10.0, stored.UnitsAvailable)
}

func (s *BloodBankServiceSuite) TestCreateInventoryRejects() {
	bank := s.mustBank("City Blood Bank", true)

	cases := map[string]struct {
		req  domain.BloodInventoryRequest
		kind error
	}{
		"negative units": {
			req:  domain.BloodInventoryRequest{BloodBankID: bank.ID, BloodGroup: "A+", UnitsAvailable: -1},
			kind: domain.ErrValidation,
		},
		"sub-cent units": {
			req:  domain.BloodInventoryRequest{BloodBankID: bank.ID, BloodGroup: "A+", UnitsAvailable: 0.004},
			kind: domain.ErrValidation,
		},
		"unknown blood group": {
			req:  domain.BloodInventoryRequest{BloodBankID: bank.ID, BloodGroup: "Q+", UnitsAvailable: 1},
			kind: domain.ErrValidation,
		},
		"unknown bank": {
			req:  domain.BloodInventoryRequest{BloodBankID: "00000000-0000-0000-0000-000000000001", BloodGroup: "A+", UnitsAvailable: 1},
			kind: domain.ErrNotFound,
		},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			_, err := s.service.CreateInventory(s.ctx, s.admin, tc.req)
			s.ErrorIs(err, tc.kind)
		})
	}

	_, err := s.service.CreateInventory(s.ctx, s.donor, domain.BloodInventoryRequest{BloodBankID: bank.ID, BloodGroup: "A+"})
	s.ErrorIs(err, domain.ErrPermissionDenied)
}

func (s *BloodBankServiceSuite) TestUpdateInventory() {
	bank := s.mustBank("City Blood Bank", true)
	first := s.mustInventory(bank.ID, "O-", 10)
	s.mustInventory(bank.ID, "A+", 4)

	updated, err := s.service.UpdateInventory(s.ctx, s.admin, first.ID, domain.BloodInventoryRequest{
		BloodBankID:    bank.ID,
		BloodGroup:     "O-",
		UnitsAvailable: 7.25,
	})
	s.Require().NoError(err)
	s.Equal(7.25, updated.UnitsAvailable)

	_, err = s.service.UpdateInventory(s.ctx, s.admin, first.ID, domain.BloodInventoryRequest{
		BloodBankID:    bank.ID,
		BloodGroup:     "A+",
		UnitsAvailable: 1,
	})
	s.ErrorIs(err, domain.ErrConflict)

	stored, err := s.service.GetInventory(s.ctx, s.admin, first.ID)
	s.Require().NoError(err)
	s.Equal("O-", stored.BloodGroup)
	s.Equal(7.25, stored.UnitsAvailable)
}

func (s *BloodBankServiceSuite) TestDonorSeesOnlyActiveInventory() {
	active := s.mustBank("Alpha Bank", true)
	inactive := s.mustBank("Beta Bank", false)
	s.mustInventory(active.ID, "B+", 3)
	hidden := s.mustInventory(inactive.ID, "B+", 8)

	items, err := s.service.ListInventory(s.ctx, s.donor)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Alpha Bank", items[0].BloodBankName)

	items, err = s.service.ListInventory(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Len(items, 2)

	_, err = s.service.GetInventory(s.ctx, s.donor, hidden.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *BloodBankServiceSuite) TestDeleteBankCascades() {
	bank := s.mustBank("City Blood Bank", true)
	inventory := s.mustInventory(bank.ID, "O+", 5)

	john := s.store.MustCreateUser("mike", domain.RoleDonor)
	profile, err := s.store.CreateProfile(s.ctx, entities.DonorProfile{
		UserID:      john.ID,
		BloodGroup:  "O+",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		Address:     "x",
		City:        "Dhaka",
		IsAvailable: true,
	})
	s.Require().NoError(err)
	bankID, err := domain.ParseID(bank.ID)
	s.Require().NoError(err)
	donation, err := s.store.CreateDonation(s.ctx, entities.DonationHistory{
		DonorID:      profile.ID,
		BloodBankID:  &bankID,
		DonationDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Units:        1,
	})
	s.Require().NoError(err)

	_, err = s.service.GetBank(s.ctx, s.admin, bank.ID)
	s.Require().NoError(err)

	s.ErrorIs(s.service.DeleteBank(s.ctx, s.donor, bank.ID), domain.ErrPermissionDenied)
	s.Require().NoError(s.service.DeleteBank(s.ctx, s.admin, bank.ID))

	_, err = s.service.GetBank(s.ctx, s.admin, bank.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	_, err = s.service.GetInventory(s.ctx, s.admin, inventory.ID)
	s.ErrorIs(err, domain.ErrNotFound)

	stored, err := s.store.GetDonationByID(s.ctx, donation.ID.String())
	s.Require().NoError(err)
	s.Nil(stored.BloodBankID)

	s.ErrorIs(s.service.DeleteBank(s.ctx, s.admin, bank.ID), domain.ErrNotFound)
}
