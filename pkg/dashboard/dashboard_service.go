package dashboard

import (
	"context"
	"time"

	"bloodbank/domain"
	"bloodbank/internal/metrics"
	"bloodbank/pkg/access"
	"bloodbank/pkg/bloodbank"
	"bloodbank/pkg/bloodrequest"
	"bloodbank/pkg/donation"
	"bloodbank/pkg/donor"
	"bloodbank/pkg/transaction"
)

type (
	DashboardService interface {
		AdminDashboard(ctx context.Context, p domain.Principal) (domain.AdminDashboard, error)
		DonorDashboard(ctx context.Context, p domain.Principal) (domain.DonorDashboard, error)
	}

	dashboardService struct {
		dashboardRepository    DashboardRepository
		donorRepository        donor.DonorRepository
		donationRepository     donation.DonationRepository
		bloodRequestRepository bloodrequest.BloodRequestRepository
		bloodBankRepository    bloodbank.BloodBankRepository
		transactor             transaction.Transactor
		metrics                *metrics.Metrics
	}
)

func NewDashboardService(
	dashboardRepository DashboardRepository,
	donorRepository donor.DonorRepository,
	donationRepository donation.DonationRepository,
	bloodRequestRepository bloodrequest.BloodRequestRepository,
	bloodBankRepository bloodbank.BloodBankRepository,
	transactor transaction.Transactor,
	m *metrics.Metrics,
) DashboardService {
	return &dashboardService{
		dashboardRepository:    dashboardRepository,
		donorRepository:        donorRepository,
		donationRepository:     donationRepository,
		bloodRequestRepository: bloodRequestRepository,
		bloodBankRepository:    bloodBankRepository,
		transactor:             transactor,
		metrics:                m,
	}
}

func (s *dashboardService) AdminDashboard(ctx context.Context, p domain.Principal) (domain.AdminDashboard, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.AdminDashboard{}, err
	}
	defer s.metrics.ObserveDashboard("admin", time.Now())

	var res domain.AdminDashboard
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if res.TotalDonors, err = s.dashboardRepository.CountDonors(ctx, false); err != nil {
			return err
		}
		if res.AvailableDonors, err = s.dashboardRepository.CountDonors(ctx, true); err != nil {
			return err
		}
		if res.ActiveBloodBanks, err = s.dashboardRepository.CountActiveBanks(ctx); err != nil {
			return err
		}
		if res.PendingRequests, err = s.dashboardRepository.CountRequestsByStatus(ctx, domain.RequestStatusPending); err != nil {
			return err
		}
		if res.PendingDonations, err = s.dashboardRepository.CountDonationsByStatus(ctx, domain.DonationStatusPending); err != nil {
			return err
		}
		if res.InventoryByGroup, err = s.dashboardRepository.InventoryTotals(ctx); err != nil {
			return err
		}
		if res.DonorsByBloodGroup, err = s.dashboardRepository.DonorsByBloodGroup(ctx); err != nil {
			return err
		}

		requests, err := s.bloodRequestRepository.ListRequests(ctx, "", domain.DashboardRecentLimit)
		if err != nil {
			return err
		}
		res.RecentRequests = bloodrequest.ToBloodRequests(requests)

		donations, err := s.donationRepository.ListDonationsByStatus(ctx, "", domain.DashboardRecentLimit)
		if err != nil {
			return err
		}
		res.RecentDonations = donation.ToDonations(donations)
		return nil
	})
	if err != nil {
		return domain.AdminDashboard{}, err
	}

	if res.InventoryByGroup == nil {
		res.InventoryByGroup = []domain.BloodGroupTotal{}
	}
	if res.DonorsByBloodGroup == nil {
		res.DonorsByBloodGroup = []domain.BloodGroupCount{}
	}
	return res, nil
}

func (s *dashboardService) DonorDashboard(ctx context.Context, p domain.Principal) (domain.DonorDashboard, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.DonorDashboard{}, err
	}
	defer s.metrics.ObserveDashboard("donor", time.Now())

	var res domain.DonorDashboard
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrDonorProfileNotFound
		}
		dto := donor.ToDonorProfile(profile)
		res.Profile = &dto

		donations, err := s.donationRepository.ListDonationsByDonor(ctx, profile.ID.String(), domain.DashboardRecentLimit)
		if err != nil {
			return err
		}
		for i := range donations {
			donations[i].Donor = &profile
		}
		res.Donations = donation.ToDonations(donations)

		if res.TotalDonations, err = s.dashboardRepository.CountDonationsByDonor(ctx, profile.ID.String()); err != nil {
			return err
		}

		requests, err := s.bloodRequestRepository.ListRequests(ctx, p.UserID, domain.DashboardRecentLimit)
		if err != nil {
			return err
		}
		res.MyRequests = bloodrequest.ToBloodRequests(requests)

		inventory, err := s.bloodBankRepository.ListInventory(ctx, true)
		if err != nil {
			return err
		}
		res.Inventory = make([]domain.BloodInventory, 0, len(inventory))
		for _, item := range inventory {
			res.Inventory = append(res.Inventory, bloodbank.ToBloodInventory(item))
		}
		return nil
	})
	if err != nil {
		return domain.DonorDashboard{}, err
	}
	return res, nil
}
