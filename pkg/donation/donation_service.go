package donation

import (
	"context"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/metrics"
	"bloodbank/pkg/access"
	"bloodbank/pkg/bloodbank"
	"bloodbank/pkg/donor"
	"bloodbank/pkg/notification"
	"bloodbank/pkg/transaction"

	"github.com/go-playground/validator/v10"
)

type (
	DonationService interface {
		SubmitDonation(ctx context.Context, p domain.Principal, req domain.SubmitDonationRequest) (domain.Donation, error)
		ListMyDonations(ctx context.Context, p domain.Principal) ([]domain.Donation, error)
		ListPendingDonations(ctx context.Context, p domain.Principal) ([]domain.Donation, error)
		ApproveDonation(ctx context.Context, p domain.Principal, id string) (domain.Donation, error)
		RejectDonation(ctx context.Context, p domain.Principal, id string, req domain.RejectDonationRequest) (domain.Donation, error)
	}

	donationService struct {
		donationRepository  DonationRepository
		donorRepository     donor.DonorRepository
		bloodBankRepository bloodbank.BloodBankRepository
		transactor          transaction.Transactor
		validate            *validator.Validate
		notifier            notification.Notifier
		metrics             *metrics.Metrics
		now                 func() time.Time
	}
)

func NewDonationService(
	donationRepository DonationRepository,
	donorRepository donor.DonorRepository,
	bloodBankRepository bloodbank.BloodBankRepository,
	transactor transaction.Transactor,
	validate *validator.Validate,
	notifier notification.Notifier,
	m *metrics.Metrics,
) DonationService {
	return &donationService{
		donationRepository:  donationRepository,
		donorRepository:     donorRepository,
		bloodBankRepository: bloodBankRepository,
		transactor:          transactor,
		validate:            validate,
		notifier:            notifier,
		metrics:             m,
		now:                 time.Now,
	}
}

func (s *donationService) SubmitDonation(ctx context.Context, p domain.Principal, req domain.SubmitDonationRequest) (domain.Donation, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.Donation{}, err
	}

	var created entities.DonationHistory
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		profile, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrDonorProfileNotFound
		}

		if err := s.validate.Struct(req); err != nil {
			return domain.NewValidationError(err)
		}
		if req.Units <= 0 {
			return domain.ErrInvalidDonationUnits
		}
		donationDate, err := domain.ParseDate(req.DonationDate)
		if err != nil {
			return err
		}

		donation := entities.DonationHistory{
			DonorID:      profile.ID,
			DonationDate: donationDate,
			Units:        req.Units,
			Status:       domain.DonationStatusPending,
			Notes:        strings.TrimSpace(req.Notes),
		}

		if req.BloodBankID != "" {
			bank, err := s.bloodBankRepository.GetBankByID(ctx, req.BloodBankID)
			if err != nil {
				return err
			}
			if !bank.IsActive {
				return domain.ErrBloodBankNotFound
			}
			donation.BloodBankID = &bank.ID
			donation.BloodBank = &bank
		}

		bank := donation.BloodBank
		created, err = s.donationRepository.CreateDonation(ctx, donation)
		if err != nil {
			return err
		}
		created.Donor = &profile
		created.BloodBank = bank
		return nil
	})
	if err != nil {
		return domain.Donation{}, err
	}

	s.metrics.IncDonationSubmitted()
	return ToDonation(created), nil
}

func (s *donationService) ListMyDonations(ctx context.Context, p domain.Principal) ([]domain.Donation, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return nil, err
	}

	profile, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrDonorProfileNotFound
	}

	donations, err := s.donationRepository.ListDonationsByDonor(ctx, profile.ID.String(), 0)
	if err != nil {
		return nil, err
	}
	for i := range donations {
		donations[i].Donor = &profile
	}
	return ToDonations(donations), nil
}

func (s *donationService) ListPendingDonations(ctx context.Context, p domain.Principal) ([]domain.Donation, error) {
	return access.Guard(p, access.Admin, func() ([]domain.Donation, error) {
		donations, err := s.donationRepository.ListDonationsByStatus(ctx, domain.DonationStatusPending, 0)
		if err != nil {
			return nil, err
		}
		return ToDonations(donations), nil
	})
}

// ApproveDonation marks a pending donation approved and copies its date onto
// the donor's last_donation_date in the same transaction.
func (s *donationService) ApproveDonation(ctx context.Context, p domain.Principal, id string) (domain.Donation, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.Donation{}, err
	}

	approved, err := s.decide(ctx, p, id,
		func(donation *entities.DonationHistory) {
			donation.Status = domain.DonationStatusApproved
		},
		func(ctx context.Context, donation entities.DonationHistory) error {
			return s.donorRepository.SetLastDonationDate(ctx, donation.DonorID.String(), donation.DonationDate)
		},
	)
	if err != nil {
		return domain.Donation{}, err
	}

	if approved.Donor != nil {
		date := approved.DonationDate
		approved.Donor.LastDonationDate = &date
	}
	s.metrics.IncDonationDecided(domain.DonationStatusApproved)
	s.notifier.Notify(ctx, notification.DonationApproved(donorEmail(approved), approved.DonationDate))
	return ToDonation(approved), nil
}

func (s *donationService) RejectDonation(ctx context.Context, p domain.Principal, id string, req domain.RejectDonationRequest) (domain.Donation, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.Donation{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	rejected, err := s.decide(ctx, p, id, func(donation *entities.DonationHistory) {
		donation.Status = domain.DonationStatusRejected
		donation.Notes = reason
	}, nil)
	if err != nil {
		return domain.Donation{}, err
	}

	s.metrics.IncDonationDecided(domain.DonationStatusRejected)
	s.notifier.Notify(ctx, notification.DonationRejected(donorEmail(rejected), rejected.DonationDate, rejected.Notes))
	return ToDonation(rejected), nil
}

// decide loads a pending donation, applies mutate, stores the decision stamped
// with the deciding admin and then runs after. Everything shares one transaction.
func (s *donationService) decide(
	ctx context.Context,
	p domain.Principal,
	id string,
	mutate func(donation *entities.DonationHistory),
	after func(ctx context.Context, donation entities.DonationHistory) error,
) (entities.DonationHistory, error) {
	if _, err := domain.ParseID(id); err != nil {
		return entities.DonationHistory{}, err
	}
	adminID, err := domain.ParseID(p.UserID)
	if err != nil {
		return entities.DonationHistory{}, err
	}

	var decided entities.DonationHistory
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		donation, err := s.donationRepository.GetDonationByID(ctx, id)
		if err != nil {
			return err
		}
		if donation.Status != domain.DonationStatusPending {
			return domain.ErrDonationAlreadyDecided
		}

		mutate(&donation)
		donation.ApprovedByID = &adminID
		donation.UpdatedAt = s.now()
		if err := s.donationRepository.UpdateDecision(ctx, donation); err != nil {
			return err
		}
		if after != nil {
			if err := after(ctx, donation); err != nil {
				return err
			}
		}

		decided = donation
		return nil
	})
	return decided, err
}

func donorEmail(donation entities.DonationHistory) string {
	if donation.Donor == nil || donation.Donor.User == nil {
		return ""
	}
	return donation.Donor.User.Email
}

func ToDonation(donation entities.DonationHistory) domain.Donation {
	result := domain.Donation{
		ID:           donation.ID.String(),
		DonorID:      donation.DonorID.String(),
		DonationDate: donation.DonationDate,
		Units:        donation.Units,
		Status:       donation.Status,
		Notes:        donation.Notes,
		CreatedAt:    donation.CreatedAt,
		UpdatedAt:    donation.UpdatedAt,
	}
	if donation.BloodBankID != nil {
		id := donation.BloodBankID.String()
		result.BloodBankID = &id
	}
	if donation.BloodBank != nil {
		result.BloodBankName = donation.BloodBank.Name
	}
	if donation.ApprovedByID != nil {
		id := donation.ApprovedByID.String()
		result.ApprovedByID = &id
	}
	if donation.Donor != nil {
		result.BloodGroup = donation.Donor.BloodGroup
		if donation.Donor.User != nil {
			result.DonorName = donation.Donor.User.FullName()
		}
	}
	return result
}

func ToDonations(donations []entities.DonationHistory) []domain.Donation {
	result := make([]domain.Donation, 0, len(donations))
	for _, donation := range donations {
		result = append(result, ToDonation(donation))
	}
	return result
}
