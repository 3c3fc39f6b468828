package bloodbank

import (
	"context"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/metrics"
	"bloodbank/pkg/access"
	"bloodbank/pkg/transaction"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type (
	BloodBankService interface {
		CreateBank(ctx context.Context, p domain.Principal, req domain.BloodBankRequest) (domain.BloodBank, error)
		UpdateBank(ctx context.Context, p domain.Principal, id string, req domain.BloodBankRequest) (domain.BloodBank, error)
		DeleteBank(ctx context.Context, p domain.Principal, id string) error
		GetBank(ctx context.Context, p domain.Principal, id string) (domain.BloodBank, error)
		ListBanks(ctx context.Context, p domain.Principal) ([]domain.BloodBank, error)

		CreateInventory(ctx context.Context, p domain.Principal, req domain.BloodInventoryRequest) (domain.BloodInventory, error)
		UpdateInventory(ctx context.Context, p domain.Principal, id string, req domain.BloodInventoryRequest) (domain.BloodInventory, error)
		GetInventory(ctx context.Context, p domain.Principal, id string) (domain.BloodInventory, error)
		ListInventory(ctx context.Context, p domain.Principal) ([]domain.BloodInventory, error)
	}

	bloodBankService struct {
		bloodBankRepository BloodBankRepository
		transactor          transaction.Transactor
		validate            *validator.Validate
		metrics             *metrics.Metrics
		now                 func() time.Time
	}
)

func NewBloodBankService(
	bloodBankRepository BloodBankRepository,
	transactor transaction.Transactor,
	validate *validator.Validate,
	m *metrics.Metrics,
) BloodBankService {
	return &bloodBankService{
		bloodBankRepository: bloodBankRepository,
		transactor:          transactor,
		validate:            validate,
		metrics:             m,
		now:                 time.Now,
	}
}

func (s *bloodBankService) CreateBank(ctx context.Context, p domain.Principal, req domain.BloodBankRequest) (domain.BloodBank, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.BloodBank{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.BloodBank{}, domain.NewValidationError(err)
	}

	bank := entities.BloodBank{IsActive: true}
	applyBankRequest(&bank, req)

	created, err := s.bloodBankRepository.CreateBank(ctx, bank)
	if err != nil {
		return domain.BloodBank{}, err
	}
	return ToBloodBank(created), nil
}

func (s *bloodBankService) UpdateBank(ctx context.Context, p domain.Principal, id string, req domain.BloodBankRequest) (domain.BloodBank, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.BloodBank{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodBank{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.BloodBank{}, domain.NewValidationError(err)
	}

	var updated entities.BloodBank
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		bank, err := s.bloodBankRepository.GetBankByID(ctx, id)
		if err != nil {
			return err
		}
		applyBankRequest(&bank, req)
		bank.UpdatedAt = s.now()

		updated, err = s.bloodBankRepository.UpdateBank(ctx, bank)
		return err
	})
	if err != nil {
		return domain.BloodBank{}, err
	}
	return ToBloodBank(updated), nil
}

func (s *bloodBankService) DeleteBank(ctx context.Context, p domain.Principal, id string) error {
	if err := access.Check(p, access.Admin); err != nil {
		return err
	}
	if _, err := domain.ParseID(id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.bloodBankRepository.DeleteBank(ctx, id)
	})
}

func (s *bloodBankService) GetBank(ctx context.Context, p domain.Principal, id string) (domain.BloodBank, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return domain.BloodBank{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodBank{}, err
	}

	bank, err := s.bloodBankRepository.GetBankByID(ctx, id)
	if err != nil {
		return domain.BloodBank{}, err
	}
	if !bank.IsActive && !p.IsAdmin() {
		return domain.BloodBank{}, domain.ErrBloodBankNotFound
	}
	return ToBloodBank(bank), nil
}

func (s *bloodBankService) ListBanks(ctx context.Context, p domain.Principal) ([]domain.BloodBank, error) {
	return access.Guard(p, access.Authenticated, func() ([]domain.BloodBank, error) {
		banks, err := s.bloodBankRepository.ListBanks(ctx, !p.IsAdmin())
		if err != nil {
			return nil, err
		}

		result := make([]domain.BloodBank, 0, len(banks))
		for _, bank := range banks {
			result = append(result, ToBloodBank(bank))
		}
		return result, nil
	})
}

func (s *bloodBankService) CreateInventory(ctx context.Context, p domain.Principal, req domain.BloodInventoryRequest) (domain.BloodInventory, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.BloodInventory{}, err
	}
	bankID, err := s.validateInventory(req)
	if err != nil {
		return domain.BloodInventory{}, err
	}

	var created entities.BloodInventory
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		bank, err := s.bloodBankRepository.GetBankByID(ctx, req.BloodBankID)
		if err != nil {
			return err
		}

		_, found, err := s.bloodBankRepository.FindInventory(ctx, req.BloodBankID, req.BloodGroup)
		if err != nil {
			return err
		}
		if found {
			return domain.ErrInventoryExists
		}

		created, err = s.bloodBankRepository.CreateInventory(ctx, entities.BloodInventory{
			BloodBankID:    bankID,
			BloodGroup:     req.BloodGroup,
			UnitsAvailable: req.UnitsAvailable,
			LastUpdated:    s.now(),
		})
		if err != nil {
			return err
		}
		created.BloodBank = &bank
		return nil
	})
	if err != nil {
		return domain.BloodInventory{}, err
	}

	s.metrics.SetInventoryUnits(created.BloodBankID.String(), created.BloodGroup, created.UnitsAvailable)
	return ToBloodInventory(created), nil
}

func (s *bloodBankService) UpdateInventory(ctx context.Context, p domain.Principal, id string, req domain.BloodInventoryRequest) (domain.BloodInventory, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.BloodInventory{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodInventory{}, err
	}
	bankID, err := s.validateInventory(req)
	if err != nil {
		return domain.BloodInventory{}, err
	}

	var updated entities.BloodInventory
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		inventory, err := s.bloodBankRepository.GetInventoryByID(ctx, id)
		if err != nil {
			return err
		}

		bank, err := s.bloodBankRepository.GetBankByID(ctx, req.BloodBankID)
		if err != nil {
			return err
		}

		if inventory.BloodBankID != bankID || inventory.BloodGroup != req.BloodGroup {
			other, found, err := s.bloodBankRepository.FindInventory(ctx, req.BloodBankID, req.BloodGroup)
			if err != nil {
				return err
			}
			if found && other.ID != inventory.ID {
				return domain.ErrInventoryExists
			}
		}

		inventory.BloodBankID = bankID
		inventory.BloodGroup = req.BloodGroup
		inventory.UnitsAvailable = req.UnitsAvailable
		inventory.LastUpdated = s.now()

		updated, err = s.bloodBankRepository.UpdateInventory(ctx, inventory)
		if err != nil {
			return err
		}
		updated.BloodBank = &bank
		return nil
	})
	if err != nil {
		return domain.BloodInventory{}, err
	}

	s.metrics.SetInventoryUnits(updated.BloodBankID.String(), updated.BloodGroup, updated.UnitsAvailable)
	return ToBloodInventory(updated), nil
}

func (s *bloodBankService) GetInventory(ctx context.Context, p domain.Principal, id string) (domain.BloodInventory, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return domain.BloodInventory{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodInventory{}, err
	}

	inventory, err := s.bloodBankRepository.GetInventoryByID(ctx, id)
	if err != nil {
		return domain.BloodInventory{}, err
	}
	if !p.IsAdmin() && (inventory.BloodBank == nil || !inventory.BloodBank.IsActive) {
		return domain.BloodInventory{}, domain.ErrInventoryNotFound
	}
	return ToBloodInventory(inventory), nil
}

func (s *bloodBankService) ListInventory(ctx context.Context, p domain.Principal) ([]domain.BloodInventory, error) {
	return access.Guard(p, access.Authenticated, func() ([]domain.BloodInventory, error) {
		inventory, err := s.bloodBankRepository.ListInventory(ctx, !p.IsAdmin())
		if err != nil {
			return nil, err
		}

		result := make([]domain.BloodInventory, 0, len(inventory))
		for _, item := range inventory {
			result = append(result, ToBloodInventory(item))
		}
		return result, nil
	})
}

func (s *bloodBankService) validateInventory(req domain.BloodInventoryRequest) (uuid.UUID, error) {
	if err := s.validate.Struct(req); err != nil {
		return uuid.Nil, domain.NewValidationError(err)
	}
	if req.UnitsAvailable < 0 {
		return uuid.Nil, domain.ErrInvalidUnitsAmount
	}
	return domain.ParseID(req.BloodBankID)
}

func applyBankRequest(bank *entities.BloodBank, req domain.BloodBankRequest) {
	bank.Name = strings.TrimSpace(req.Name)
	bank.Address = strings.TrimSpace(req.Address)
	bank.City = strings.TrimSpace(req.City)
	bank.State = strings.TrimSpace(req.State)
	bank.ZipCode = strings.TrimSpace(req.ZipCode)
	bank.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	bank.Email = strings.TrimSpace(req.Email)
	if req.IsActive != nil {
		bank.IsActive = *req.IsActive
	}
}

func ToBloodBank(bank entities.BloodBank) domain.BloodBank {
	return domain.BloodBank{
		ID:          bank.ID.String(),
		Name:        bank.Name,
		Address:     bank.Address,
		City:        bank.City,
		State:       bank.State,
		ZipCode:     bank.ZipCode,
		PhoneNumber: bank.PhoneNumber,
		Email:       bank.Email,
		IsActive:    bank.IsActive,
		CreatedAt:   bank.CreatedAt,
		UpdatedAt:   bank.UpdatedAt,
	}
}

func ToBloodInventory(inventory entities.BloodInventory) domain.BloodInventory {
	result := domain.BloodInventory{
		ID:             inventory.ID.String(),
		BloodBankID:    inventory.BloodBankID.String(),
		BloodGroup:     inventory.BloodGroup,
		UnitsAvailable: inventory.UnitsAvailable,
		LastUpdated:    inventory.LastUpdated,
	}
	if inventory.BloodBank != nil {
		result.BloodBankName = inventory.BloodBank.Name
	}
	return result
}
