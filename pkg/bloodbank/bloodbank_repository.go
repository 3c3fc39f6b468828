package bloodbank

import (
	"context"
	"errors"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

var bankColumns = []string{
	"name", "address", "city", "state", "zip_code", "phone_number", "email", "is_active", "updated_at",
}

type (
	BloodBankRepository interface {
		CreateBank(ctx context.Context, bank entities.BloodBank) (entities.BloodBank, error)
		UpdateBank(ctx context.Context, bank entities.BloodBank) (entities.BloodBank, error)
		// DeleteBank removes the bank and its inventory and clears donation references to it.
		DeleteBank(ctx context.Context, id string) error
		GetBankByID(ctx context.Context, id string) (entities.BloodBank, error)
		ListBanks(ctx context.Context, activeOnly bool) ([]entities.BloodBank, error)

		CreateInventory(ctx context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error)
		UpdateInventory(ctx context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error)
		GetInventoryByID(ctx context.Context, id string) (entities.BloodInventory, error)
		FindInventory(ctx context.Context, bankID string, bloodGroup string) (entities.BloodInventory, bool, error)
		ListInventory(ctx context.Context, activeOnly bool) ([]entities.BloodInventory, error)
	}

	bloodBankRepository struct {
		db *gorm.DB
	}
)

func NewBloodBankRepository(db *gorm.DB) BloodBankRepository {
	return &bloodBankRepository{db: db}
}

func (r *bloodBankRepository) CreateBank(ctx context.Context, bank entities.BloodBank) (entities.BloodBank, error) {
	if err := transaction.Conn(ctx, r.db).Create(&bank).Error; err != nil {
		return entities.BloodBank{}, err
	}
	return bank, nil
}

func (r *bloodBankRepository) UpdateBank(ctx context.Context, bank entities.BloodBank) (entities.BloodBank, error) {
	result := transaction.Conn(ctx, r.db).
		Model(&entities.BloodBank{ID: bank.ID}).
		Select(bankColumns).
		Updates(&bank)
	if result.Error != nil {
		return entities.BloodBank{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.BloodBank{}, domain.ErrBloodBankNotFound
	}
	return bank, nil
}

func (r *bloodBankRepository) DeleteBank(ctx context.Context, id string) error {
	conn := transaction.Conn(ctx, r.db)

	err := conn.Model(&entities.DonationHistory{}).
		Where("blood_bank_id = ?", id).
		Update("blood_bank_id", nil).Error
	if err != nil {
		return err
	}

	if err := conn.Where("blood_bank_id = ?", id).Delete(&entities.BloodInventory{}).Error; err != nil {
		return err
	}

	result := conn.Where("id = ?", id).Delete(&entities.BloodBank{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBloodBankNotFound
	}
	return nil
}

func (r *bloodBankRepository) GetBankByID(ctx context.Context, id string) (entities.BloodBank, error) {
	var bank entities.BloodBank
	if err := transaction.Conn(ctx, r.db).Where("id = ?", id).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BloodBank{}, domain.ErrBloodBankNotFound
		}
		return entities.BloodBank{}, err
	}
	return bank, nil
}

func (r *bloodBankRepository) ListBanks(ctx context.Context, activeOnly bool) ([]entities.BloodBank, error) {
	query := transaction.Conn(ctx, r.db)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var banks []entities.BloodBank
	if err := query.Order("name").Order("id").Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (r *bloodBankRepository) CreateInventory(ctx context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error) {
	if err := transaction.Conn(ctx, r.db).Omit("BloodBank").Create(&inventory).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.BloodInventory{}, domain.ErrInventoryExists
		}
		return entities.BloodInventory{}, err
	}
	return inventory, nil
}

func (r *bloodBankRepository) UpdateInventory(ctx context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error) {
	row := inventory
	row.BloodBank = nil
	result := transaction.Conn(ctx, r.db).
		Model(&entities.BloodInventory{ID: inventory.ID}).
		Select("blood_bank_id", "blood_group", "units_available", "last_updated").
		Updates(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return entities.BloodInventory{}, domain.ErrInventoryExists
		}
		return entities.BloodInventory{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.BloodInventory{}, domain.ErrInventoryNotFound
	}
	return inventory, nil
}

func (r *bloodBankRepository) GetInventoryByID(ctx context.Context, id string) (entities.BloodInventory, error) {
	var inventory entities.BloodInventory
	err := transaction.Conn(ctx, r.db).Preload("BloodBank").Where("id = ?", id).First(&inventory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BloodInventory{}, domain.ErrInventoryNotFound
		}
		return entities.BloodInventory{}, err
	}
	return inventory, nil
}

func (r *bloodBankRepository) FindInventory(ctx context.Context, bankID string, bloodGroup string) (entities.BloodInventory, bool, error) {
	var inventory entities.BloodInventory
	err := transaction.Conn(ctx, r.db).
		Where("blood_bank_id = ? AND blood_group = ?", bankID, bloodGroup).
		First(&inventory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BloodInventory{}, false, nil
		}
		return entities.BloodInventory{}, false, err
	}
	return inventory, true, nil
}

func (r *bloodBankRepository) ListInventory(ctx context.Context, activeOnly bool) ([]entities.BloodInventory, error) {
	query := transaction.Conn(ctx, r.db).
		Preload("BloodBank").
		Joins("JOIN blood_banks ON blood_banks.id = blood_inventory.blood_bank_id")
	if activeOnly {
		query = query.Where("blood_banks.is_active = ?", true)
	}

	var inventory []entities.BloodInventory
	err := query.
		Order("blood_banks.name").
		Order("blood_inventory.blood_group").
		Find(&inventory).Error
	if err != nil {
		return nil, err
	}
	return inventory, nil
}
