package inmem

import (
	"context"
	"fmt"
	"sort"

	"bloodbank/domain"
	"bloodbank/entities"

	"github.com/google/uuid"
)

func (s *Store) CreateBank(_ context.Context, bank entities.BloodBank) (entities.BloodBank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateBank"); err != nil {
		return entities.BloodBank{}, err
	}

	if bank.ID == uuid.Nil {
		bank.ID = uuid.New()
	}
	bank.CreatedAt = s.tick()
	bank.UpdatedAt = bank.CreatedAt
	s.data.banks[bank.ID] = bank
	return bank, nil
}

func (s *Store) UpdateBank(_ context.Context, bank entities.BloodBank) (entities.BloodBank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateBank"); err != nil {
		return entities.BloodBank{}, err
	}

	stored, ok := s.data.banks[bank.ID]
	if !ok {
		return entities.BloodBank{}, domain.ErrBloodBankNotFound
	}
	bank.CreatedAt = stored.CreatedAt
	s.data.banks[bank.ID] = bank
	return bank, nil
}

func (s *Store) DeleteBank(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteBank"); err != nil {
		return err
	}

	bid, ok := parseID(id)
	if !ok {
		return domain.ErrBloodBankNotFound
	}
	for did, donation := range s.data.donations {
		if donation.BloodBankID != nil && *donation.BloodBankID == bid {
			donation.BloodBankID = nil
			s.data.donations[did] = donation
		}
	}
	for iid, inventory := range s.data.inventory {
		if inventory.BloodBankID == bid {
			delete(s.data.inventory, iid)
		}
	}
	if _, ok := s.data.banks[bid]; !ok {
		return domain.ErrBloodBankNotFound
	}
	delete(s.data.banks, bid)
	return nil
}

func (s *Store) GetBankByID(_ context.Context, id string) (entities.BloodBank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetBankByID"); err != nil {
		return entities.BloodBank{}, err
	}

	bid, ok := parseID(id)
	if !ok {
		return entities.BloodBank{}, domain.ErrBloodBankNotFound
	}
	bank, ok := s.data.banks[bid]
	if !ok {
		return entities.BloodBank{}, domain.ErrBloodBankNotFound
	}
	return bank, nil
}

func (s *Store) ListBanks(_ context.Context, activeOnly bool) ([]entities.BloodBank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListBanks"); err != nil {
		return nil, err
	}

	var out []entities.BloodBank
	for _, bank := range s.data.banks {
		if activeOnly && !bank.IsActive {
			continue
		}
		out = append(out, bank)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) CreateInventory(_ context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateInventory"); err != nil {
		return entities.BloodInventory{}, err
	}

	if _, ok := s.data.banks[inventory.BloodBankID]; !ok {
		return entities.BloodInventory{}, fmt.Errorf("inmem: foreign key violation: blood bank %s does not exist", inventory.BloodBankID)
	}
	if s.pairTaken(inventory.BloodBankID, inventory.BloodGroup, uuid.Nil) {
		return entities.BloodInventory{}, domain.ErrInventoryExists
	}

	if inventory.ID == uuid.Nil {
		inventory.ID = uuid.New()
	}
	inventory.BloodBank = nil
	if inventory.LastUpdated.IsZero() {
		inventory.LastUpdated = s.tick()
	}
	s.data.inventory[inventory.ID] = inventory
	return inventory, nil
}

func (s *Store) UpdateInventory(_ context.Context, inventory entities.BloodInventory) (entities.BloodInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateInventory"); err != nil {
		return entities.BloodInventory{}, err
	}

	if _, ok := s.data.inventory[inventory.ID]; !ok {
		return entities.BloodInventory{}, domain.ErrInventoryNotFound
	}
	if s.pairTaken(inventory.BloodBankID, inventory.BloodGroup, inventory.ID) {
		return entities.BloodInventory{}, domain.ErrInventoryExists
	}

	row := inventory
	row.BloodBank = nil
	s.data.inventory[inventory.ID] = row
	return inventory, nil
}

func (s *Store) GetInventoryByID(_ context.Context, id string) (entities.BloodInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetInventoryByID"); err != nil {
		return entities.BloodInventory{}, err
	}

	iid, ok := parseID(id)
	if !ok {
		return entities.BloodInventory{}, domain.ErrInventoryNotFound
	}
	inventory, ok := s.data.inventory[iid]
	if !ok {
		return entities.BloodInventory{}, domain.ErrInventoryNotFound
	}
	return s.withBank(inventory), nil
}

func (s *Store) FindInventory(_ context.Context, bankID string, bloodGroup string) (entities.BloodInventory, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindInventory"); err != nil {
		return entities.BloodInventory{}, false, err
	}

	for _, inventory := range s.data.inventory {
		if inventory.BloodBankID.String() == bankID && inventory.BloodGroup == bloodGroup {
			return inventory, true, nil
		}
	}
	return entities.BloodInventory{}, false, nil
}

func (s *Store) ListInventory(_ context.Context, activeOnly bool) ([]entities.BloodInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListInventory"); err != nil {
		return nil, err
	}

	var out []entities.BloodInventory
	for _, inventory := range s.data.inventory {
		item := s.withBank(inventory)
		if item.BloodBank == nil || (activeOnly && !item.BloodBank.IsActive) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BloodBank.Name != out[j].BloodBank.Name {
			return out[i].BloodBank.Name < out[j].BloodBank.Name
		}
		return out[i].BloodGroup < out[j].BloodGroup
	})
	return out, nil
}

func (s *Store) pairTaken(bankID uuid.UUID, bloodGroup string, except uuid.UUID) bool {
	for id, inventory := range s.data.inventory {
		if id != except && inventory.BloodBankID == bankID && inventory.BloodGroup == bloodGroup {
			return true
		}
	}
	return false
}

func (s *Store) withBank(inventory entities.BloodInventory) entities.BloodInventory {
	if bank, ok := s.data.banks[inventory.BloodBankID]; ok {
		inventory.BloodBank = &bank
	}
	return inventory
}
