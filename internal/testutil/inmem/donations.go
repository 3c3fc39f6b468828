package inmem

import (
	"context"
	"fmt"
	"sort"

	"bloodbank/domain"
	"bloodbank/entities"

	"github.com/google/uuid"
)

func (s *Store) CreateDonation(_ context.Context, donation entities.DonationHistory) (entities.DonationHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateDonation"); err != nil {
		return entities.DonationHistory{}, err
	}

	if _, ok := s.data.profiles[donation.DonorID]; !ok {
		return entities.DonationHistory{}, fmt.Errorf("inmem: foreign key violation: donor %s does not exist", donation.DonorID)
	}
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.Status == "" {
		donation.Status = domain.DonationStatusPending
	}
	donation.Donor, donation.BloodBank, donation.ApprovedBy = nil, nil, nil
	donation.CreatedAt = s.tick()
	donation.UpdatedAt = donation.CreatedAt
	s.data.donations[donation.ID] = donation
	return donation, nil
}

func (s *Store) GetDonationByID(_ context.Context, id string) (entities.DonationHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetDonationByID"); err != nil {
		return entities.DonationHistory{}, err
	}

	did, ok := parseID(id)
	if !ok {
		return entities.DonationHistory{}, domain.ErrDonationNotFound
	}
	donation, ok := s.data.donations[did]
	if !ok {
		return entities.DonationHistory{}, domain.ErrDonationNotFound
	}
	return s.withDonationRefs(donation), nil
}

func (s *Store) UpdateDecision(_ context.Context, donation entities.DonationHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateDecision"); err != nil {
		return err
	}

	stored, ok := s.data.donations[donation.ID]
	if !ok {
		return domain.ErrDonationNotFound
	}
	stored.Status = donation.Status
	stored.Notes = donation.Notes
	stored.ApprovedByID = donation.ApprovedByID
	stored.UpdatedAt = donation.UpdatedAt
	s.data.donations[donation.ID] = stored
	return nil
}

func (s *Store) ListDonationsByDonor(_ context.Context, donorID string, limit int) ([]entities.DonationHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListDonationsByDonor"); err != nil {
		return nil, err
	}

	var out []entities.DonationHistory
	for _, donation := range s.data.donations {
		if donation.DonorID.String() == donorID {
			out = append(out, s.withDonationRefs(donation))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DonationDate.Equal(out[j].DonationDate) {
			return out[i].DonationDate.After(out[j].DonationDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return limited(out, limit), nil
}

func (s *Store) ListDonationsByStatus(_ context.Context, status string, limit int) ([]entities.DonationHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListDonationsByStatus"); err != nil {
		return nil, err
	}

	var out []entities.DonationHistory
	for _, donation := range s.data.donations {
		if status == "" || donation.Status == status {
			out = append(out, s.withDonationRefs(donation))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return limited(out, limit), nil
}

func (s *Store) withDonationRefs(donation entities.DonationHistory) entities.DonationHistory {
	if profile, ok := s.data.profiles[donation.DonorID]; ok {
		profile = s.withUser(profile)
		donation.Donor = &profile
	}
	if donation.BloodBankID != nil {
		if bank, ok := s.data.banks[*donation.BloodBankID]; ok {
			donation.BloodBank = &bank
		}
	}
	if donation.ApprovedByID != nil {
		donation.ApprovedBy = s.userRef(*donation.ApprovedByID)
	}
	return donation
}

func limited[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
