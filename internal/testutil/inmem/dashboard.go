package inmem

import (
	"context"
	"sort"

	"bloodbank/domain"
)

func (s *Store) CountDonors(_ context.Context, availableOnly bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountDonors"); err != nil {
		return 0, err
	}

	var n int64
	for _, profile := range s.data.profiles {
		if !availableOnly || profile.IsAvailable {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountActiveBanks(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountActiveBanks"); err != nil {
		return 0, err
	}

	var n int64
	for _, bank := range s.data.banks {
		if bank.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountRequestsByStatus(_ context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountRequestsByStatus"); err != nil {
		return 0, err
	}

	var n int64
	for _, request := range s.data.requests {
		if request.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountDonationsByStatus(_ context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountDonationsByStatus"); err != nil {
		return 0, err
	}

	var n int64
	for _, donation := range s.data.donations {
		if donation.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountDonationsByDonor(_ context.Context, donorID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountDonationsByDonor"); err != nil {
		return 0, err
	}

	var n int64
	for _, donation := range s.data.donations {
		if donation.DonorID.String() == donorID {
			n++
		}
	}
	return n, nil
}

func (s *Store) InventoryTotals(_ context.Context) ([]domain.BloodGroupTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InventoryTotals"); err != nil {
		return nil, err
	}

	totals := map[string]float64{}
	for _, inventory := range s.data.inventory {
		totals[inventory.BloodGroup] += inventory.UnitsAvailable
	}

	out := make([]domain.BloodGroupTotal, 0, len(totals))
	for group, units := range totals {
		out = append(out, domain.BloodGroupTotal{BloodGroup: group, TotalUnits: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BloodGroup < out[j].BloodGroup })
	return out, nil
}

func (s *Store) DonorsByBloodGroup(_ context.Context) ([]domain.BloodGroupCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DonorsByBloodGroup"); err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, profile := range s.data.profiles {
		counts[profile.BloodGroup]++
	}

	out := make([]domain.BloodGroupCount, 0, len(counts))
	for group, count := range counts {
		out = append(out, domain.BloodGroupCount{BloodGroup: group, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BloodGroup < out[j].BloodGroup })
	return out, nil
}
