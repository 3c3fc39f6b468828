package inmem

import (
	"context"
	"sort"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"

	"github.com/google/uuid"
)

func (s *Store) CreateProfile(_ context.Context, profile entities.DonorProfile) (entities.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateProfile"); err != nil {
		return entities.DonorProfile{}, err
	}

	if err := s.requireUser(profile.UserID); err != nil {
		return entities.DonorProfile{}, err
	}
	if _, found := s.profileByUser(profile.UserID.String()); found {
		return entities.DonorProfile{}, domain.ErrDonorProfileExists
	}

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.User = nil
	profile.CreatedAt = s.tick()
	profile.UpdatedAt = profile.CreatedAt
	s.data.profiles[profile.ID] = profile
	return profile, nil
}

func (s *Store) UpdateProfile(_ context.Context, profile entities.DonorProfile) (entities.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateProfile"); err != nil {
		return entities.DonorProfile{}, err
	}

	stored, ok := s.data.profiles[profile.ID]
	if !ok {
		return entities.DonorProfile{}, domain.ErrDonorProfileNotFound
	}

	stored.BloodGroup = profile.BloodGroup
	stored.DateOfBirth = profile.DateOfBirth
	stored.Gender = profile.Gender
	stored.Address = profile.Address
	stored.City = profile.City
	stored.State = profile.State
	stored.ZipCode = profile.ZipCode
	stored.IsAvailable = profile.IsAvailable
	stored.MedicalConditions = profile.MedicalConditions
	stored.ProfilePhoto = profile.ProfilePhoto
	stored.UpdatedAt = profile.UpdatedAt
	s.data.profiles[profile.ID] = stored
	return profile, nil
}

func (s *Store) GetProfileByID(_ context.Context, id string) (entities.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetProfileByID"); err != nil {
		return entities.DonorProfile{}, err
	}

	pid, ok := parseID(id)
	if !ok {
		return entities.DonorProfile{}, domain.ErrDonorProfileNotFound
	}
	profile, ok := s.data.profiles[pid]
	if !ok {
		return entities.DonorProfile{}, domain.ErrDonorProfileNotFound
	}
	return s.withUser(profile), nil
}

func (s *Store) GetProfileByUserID(_ context.Context, userID string) (entities.DonorProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetProfileByUserID"); err != nil {
		return entities.DonorProfile{}, false, err
	}

	profile, found := s.profileByUser(userID)
	if !found {
		return entities.DonorProfile{}, false, nil
	}
	return s.withUser(profile), true, nil
}

func (s *Store) SearchAvailable(_ context.Context, filter domain.DonorSearchFilter) ([]entities.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SearchAvailable"); err != nil {
		return nil, err
	}

	city := strings.ToLower(filter.City)
	return s.selectProfiles(func(p entities.DonorProfile) bool {
		if !p.IsAvailable {
			return false
		}
		if filter.BloodGroup != "" && p.BloodGroup != filter.BloodGroup {
			return false
		}
		return city == "" || strings.Contains(strings.ToLower(p.City), city)
	}), nil
}

func (s *Store) ListProfiles(_ context.Context, filter domain.DonorListFilter) ([]entities.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListProfiles"); err != nil {
		return nil, err
	}

	return s.selectProfiles(func(p entities.DonorProfile) bool {
		if filter.BloodGroup != "" && p.BloodGroup != filter.BloodGroup {
			return false
		}
		return filter.IsAvailable == nil || p.IsAvailable == *filter.IsAvailable
	}), nil
}

func (s *Store) SetLastDonationDate(_ context.Context, profileID string, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SetLastDonationDate"); err != nil {
		return err
	}

	pid, ok := parseID(profileID)
	if !ok {
		return domain.ErrDonorProfileNotFound
	}
	profile, ok := s.data.profiles[pid]
	if !ok {
		return domain.ErrDonorProfileNotFound
	}
	profile.LastDonationDate = &date
	s.data.profiles[pid] = profile
	return nil
}

func (s *Store) profileByUser(userID string) (entities.DonorProfile, bool) {
	for _, profile := range s.data.profiles {
		if profile.UserID.String() == userID {
			return profile, true
		}
	}
	return entities.DonorProfile{}, false
}

func (s *Store) withUser(profile entities.DonorProfile) entities.DonorProfile {
	profile.User = s.userRef(profile.UserID)
	return profile
}

func (s *Store) selectProfiles(keep func(entities.DonorProfile) bool) []entities.DonorProfile {
	var out []entities.DonorProfile
	for _, profile := range s.data.profiles {
		if keep(profile) {
			out = append(out, s.withUser(profile))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
