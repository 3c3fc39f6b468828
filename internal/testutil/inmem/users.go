package inmem

import (
	"context"
	"fmt"
	"strings"

	"bloodbank/domain"
	"bloodbank/entities"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateUser"); err != nil {
		return entities.User{}, err
	}

	for _, existing := range s.data.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return entities.User{}, domain.NewError(domain.ErrConflict, "user already exists")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = domain.RoleDonor
	}
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.data.users[user.ID] = user
	return user, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetUserByID"); err != nil {
		return entities.User{}, err
	}

	uid, ok := parseID(id)
	if !ok {
		return entities.User{}, domain.ErrUserNotFound
	}
	user, ok := s.data.users[uid]
	if !ok {
		return entities.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetUserByUsername"); err != nil {
		return entities.User{}, err
	}

	for _, user := range s.data.users {
		if user.Username == username {
			return user, nil
		}
	}
	return entities.User{}, domain.ErrUserNotFound
}

func (s *Store) CheckUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CheckUsername"); err != nil {
		return false, err
	}

	for _, user := range s.data.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CheckEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CheckEmail"); err != nil {
		return false, err
	}

	for _, user := range s.data.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HasDonorProfile(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("HasDonorProfile"); err != nil {
		return false, err
	}

	_, found := s.profileByUser(userID)
	return found, nil
}

func (s *Store) userRef(id uuid.UUID) *entities.User {
	user, ok := s.data.users[id]
	if !ok {
		return nil
	}
	return &user
}

func (s *Store) requireUser(id uuid.UUID) error {
	if _, ok := s.data.users[id]; !ok {
		return fmt.Errorf("inmem: foreign key violation: user %s does not exist", id)
	}
	return nil
}
