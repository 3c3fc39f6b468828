package user

import (
	"context"
	"errors"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

var errUserExists = domain.NewError(domain.ErrConflict, "user already exists")

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user entities.User) (entities.User, error)
		GetUserByID(ctx context.Context, id string) (entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (entities.User, error)
		CheckUsername(ctx context.Context, username string) (bool, error)
		CheckEmail(ctx context.Context, email string) (bool, error)
		HasDonorProfile(ctx context.Context, userID string) (bool, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	if err := transaction.Conn(ctx, r.db).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.User{}, errUserExists
		}
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	var user entities.User
	if err := transaction.Conn(ctx, r.db).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domain.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (entities.User, error) {
	var user entities.User
	if err := transaction.Conn(ctx, r.db).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domain.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) CheckUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) CheckEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) HasDonorProfile(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.DonorProfile{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
