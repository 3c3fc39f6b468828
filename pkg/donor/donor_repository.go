package donor

import (
	"context"
	"errors"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

// profileColumns are the fields a donor may overwrite. last_donation_date is
// written only by SetLastDonationDate.
var profileColumns = []string{
	"blood_group", "date_of_birth", "gender", "address", "city", "state",
	"zip_code", "is_available", "medical_conditions", "profile_photo", "updated_at",
}

type (
	DonorRepository interface {
		CreateProfile(ctx context.Context, profile entities.DonorProfile) (entities.DonorProfile, error)
		UpdateProfile(ctx context.Context, profile entities.DonorProfile) (entities.DonorProfile, error)
		GetProfileByID(ctx context.Context, id string) (entities.DonorProfile, error)
		// GetProfileByUserID reports found=false instead of an error when the user has no profile.
		GetProfileByUserID(ctx context.Context, userID string) (entities.DonorProfile, bool, error)
		SearchAvailable(ctx context.Context, filter domain.DonorSearchFilter) ([]entities.DonorProfile, error)
		ListProfiles(ctx context.Context, filter domain.DonorListFilter) ([]entities.DonorProfile, error)
		SetLastDonationDate(ctx context.Context, profileID string, date time.Time) error
	}

	donorRepository struct {
		db *gorm.DB
	}
)

func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) CreateProfile(ctx context.Context, profile entities.DonorProfile) (entities.DonorProfile, error) {
	if err := transaction.Conn(ctx, r.db).Omit("User").Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.DonorProfile{}, domain.ErrDonorProfileExists
		}
		return entities.DonorProfile{}, err
	}
	return profile, nil
}

func (r *donorRepository) UpdateProfile(ctx context.Context, profile entities.DonorProfile) (entities.DonorProfile, error) {
	row := profile
	row.User = nil
	result := transaction.Conn(ctx, r.db).
		Model(&entities.DonorProfile{ID: profile.ID}).
		Select(profileColumns).
		Updates(&row)
	if result.Error != nil {
		return entities.DonorProfile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.DonorProfile{}, domain.ErrDonorProfileNotFound
	}
	return profile, nil
}

func (r *donorRepository) GetProfileByID(ctx context.Context, id string) (entities.DonorProfile, error) {
	var profile entities.DonorProfile
	err := transaction.Conn(ctx, r.db).Preload("User").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DonorProfile{}, domain.ErrDonorProfileNotFound
		}
		return entities.DonorProfile{}, err
	}
	return profile, nil
}

func (r *donorRepository) GetProfileByUserID(ctx context.Context, userID string) (entities.DonorProfile, bool, error) {
	var profile entities.DonorProfile
	err := transaction.Conn(ctx, r.db).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DonorProfile{}, false, nil
		}
		return entities.DonorProfile{}, false, err
	}
	return profile, true, nil
}

func (r *donorRepository) SearchAvailable(ctx context.Context, filter domain.DonorSearchFilter) ([]entities.DonorProfile, error) {
	query := transaction.Conn(ctx, r.db).Preload("User").Where("is_available = ?", true)
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+EscapeLike(filter.City)+"%")
	}

	var profiles []entities.DonorProfile
	if err := query.Order("created_at DESC").Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *donorRepository) ListProfiles(ctx context.Context, filter domain.DonorListFilter) ([]entities.DonorProfile, error) {
	query := transaction.Conn(ctx, r.db).Preload("User")
	if filter.BloodGroup != "" {
		query = query.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}

	var profiles []entities.DonorProfile
	if err := query.Order("created_at DESC").Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *donorRepository) SetLastDonationDate(ctx context.Context, profileID string, date time.Time) error {
	result := transaction.Conn(ctx, r.db).
		Model(&entities.DonorProfile{}).
		Where("id = ?", profileID).
		Update("last_donation_date", date)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDonorProfileNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE/ILIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
