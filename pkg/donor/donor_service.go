package donor

import (
	"context"
	"errors"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/metrics"
	"bloodbank/internal/utils/storage"
	"bloodbank/pkg/access"
	"bloodbank/pkg/transaction"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const photoFolder = "donors"

type (
	DonorService interface {
		CreateProfile(ctx context.Context, p domain.Principal, req domain.CreateDonorProfileRequest) (domain.DonorProfile, error)
		UpdateProfile(ctx context.Context, p domain.Principal, req domain.UpdateDonorProfileRequest) (domain.DonorProfile, error)
		GetProfile(ctx context.Context, p domain.Principal) (domain.DonorProfile, error)
		UploadProfilePhoto(ctx context.Context, p domain.Principal, req domain.UploadProfilePhotoRequest) (domain.DonorProfile, error)
		SearchDonors(ctx context.Context, filter domain.DonorSearchFilter) ([]domain.DonorSearchResult, error)
		ListDonors(ctx context.Context, p domain.Principal, filter domain.DonorListFilter) ([]domain.DonorProfile, error)
	}

	donorService struct {
		donorRepository DonorRepository
		transactor      transaction.Transactor
		validate        *validator.Validate
		s3              storage.AwsS3
		metrics         *metrics.Metrics
		now             func() time.Time
	}
)

func NewDonorService(
	donorRepository DonorRepository,
	transactor transaction.Transactor,
	validate *validator.Validate,
	s3 storage.AwsS3,
	m *metrics.Metrics,
) DonorService {
	return &donorService{
		donorRepository: donorRepository,
		transactor:      transactor,
		validate:        validate,
		s3:              s3,
		metrics:         m,
		now:             time.Now,
	}
}

func (s *donorService) CreateProfile(ctx context.Context, p domain.Principal, req domain.CreateDonorProfileRequest) (domain.DonorProfile, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.DonorProfile{}, err
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return domain.DonorProfile{}, domain.ErrParseUUID
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	var created entities.DonorProfile
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
		if err != nil {
			return err
		}
		if found {
			return domain.ErrDonorProfileExists
		}

		if err := s.validate.Struct(req); err != nil {
			return domain.NewValidationError(err)
		}
		dob, err := s.parseDateOfBirth(req.DateOfBirth)
		if err != nil {
			return err
		}

		profile, err := s.donorRepository.CreateProfile(ctx, entities.DonorProfile{
			UserID:            userID,
			BloodGroup:        req.BloodGroup,
			DateOfBirth:       dob,
			Gender:            req.Gender,
			Address:           strings.TrimSpace(req.Address),
			City:              strings.TrimSpace(req.City),
			State:             strings.TrimSpace(req.State),
			ZipCode:           strings.TrimSpace(req.ZipCode),
			IsAvailable:       isAvailable,
			MedicalConditions: req.MedicalConditions,
			ProfilePhoto:      req.ProfilePhoto,
		})
		if err != nil {
			return err
		}

		created, err = s.donorRepository.GetProfileByID(ctx, profile.ID.String())
		return err
	})
	if err != nil {
		return domain.DonorProfile{}, err
	}
	return ToDonorProfile(created), nil
}

func (s *donorService) UpdateProfile(ctx context.Context, p domain.Principal, req domain.UpdateDonorProfileRequest) (domain.DonorProfile, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.DonorProfile{}, err
	}

	var updated entities.DonorProfile
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
		if req.BloodGroup != "" && req.BloodGroup != profile.BloodGroup {
			return domain.ErrBloodGroupImmutable
		}
		dob, err := s.parseDateOfBirth(req.DateOfBirth)
		if err != nil {
			return err
		}

		profile.DateOfBirth = dob
		profile.Gender = req.Gender
		profile.Address = strings.TrimSpace(req.Address)
		profile.City = strings.TrimSpace(req.City)
		profile.State = strings.TrimSpace(req.State)
		profile.ZipCode = strings.TrimSpace(req.ZipCode)
		profile.MedicalConditions = req.MedicalConditions
		if req.IsAvailable != nil {
			profile.IsAvailable = *req.IsAvailable
		}
		if req.ProfilePhoto != "" {
			profile.ProfilePhoto = req.ProfilePhoto
		}
		profile.UpdatedAt = s.now()

		updated, err = s.donorRepository.UpdateProfile(ctx, profile)
		return err
	})
	if err != nil {
		return domain.DonorProfile{}, err
	}
	return ToDonorProfile(updated), nil
}

func (s *donorService) GetProfile(ctx context.Context, p domain.Principal) (domain.DonorProfile, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.DonorProfile{}, err
	}

	profile, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
	if err != nil {
		return domain.DonorProfile{}, err
	}
	if !found {
		return domain.DonorProfile{}, domain.ErrDonorProfileNotFound
	}
	return ToDonorProfile(profile), nil
}

func (s *donorService) UploadProfilePhoto(ctx context.Context, p domain.Principal, req domain.UploadProfilePhotoRequest) (domain.DonorProfile, error) {
	if err := access.Check(p, access.Donor); err != nil {
		return domain.DonorProfile{}, err
	}
	if req.Photo == nil {
		return domain.DonorProfile{}, domain.NewError(domain.ErrValidation, "photo is required")
	}
	if s.s3 == nil {
		return domain.DonorProfile{}, domain.ErrPhotoStorageDisabled
	}

	profile, found, err := s.donorRepository.GetProfileByUserID(ctx, p.UserID)
	if err != nil {
		return domain.DonorProfile{}, err
	}
	if !found {
		return domain.DonorProfile{}, domain.ErrDonorProfileNotFound
	}

	objectKey, err := s.s3.UploadFile(ctx, profile.ID.String(), req.Photo, photoFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) || errors.Is(err, storage.ErrFileTooLarge) {
			return domain.DonorProfile{}, domain.ErrInvalidPhoto
		}
		return domain.DonorProfile{}, err
	}

	previousKey := s.s3.GetObjectKeyFromLink(profile.ProfilePhoto)
	profile.ProfilePhoto = s.s3.GetPublicLinkKey(objectKey)
	profile.UpdatedAt = s.now()

	updated, err := s.donorRepository.UpdateProfile(ctx, profile)
	if err != nil {
		_ = s.s3.DeleteFile(ctx, objectKey)
		return domain.DonorProfile{}, err
	}
	if previousKey != "" {
		_ = s.s3.DeleteFile(ctx, previousKey)
	}
	return ToDonorProfile(updated), nil
}

// SearchDonors is public: only available donors are ever returned.
func (s *donorService) SearchDonors(ctx context.Context, filter domain.DonorSearchFilter) ([]domain.DonorSearchResult, error) {
	defer s.metrics.ObserveDonorSearch(s.now())

	filter.BloodGroup = strings.TrimSpace(filter.BloodGroup)
	filter.City = strings.TrimSpace(filter.City)
	if filter.BloodGroup != "" && !domain.IsBloodGroup(filter.BloodGroup) {
		return nil, domain.NewError(domain.ErrValidation, "invalid blood group")
	}

	profiles, err := s.donorRepository.SearchAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]domain.DonorSearchResult, 0, len(profiles))
	for _, profile := range profiles {
		result := domain.DonorSearchResult{
			ID:         profile.ID.String(),
			BloodGroup: profile.BloodGroup,
			City:       profile.City,
			State:      profile.State,
		}
		if profile.User != nil {
			result.FullName = profile.User.FullName()
			result.PhoneNumber = profile.User.PhoneNumber
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *donorService) ListDonors(ctx context.Context, p domain.Principal, filter domain.DonorListFilter) ([]domain.DonorProfile, error) {
	return access.Guard(p, access.Admin, func() ([]domain.DonorProfile, error) {
		if filter.BloodGroup != "" && !domain.IsBloodGroup(filter.BloodGroup) {
			return nil, domain.NewError(domain.ErrValidation, "invalid blood group")
		}

		profiles, err := s.donorRepository.ListProfiles(ctx, filter)
		if err != nil {
			return nil, err
		}

		result := make([]domain.DonorProfile, 0, len(profiles))
		for _, profile := range profiles {
			result = append(result, ToDonorProfile(profile))
		}
		return result, nil
	})
}

func (s *donorService) parseDateOfBirth(value string) (time.Time, error) {
	dob, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if dob.After(s.now()) {
		return time.Time{}, domain.ErrDateOfBirthInTheFuture
	}
	return dob, nil
}

func ToDonorProfile(profile entities.DonorProfile) domain.DonorProfile {
	result := domain.DonorProfile{
		ID:                profile.ID.String(),
		UserID:            profile.UserID.String(),
		BloodGroup:        profile.BloodGroup,
		DateOfBirth:       profile.DateOfBirth,
		Gender:            profile.Gender,
		Address:           profile.Address,
		City:              profile.City,
		State:             profile.State,
		ZipCode:           profile.ZipCode,
		IsAvailable:       profile.IsAvailable,
		LastDonationDate:  profile.LastDonationDate,
		MedicalConditions: profile.MedicalConditions,
		ProfilePhoto:      profile.ProfilePhoto,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
	if profile.User != nil {
		result.Username = profile.User.Username
		result.FullName = profile.User.FullName()
		result.Email = profile.User.Email
		result.PhoneNumber = profile.User.PhoneNumber
	}
	return result
}
