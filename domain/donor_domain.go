package domain

import (
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateProfile = "donor profile created successfully"
	MessageSuccessUpdateProfile = "donor profile updated successfully"
	MessageSuccessGetProfile    = "donor profile retrieved successfully"
	MessageSuccessUploadPhoto   = "profile photo uploaded successfully"
	MessageSuccessSearchDonors  = "donors retrieved successfully"

	MessageFailedCreateProfile = "failed to create donor profile"
	MessageFailedUpdateProfile = "failed to update donor profile"
	MessageFailedGetProfile    = "failed to retrieve donor profile"
	MessageFailedUploadPhoto   = "failed to upload profile photo"
	MessageFailedSearchDonors  = "failed to retrieve donors"

	ErrDonorProfileNotFound   = NewError(ErrNotFound, "donor profile not found")
	ErrDonorProfileExists     = NewError(ErrConflict, "donor profile already exists")
	ErrBloodGroupImmutable    = NewError(ErrValidation, "blood group cannot be changed after profile creation")
	ErrInvalidPhoto           = NewError(ErrValidation, "profile photo must be a jpeg, png or webp image")
	ErrPhotoStorageDisabled   = NewError(ErrInvalidState, "photo storage is not configured")
	ErrDateOfBirthInTheFuture = NewError(ErrValidation, "date of birth cannot be in the future")
)

type (
	CreateDonorProfileRequest struct {
		BloodGroup        string `json:"blood_group" validate:"required,blood_group"`
		DateOfBirth       string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		Gender            string `json:"gender" validate:"required,oneof=male female other"`
		Address           string `json:"address" validate:"required"`
		City              string `json:"city" validate:"required,max=100"`
		State             string `json:"state" validate:"omitempty,max=100"`
		ZipCode           string `json:"zip_code" validate:"omitempty,max=10"`
		IsAvailable       *bool  `json:"is_available"`
		MedicalConditions string `json:"medical_conditions"`
		ProfilePhoto      string `json:"profile_photo" validate:"omitempty,url"`
	}

	// UpdateDonorProfileRequest may omit blood_group; when present it must match the stored one.
	UpdateDonorProfileRequest struct {
		BloodGroup        string `json:"blood_group" validate:"omitempty,blood_group"`
		DateOfBirth       string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
		Gender            string `json:"gender" validate:"required,oneof=male female other"`
		Address           string `json:"address" validate:"required"`
		City              string `json:"city" validate:"required,max=100"`
		State             string `json:"state" validate:"omitempty,max=100"`
		ZipCode           string `json:"zip_code" validate:"omitempty,max=10"`
		IsAvailable       *bool  `json:"is_available"`
		MedicalConditions string `json:"medical_conditions"`
		ProfilePhoto      string `json:"profile_photo" validate:"omitempty,url"`
	}

	UploadProfilePhotoRequest struct {
		Photo *multipart.FileHeader `json:"photo" form:"photo" validate:"required"`
	}

	DonorSearchFilter struct {
		BloodGroup string `json:"blood_group" query:"blood_group"`
		City       string `json:"city" query:"city"`
	}

	DonorListFilter struct {
		BloodGroup  string `json:"blood_group" query:"blood_group"`
		IsAvailable *bool  `json:"is_available" query:"is_available"`
	}

	DonorProfile struct {
		ID                string     `json:"id"`
		UserID            string     `json:"user_id"`
		Username          string     `json:"username,omitempty"`
		FullName          string     `json:"full_name,omitempty"`
		Email             string     `json:"email,omitempty"`
		PhoneNumber       string     `json:"phone_number,omitempty"`
		BloodGroup        string     `json:"blood_group"`
		DateOfBirth       time.Time  `json:"date_of_birth"`
		Gender            string     `json:"gender"`
		Address           string     `json:"address"`
		City              string     `json:"city"`
		State             string     `json:"state,omitempty"`
		ZipCode           string     `json:"zip_code,omitempty"`
		IsAvailable       bool       `json:"is_available"`
		LastDonationDate  *time.Time `json:"last_donation_date,omitempty"`
		MedicalConditions string     `json:"medical_conditions,omitempty"`
		ProfilePhoto      string     `json:"profile_photo,omitempty"`
		CreatedAt         time.Time  `json:"created_at"`
		UpdatedAt         time.Time  `json:"updated_at"`
	}

	// DonorSearchResult is the public view of an available donor.
	DonorSearchResult struct {
		ID          string `json:"id"`
		FullName    string `json:"full_name"`
		BloodGroup  string `json:"blood_group"`
		City        string `json:"city"`
		State       string `json:"state,omitempty"`
		PhoneNumber string `json:"phone_number,omitempty"`
	}
)
