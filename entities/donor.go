package entities

import (
	"time"

	"github.com/google/uuid"
)

type DonorProfile struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BloodGroup        string     `gorm:"size:3;not null;index" json:"blood_group"`
	DateOfBirth       time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	Gender            string     `gorm:"size:10;not null" json:"gender"` // male, female, other
	Address           string     `gorm:"type:text;not null" json:"address"`
	City              string     `gorm:"size:100;not null;index" json:"city"`
	State             string     `gorm:"size:100" json:"state"`
	ZipCode           string     `gorm:"size:10" json:"zip_code"`
	IsAvailable       bool       `gorm:"not null;default:true" json:"is_available"`
	LastDonationDate  *time.Time `gorm:"type:date" json:"last_donation_date,omitempty"`
	MedicalConditions string     `gorm:"type:text" json:"medical_conditions"`
	ProfilePhoto      string     `json:"profile_photo,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type DonationHistory struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"donor_id"`
	BloodBankID  *uuid.UUID `gorm:"type:uuid" json:"blood_bank_id,omitempty"`
	DonationDate time.Time  `gorm:"type:date;not null" json:"donation_date"`
	Units        float64    `gorm:"type:decimal(4,2);not null" json:"units"`
	Status       string     `gorm:"size:20;not null;default:pending;index" json:"status"` // pending, approved, rejected, completed
	Notes        string     `gorm:"type:text" json:"notes"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`

	Donor      *DonorProfile `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
	BloodBank  *BloodBank    `gorm:"foreignKey:BloodBankID;constraint:OnDelete:SET NULL"`
	ApprovedBy *User         `gorm:"foreignKey:ApprovedByID;constraint:OnDelete:SET NULL"`
	Timestamp
}

func (DonationHistory) TableName() string {
	return "donation_history"
}
