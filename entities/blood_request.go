package entities

import (
	"time"

	"github.com/google/uuid"
)

type BloodRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RequesterID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"requester_id"`
	PatientName     string     `gorm:"size:200;not null" json:"patient_name"`
	BloodGroup      string     `gorm:"size:3;not null" json:"blood_group"`
	UnitsRequired   float64    `gorm:"type:decimal(4,2);not null" json:"units_required"`
	Urgency         string     `gorm:"size:10;not null;default:medium" json:"urgency"` // low, medium, high, critical
	HospitalName    string     `gorm:"size:200;not null" json:"hospital_name"`
	HospitalAddress string     `gorm:"type:text;not null" json:"hospital_address"`
	City            string     `gorm:"size:100;not null" json:"city"`
	ContactNumber   string     `gorm:"size:15;not null" json:"contact_number"`
	Reason          string     `gorm:"type:text;not null" json:"reason"`
	Status          string     `gorm:"size:20;not null;default:pending;index" json:"status"` // pending, approved, rejected, fulfilled
	RequestedDate   time.Time  `gorm:"not null" json:"requested_date"`
	RequiredByDate  time.Time  `gorm:"type:date;not null" json:"required_by_date"`
	ApprovedByID    *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedDate    *time.Time `json:"approved_date,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	Notes           string     `gorm:"type:text" json:"notes"`

	Requester  *User `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	ApprovedBy *User `gorm:"foreignKey:ApprovedByID;constraint:OnDelete:SET NULL"`
	Timestamp
}
