package entities

import (
	"time"

	"github.com/google/uuid"
)

type BloodBank struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Address     string    `gorm:"type:text;not null" json:"address"`
	City        string    `gorm:"size:100;not null" json:"city"`
	State       string    `gorm:"size:100" json:"state"`
	ZipCode     string    `gorm:"size:10" json:"zip_code"`
	PhoneNumber string    `gorm:"size:15;not null" json:"phone_number"`
	Email       string    `gorm:"size:254;not null" json:"email"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`

	Timestamp
}

type BloodInventory struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BloodBankID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_bank_group" json:"blood_bank_id"`
	BloodGroup     string    `gorm:"size:3;not null;uniqueIndex:idx_inventory_bank_group" json:"blood_group"`
	UnitsAvailable float64   `gorm:"type:decimal(6,2);not null;default:0" json:"units_available"`
	LastUpdated    time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	BloodBank *BloodBank `gorm:"foreignKey:BloodBankID;constraint:OnDelete:CASCADE"`
}

func (BloodInventory) TableName() string {
	return "blood_inventory"
}
