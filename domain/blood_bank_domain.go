package domain

import "time"

var (
	MessageSuccessCreateBloodBank = "blood bank created successfully"
	MessageSuccessUpdateBloodBank = "blood bank updated successfully"
	MessageSuccessDeleteBloodBank = "blood bank deleted successfully"
	MessageSuccessGetBloodBanks   = "blood banks retrieved successfully"
	MessageSuccessCreateInventory = "blood inventory added successfully"
	MessageSuccessUpdateInventory = "blood inventory updated successfully"
	MessageSuccessGetInventory    = "blood inventory retrieved successfully"

	MessageFailedCreateBloodBank = "failed to create blood bank"
	MessageFailedUpdateBloodBank = "failed to update blood bank"
	MessageFailedDeleteBloodBank = "failed to delete blood bank"
	MessageFailedGetBloodBanks   = "failed to retrieve blood banks"
	MessageFailedCreateInventory = "failed to add blood inventory"
	MessageFailedUpdateInventory = "failed to update blood inventory"
	MessageFailedGetInventory    = "failed to retrieve blood inventory"

	ErrBloodBankNotFound  = NewError(ErrNotFound, "blood bank not found")
	ErrInventoryNotFound  = NewError(ErrNotFound, "blood inventory not found")
	ErrInventoryExists    = NewError(ErrConflict, "inventory for this blood bank and blood group already exists")
	ErrInvalidUnitsAmount = NewError(ErrValidation, "units available cannot be negative")
)

type (
	BloodBankRequest struct {
		Name        string `json:"name" validate:"required,max=200"`
		Address     string `json:"address" validate:"required"`
		City        string `json:"city" validate:"required,max=100"`
		State       string `json:"state" validate:"omitempty,max=100"`
		ZipCode     string `json:"zip_code" validate:"omitempty,max=10"`
		PhoneNumber string `json:"phone_number" validate:"required,max=15"`
		Email       string `json:"email" validate:"required,email"`
		IsActive    *bool  `json:"is_active"`
	}

	BloodInventoryRequest struct {
		BloodBankID    string  `json:"blood_bank_id" validate:"required,uuid"`
		BloodGroup     string  `json:"blood_group" validate:"required,blood_group"`
		UnitsAvailable float64 `json:"units_available" validate:"lte=9999.99,units"`
	}

	BloodBank struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Address     string    `json:"address"`
		City        string    `json:"city"`
		State       string    `json:"state,omitempty"`
		ZipCode     string    `json:"zip_code,omitempty"`
		PhoneNumber string    `json:"phone_number"`
		Email       string    `json:"email"`
		IsActive    bool      `json:"is_active"`
		CreatedAt   time.Time `json:"created_at"`
		UpdatedAt   time.Time `json:"updated_at"`
	}

	BloodInventory struct {
		ID             string    `json:"id"`
		BloodBankID    string    `json:"blood_bank_id"`
		BloodBankName  string    `json:"blood_bank_name,omitempty"`
		BloodGroup     string    `json:"blood_group"`
		UnitsAvailable float64   `json:"units_available"`
		LastUpdated    time.Time `json:"last_updated"`
	}
)
