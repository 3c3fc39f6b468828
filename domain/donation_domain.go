package domain

import (
	"time"
)

const (
	DonationStatusPending   = "pending"
	DonationStatusApproved  = "approved"
	DonationStatusRejected  = "rejected"
	DonationStatusCompleted = "completed"
)

var (
	MessageSuccessCreateDonation  = "donation submitted successfully, waiting for approval"
	MessageSuccessGetDonations    = "donations retrieved successfully"
	MessageSuccessApproveDonation = "donation approved successfully"
	MessageSuccessRejectDonation  = "donation rejected"

	MessageFailedCreateDonation  = "failed to submit donation"
	MessageFailedGetDonations    = "failed to retrieve donations"
	MessageFailedApproveDonation = "failed to approve donation"
	MessageFailedRejectDonation  = "failed to reject donation"

	ErrDonationNotFound       = NewError(ErrNotFound, "donation not found")
	ErrDonationAlreadyDecided = NewError(ErrInvalidState, "donation has already been reviewed")
	ErrInvalidDonationUnits   = NewError(ErrValidation, "units must be greater than zero")
)

type (
	SubmitDonationRequest struct {
		BloodBankID  string  `json:"blood_bank_id" validate:"omitempty,uuid"`
		DonationDate string  `json:"donation_date" validate:"required,datetime=2006-01-02"`
		Units        float64 `json:"units" validate:"lte=99.99,units"`
		Notes        string  `json:"notes"`
	}

	RejectDonationRequest struct {
		Reason string `json:"reason" form:"reason"`
	}

	Donation struct {
		ID            string    `json:"id"`
		DonorID       string    `json:"donor_id"`
		DonorName     string    `json:"donor_name,omitempty"`
		BloodGroup    string    `json:"blood_group,omitempty"`
		BloodBankID   *string   `json:"blood_bank_id,omitempty"`
		BloodBankName string    `json:"blood_bank_name,omitempty"`
		DonationDate  time.Time `json:"donation_date"`
		Units         float64   `json:"units"`
		Status        string    `json:"status"`
		Notes         string    `json:"notes,omitempty"`
		ApprovedByID  *string   `json:"approved_by_id,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}
)
