package domain

import "time"

const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusFulfilled = "fulfilled"

	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var (
	MessageSuccessCreateBloodRequest = "blood request submitted successfully, you will be notified once it is reviewed"
	MessageSuccessGetBloodRequests   = "blood requests retrieved successfully"
	MessageSuccessUpdateBloodRequest = "blood request status updated successfully"
	MessageSuccessDeleteBloodRequest = "blood request deleted successfully"

	MessageFailedCreateBloodRequest = "failed to submit blood request"
	MessageFailedGetBloodRequests   = "failed to retrieve blood requests"
	MessageFailedUpdateBloodRequest = "failed to update blood request"
	MessageFailedDeleteBloodRequest = "failed to delete blood request"

	ErrBloodRequestNotFound      = NewError(ErrNotFound, "blood request not found")
	ErrBloodRequestAccess        = NewError(ErrPermissionDenied, "you do not have permission to access this request")
	ErrBloodRequestAlreadyClosed = NewError(ErrInvalidState, "blood request has already been reviewed")
	ErrInvalidRequestUnits       = NewError(ErrValidation, "units required must be greater than zero")
)

type (
	CreateBloodRequestRequest struct {
		PatientName     string  `json:"patient_name" validate:"required,max=200"`
		BloodGroup      string  `json:"blood_group" validate:"required,blood_group"`
		UnitsRequired   float64 `json:"units_required" validate:"lte=99.99,units"`
		Urgency         string  `json:"urgency" validate:"omitempty,oneof=low medium high critical"`
		HospitalName    string  `json:"hospital_name" validate:"required,max=200"`
		HospitalAddress string  `json:"hospital_address" validate:"required"`
		City            string  `json:"city" validate:"required,max=100"`
		ContactNumber   string  `json:"contact_number" validate:"required,max=15"`
		Reason          string  `json:"reason" validate:"required"`
		RequiredByDate  string  `json:"required_by_date" validate:"required,datetime=2006-01-02"`
	}

	UpdateBloodRequestStatusRequest struct {
		Status          string `json:"status" validate:"required,oneof=pending approved rejected fulfilled"`
		RejectionReason string `json:"rejection_reason"`
		Notes           string `json:"notes"`
	}

	BloodRequest struct {
		ID              string     `json:"id"`
		RequesterID     string     `json:"requester_id"`
		RequesterName   string     `json:"requester_name,omitempty"`
		PatientName     string     `json:"patient_name"`
		BloodGroup      string     `json:"blood_group"`
		UnitsRequired   float64    `json:"units_required"`
		Urgency         string     `json:"urgency"`
		HospitalName    string     `json:"hospital_name"`
		HospitalAddress string     `json:"hospital_address"`
		City            string     `json:"city"`
		ContactNumber   string     `json:"contact_number"`
		Reason          string     `json:"reason"`
		Status          string     `json:"status"`
		RequestedDate   time.Time  `json:"requested_date"`
		RequiredByDate  time.Time  `json:"required_by_date"`
		ApprovedByID    *string    `json:"approved_by_id,omitempty"`
		ApprovedDate    *time.Time `json:"approved_date,omitempty"`
		RejectionReason string     `json:"rejection_reason,omitempty"`
		Notes           string     `json:"notes,omitempty"`
	}
)
