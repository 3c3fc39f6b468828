package bloodrequest

import (
	"context"
	"strings"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/metrics"
	"bloodbank/pkg/access"
	"bloodbank/pkg/notification"
	"bloodbank/pkg/transaction"

	"github.com/go-playground/validator/v10"
)

type (
	BloodRequestService interface {
		CreateRequest(ctx context.Context, p domain.Principal, req domain.CreateBloodRequestRequest) (domain.BloodRequest, error)
		ListRequests(ctx context.Context, p domain.Principal) ([]domain.BloodRequest, error)
		GetRequest(ctx context.Context, p domain.Principal, id string) (domain.BloodRequest, error)
		UpdateRequestStatus(ctx context.Context, p domain.Principal, id string, req domain.UpdateBloodRequestStatusRequest) (domain.BloodRequest, error)
		DeleteRequest(ctx context.Context, p domain.Principal, id string) error
	}

	bloodRequestService struct {
		bloodRequestRepository BloodRequestRepository
		transactor             transaction.Transactor
		validate               *validator.Validate
		notifier               notification.Notifier
		metrics                *metrics.Metrics
		adminEmail             string
		now                    func() time.Time
	}
)

func NewBloodRequestService(
	bloodRequestRepository BloodRequestRepository,
	transactor transaction.Transactor,
	validate *validator.Validate,
	notifier notification.Notifier,
	m *metrics.Metrics,
	adminEmail string,
) BloodRequestService {
	return &bloodRequestService{
		bloodRequestRepository: bloodRequestRepository,
		transactor:             transactor,
		validate:               validate,
		notifier:               notifier,
		metrics:                m,
		adminEmail:             adminEmail,
		now:                    time.Now,
	}
}

func (s *bloodRequestService) CreateRequest(ctx context.Context, p domain.Principal, req domain.CreateBloodRequestRequest) (domain.BloodRequest, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return domain.BloodRequest{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.BloodRequest{}, domain.NewValidationError(err)
	}
	if req.UnitsRequired <= 0 {
		return domain.BloodRequest{}, domain.ErrInvalidRequestUnits
	}
	requiredBy, err := domain.ParseDate(req.RequiredByDate)
	if err != nil {
		return domain.BloodRequest{}, err
	}
	requesterID, err := domain.ParseID(p.UserID)
	if err != nil {
		return domain.BloodRequest{}, err
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}

	var created entities.BloodRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.bloodRequestRepository.CreateRequest(ctx, entities.BloodRequest{
			RequesterID:     requesterID,
			PatientName:     strings.TrimSpace(req.PatientName),
			BloodGroup:      req.BloodGroup,
			UnitsRequired:   req.UnitsRequired,
			Urgency:         urgency,
			HospitalName:    strings.TrimSpace(req.HospitalName),
			HospitalAddress: strings.TrimSpace(req.HospitalAddress),
			City:            strings.TrimSpace(req.City),
			ContactNumber:   strings.TrimSpace(req.ContactNumber),
			Reason:          strings.TrimSpace(req.Reason),
			Status:          domain.RequestStatusPending,
			RequestedDate:   s.now(),
			RequiredByDate:  requiredBy,
		})
		if err != nil {
			return err
		}

		created, err = s.bloodRequestRepository.GetRequestByID(ctx, request.ID.String())
		return err
	})
	if err != nil {
		return domain.BloodRequest{}, err
	}

	s.metrics.IncBloodRequestCreated(created.Urgency)
	s.notifier.Notify(ctx, notification.BloodRequestCreated(s.adminEmail, created.BloodGroup, requesterUsername(created)))
	return ToBloodRequest(created), nil
}

// ListRequests returns all requests to admins and only their own to everyone else.
func (s *bloodRequestService) ListRequests(ctx context.Context, p domain.Principal) ([]domain.BloodRequest, error) {
	return access.Guard(p, access.Authenticated, func() ([]domain.BloodRequest, error) {
		requesterID := p.UserID
		if p.IsAdmin() {
			requesterID = ""
		}

		requests, err := s.bloodRequestRepository.ListRequests(ctx, requesterID, 0)
		if err != nil {
			return nil, err
		}
		return ToBloodRequests(requests), nil
	})
}

func (s *bloodRequestService) GetRequest(ctx context.Context, p domain.Principal, id string) (domain.BloodRequest, error) {
	if err := access.Check(p, access.Authenticated); err != nil {
		return domain.BloodRequest{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodRequest{}, err
	}

	request, err := s.bloodRequestRepository.GetRequestByID(ctx, id)
	if err != nil {
		return domain.BloodRequest{}, err
	}
	if err := access.Check(p, access.OwnerOrAdmin(request.RequesterID.String(), domain.ErrBloodRequestAccess)); err != nil {
		return domain.BloodRequest{}, err
	}
	return ToBloodRequest(request), nil
}

func (s *bloodRequestService) UpdateRequestStatus(ctx context.Context, p domain.Principal, id string, req domain.UpdateBloodRequestStatusRequest) (domain.BloodRequest, error) {
	if err := access.Check(p, access.Admin); err != nil {
		return domain.BloodRequest{}, err
	}
	if _, err := domain.ParseID(id); err != nil {
		return domain.BloodRequest{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return domain.BloodRequest{}, domain.NewValidationError(err)
	}
	adminID, err := domain.ParseID(p.UserID)
	if err != nil {
		return domain.BloodRequest{}, err
	}

	var updated entities.BloodRequest
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.bloodRequestRepository.GetRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkTransition(request.Status, req.Status); err != nil {
			return err
		}

		now := s.now()
		if req.Status == domain.RequestStatusApproved || req.Status == domain.RequestStatusRejected {
			request.ApprovedByID = &adminID
			request.ApprovedDate = &now
		}
		request.Status = req.Status
		request.RejectionReason = strings.TrimSpace(req.RejectionReason)
		request.Notes = strings.TrimSpace(req.Notes)
		request.UpdatedAt = now

		if err := s.bloodRequestRepository.UpdateStatus(ctx, request); err != nil {
			return err
		}

		updated, err = s.bloodRequestRepository.GetRequestByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.BloodRequest{}, err
	}

	s.metrics.IncRequestStatusChange(updated.Status)
	s.notifier.Notify(ctx, notification.BloodRequestStatusChanged(requesterEmail(updated), updated.BloodGroup, updated.Status))
	return ToBloodRequest(updated), nil
}

// DeleteRequest lets the admin or the requester remove a request in any state.
func (s *bloodRequestService) DeleteRequest(ctx context.Context, p domain.Principal, id string) error {
	if err := access.Check(p, access.Authenticated); err != nil {
		return err
	}
	if _, err := domain.ParseID(id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.bloodRequestRepository.GetRequestByID(ctx, id)
		if err != nil {
			return err
		}
		if err := access.Check(p, access.OwnerOrAdmin(request.RequesterID.String(), domain.ErrBloodRequestAccess)); err != nil {
			return err
		}
		return s.bloodRequestRepository.DeleteRequest(ctx, id)
	})
}

// checkTransition allows approved and rejected only out of pending, keeps
// pending editable while pending, and lets fulfilled override any state.
func checkTransition(from, to string) error {
	switch to {
	case domain.RequestStatusFulfilled:
		return nil
	case domain.RequestStatusPending, domain.RequestStatusApproved, domain.RequestStatusRejected:
		if from != domain.RequestStatusPending {
			return domain.ErrBloodRequestAlreadyClosed
		}
		return nil
	}
	return domain.NewError(domain.ErrValidation, "unknown status "+to)
}

func requesterUsername(request entities.BloodRequest) string {
	if request.Requester == nil {
		return request.RequesterID.String()
	}
	return request.Requester.Username
}

func requesterEmail(request entities.BloodRequest) string {
	if request.Requester == nil {
		return ""
	}
	return request.Requester.Email
}

func ToBloodRequest(request entities.BloodRequest) domain.BloodRequest {
	result := domain.BloodRequest{
		ID:              request.ID.String(),
		RequesterID:     request.RequesterID.String(),
		PatientName:     request.PatientName,
		BloodGroup:      request.BloodGroup,
		UnitsRequired:   request.UnitsRequired,
		Urgency:         request.Urgency,
		HospitalName:    request.HospitalName,
		HospitalAddress: request.HospitalAddress,
		City:            request.City,
		ContactNumber:   request.ContactNumber,
		Reason:          request.Reason,
		Status:          request.Status,
		RequestedDate:   request.RequestedDate,
		RequiredByDate:  request.RequiredByDate,
		ApprovedDate:    request.ApprovedDate,
		RejectionReason: request.RejectionReason,
		Notes:           request.Notes,
	}
	if request.Requester != nil {
		result.RequesterName = request.Requester.FullName()
	}
	if request.ApprovedByID != nil {
		id := request.ApprovedByID.String()
		result.ApprovedByID = &id
	}
	return result
}

func ToBloodRequests(requests []entities.BloodRequest) []domain.BloodRequest {
	result := make([]domain.BloodRequest, 0, len(requests))
	for _, request := range requests {
		result = append(result, ToBloodRequest(request))
	}
	return result
}
