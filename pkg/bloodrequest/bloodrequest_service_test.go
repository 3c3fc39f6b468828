package bloodrequest

import (
	"context"
	"sync"
	"testing"
	"time"

	"bloodbank/domain"
	"bloodbank/internal/testutil/inmem"
	"bloodbank/internal/utils"
	"bloodbank/pkg/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (r *recordingNotifier) Notify(_ context.Context, msg notification.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
}

func (r *recordingNotifier) last() notification.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return notification.Message{}
	}
	return r.sent[len(r.sent)-1]
}

type BloodRequestServiceSuite struct {
	suite.Suite

	ctx      context.Context
	store    *inmem.Store
	notifier *recordingNotifier
	service  BloodRequestService
	clock    time.Time

	admin domain.Principal
	alice domain.Principal
	bob   domain.Principal
}

func TestBloodRequestServiceSuite(t *testing.T) {
	suite.Run(t, new(BloodRequestServiceSuite))
}

func (s *BloodRequestServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = inmem.New()
	s.notifier = &recordingNotifier{}
	s.clock = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	s.service = NewBloodRequestService(s.store, s.store, utils.NewValidator(), s.notifier, nil, "admin@bloodbank.com")
	s.service.(*bloodRequestService).now = func() time.Time {
		s.clock = s.clock.Add(time.Minute)
		return s.clock
	}

	admin := s.store.MustCreateUser("admin", domain.RoleAdmin)
	alice := s.store.MustCreateUser("alice", domain.RoleDonor)
	bob := s.store.MustCreateUser("bob", domain.RoleDonor)
	s.admin = domain.Principal{UserID: admin.ID.String(), Role: domain.RoleAdmin}
	s.alice = domain.Principal{UserID: alice.ID.String(), Role: domain.RoleDonor}
	s.bob = domain.Principal{UserID: bob.ID.String(), Role: domain.RoleDonor}
}

func newRequest(group string) domain.CreateBloodRequestRequest {
	return domain.CreateBloodRequestRequest{
		PatientName:     "Rahim Uddin",
		BloodGroup:      group,
		UnitsRequired:   2,
		HospitalName:    "Dhaka Medical College",
		HospitalAddress: "Bakshibazar, Dhaka",
		City:            "Dhaka",
		ContactNumber:   "01711111111",
		Reason:          "Surgery",
		RequiredByDate:  "2024-02-10",
	}
}

func (s *BloodRequestServiceSuite) mustCreate(p domain.Principal, group string) domain.BloodRequest {
	request, err := s.service.CreateRequest(s.ctx, p, newRequest(group))
	s.Require().NoError(err)
	return request
}

func (s *BloodRequestServiceSuite) TestCreateRequest() {
	request := s.mustCreate(s.alice, "B+")

	s.Equal(domain.RequestStatusPending, request.Status)
	s.Equal(domain.UrgencyMedium, request.Urgency)
	s.Equal(s.alice.UserID, request.RequesterID)
	s.Equal("alice", request.RequesterName)
	s.Nil(request.ApprovedByID)

	msg := s.notifier.last()
	s.Equal(notification.EventBloodRequestCreated, msg.Event)
	s.Equal("admin@bloodbank.com", msg.To)
	s.Contains(msg.Body, "alice")
}

func (s *BloodRequestServiceSuite) TestCreateRequestValidation() {
	cases := map[string]func(*domain.CreateBloodRequestRequest){
		"zero units":        func(r *domain.CreateBloodRequestRequest) { r.UnitsRequired = 0 },
		"negative units":    func(r *domain.CreateBloodRequestRequest) { r.UnitsRequired = -3 },
		"sub-cent units":    func(r *domain.CreateBloodRequestRequest) { r.UnitsRequired = 0.004 },
		"bad blood group":   func(r *domain.CreateBloodRequestRequest) { r.BloodGroup = "AB" },
		"bad urgency":       func(r *domain.CreateBloodRequestRequest) { r.Urgency = "whenever" },
		"missing hospital":  func(r *domain.CreateBloodRequestRequest) { r.HospitalName = "" },
		"bad required date": func(r *domain.CreateBloodRequestRequest) { r.RequiredByDate = "tomorrow" },
	}

	for name, mutate := range cases {
		s.Run(name, func() {
			req := newRequest("A+")
			mutate(&req)
			_, err := s.service.CreateRequest(s.ctx, s.alice, req)
			s.ErrorIs(err, domain.ErrValidation)
		})
	}

	requests, err := s.service.ListRequests(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Empty(requests)
}

func (s *BloodRequestServiceSuite) TestCreateRequestRequiresAuthentication() {
	_, err := s.service.CreateRequest(s.ctx, domain.Principal{}, newRequest("A+"))
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *BloodRequestServiceSuite) TestAdminMayRequestBlood() {
	req := newRequest("O-")
	req.Urgency = domain.UrgencyCritical

	request, err := s.service.CreateRequest(s.ctx, s.admin, req)
	s.Require().NoError(err)
	s.Equal(domain.UrgencyCritical, request.Urgency)
}

func (s *BloodRequestServiceSuite) TestListRequestsScopedToRequester() {
	first := s.mustCreate(s.alice, "A+")
	second := s.mustCreate(s.alice, "O+")
	s.mustCreate(s.bob, "B-")

	mine, err := s.service.ListRequests(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(second.ID, mine[0].ID)
	s.Equal(first.ID, mine[1].ID)
	for _, request := range mine {
		s.Equal(s.alice.UserID, request.RequesterID)
	}

	all, err := s.service.ListRequests(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *BloodRequestServiceSuite) TestGetRequestAccess() {
	request := s.mustCreate(s.alice, "A+")

	got, err := s.service.GetRequest(s.ctx, s.alice, request.ID)
	s.Require().NoError(err)
	s.Equal(request.ID, got.ID)

	_, err = s.service.GetRequest(s.ctx, s.admin, request.ID)
	s.NoError(err)

	_, err = s.service.GetRequest(s.ctx, s.bob, request.ID)
	s.ErrorIs(err, domain.ErrPermissionDenied)

	_, err = s.service.GetRequest(s.ctx, s.alice, "00000000-0000-0000-0000-000000000009")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *BloodRequestServiceSuite) TestApproveRequest() {
	request := s.mustCreate(s.alice, "A+")

	updated, err := s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{
		Status: domain.RequestStatusApproved,
		Notes:  "  two units reserved ",
	})
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusApproved, updated.Status)
	s.Require().NotNil(updated.ApprovedByID)
	s.Equal(s.admin.UserID, *updated.ApprovedByID)
	s.NotNil(updated.ApprovedDate)
	s.Equal("two units reserved", updated.Notes)

	msg := s.notifier.last()
	s.Equal(notification.EventBloodRequestUpdated, msg.Event)
	s.Equal("alice@example.com", msg.To)
	s.Contains(msg.Subject, "Approved")
}

func (s *BloodRequestServiceSuite) TestRejectRequest() {
	request := s.mustCreate(s.alice, "A+")

	updated, err := s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{
		Status:          domain.RequestStatusRejected,
		RejectionReason: "no stock",
	})
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusRejected, updated.Status)
	s.Equal("no stock", updated.RejectionReason)
	s.NotNil(updated.ApprovedByID)
}

func (s *BloodRequestServiceSuite) TestStatusTransitions() {
	cases := []struct {
		name    string
		path    []string
		wantErr error
	}{
		{name: "pending to fulfilled", path: []string{domain.RequestStatusFulfilled}},
		{name: "approved to fulfilled", path: []string{domain.RequestStatusApproved, domain.RequestStatusFulfilled}},
		{name: "rejected to fulfilled", path: []string{domain.RequestStatusRejected, domain.RequestStatusFulfilled}},
		{name: "approved to rejected", path: []string{domain.RequestStatusApproved, domain.RequestStatusRejected}, wantErr: domain.ErrInvalidState},
		{name: "rejected to approved", path: []string{domain.RequestStatusRejected, domain.RequestStatusApproved}, wantErr: domain.ErrInvalidState},
		{name: "fulfilled to pending", path: []string{domain.RequestStatusFulfilled, domain.RequestStatusPending}, wantErr: domain.ErrInvalidState},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			request := s.mustCreate(s.alice, "A+")

			var err error
			for _, status := range tc.path {
				_, err = s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{Status: status})
			}
			if tc.wantErr != nil {
				s.ErrorIs(err, tc.wantErr)
				return
			}
			s.NoError(err)
		})
	}
}

func (s *BloodRequestServiceSuite) TestFailedTransitionLeavesRequestUnchanged() {
	request := s.mustCreate(s.alice, "A+")
	_, err := s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{Status: domain.RequestStatusApproved})
	s.Require().NoError(err)
	sent := len(s.notifier.sent)

	_, err = s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{
		Status:          domain.RequestStatusRejected,
		RejectionReason: "changed my mind",
	})
	s.ErrorIs(err, domain.ErrInvalidState)

	stored, err := s.service.GetRequest(s.ctx, s.admin, request.ID)
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusApproved, stored.Status)
	s.Empty(stored.RejectionReason)
	s.Len(s.notifier.sent, sent)
}

func (s *BloodRequestServiceSuite) TestUpdateStatusRequiresAdmin() {
	request := s.mustCreate(s.alice, "A+")

	_, err := s.service.UpdateRequestStatus(s.ctx, s.alice, request.ID, domain.UpdateBloodRequestStatusRequest{Status: domain.RequestStatusApproved})
	s.ErrorIs(err, domain.ErrPermissionDenied)

	_, err = s.service.UpdateRequestStatus(s.ctx, s.admin, request.ID, domain.UpdateBloodRequestStatusRequest{Status: "cancelled"})
	s.ErrorIs(err, domain.ErrValidation)
}

func (s *BloodRequestServiceSuite) TestDeleteRequest() {
	mine := s.mustCreate(s.alice, "A+")
	other := s.mustCreate(s.bob, "B+")

	s.ErrorIs(s.service.DeleteRequest(s.ctx, s.alice, other.ID), domain.ErrPermissionDenied)
	s.NoError(s.service.DeleteRequest(s.ctx, s.alice, mine.ID))
	s.NoError(s.service.DeleteRequest(s.ctx, s.admin, other.ID))

	s.ErrorIs(s.service.DeleteRequest(s.ctx, s.admin, mine.ID), domain.ErrNotFound)

	all, err := s.service.ListRequests(s.ctx, s.admin)
	s.Require().NoError(err)
	s.Empty(all)
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, checkTransition(domain.RequestStatusPending, domain.RequestStatusPending))
	assert.NoError(t, checkTransition(domain.RequestStatusFulfilled, domain.RequestStatusFulfilled))
	assert.ErrorIs(t, checkTransition(domain.RequestStatusApproved, domain.RequestStatusApproved), domain.ErrInvalidState)
	assert.ErrorIs(t, checkTransition(domain.RequestStatusPending, "archived"), domain.ErrValidation)
}
