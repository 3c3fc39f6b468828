package inmem

import (
	"context"
	"sort"

	"bloodbank/domain"
	"bloodbank/entities"

	"github.com/google/uuid"
)

func (s *Store) CreateRequest(_ context.Context, request entities.BloodRequest) (entities.BloodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateRequest"); err != nil {
		return entities.BloodRequest{}, err
	}

	if err := s.requireUser(request.RequesterID); err != nil {
		return entities.BloodRequest{}, err
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Requester, request.ApprovedBy = nil, nil
	request.CreatedAt = s.tick()
	request.UpdatedAt = request.CreatedAt
	if request.RequestedDate.IsZero() {
		request.RequestedDate = request.CreatedAt
	}
	s.data.requests[request.ID] = request
	return request, nil
}

func (s *Store) GetRequestByID(_ context.Context, id string) (entities.BloodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetRequestByID"); err != nil {
		return entities.BloodRequest{}, err
	}

	rid, ok := parseID(id)
	if !ok {
		return entities.BloodRequest{}, domain.ErrBloodRequestNotFound
	}
	request, ok := s.data.requests[rid]
	if !ok {
		return entities.BloodRequest{}, domain.ErrBloodRequestNotFound
	}
	return s.withRequestRefs(request), nil
}

func (s *Store) ListRequests(_ context.Context, requesterID string, limit int) ([]entities.BloodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRequests"); err != nil {
		return nil, err
	}

	var out []entities.BloodRequest
	for _, request := range s.data.requests {
		if requesterID == "" || request.RequesterID.String() == requesterID {
			out = append(out, s.withRequestRefs(request))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedDate.Equal(out[j].RequestedDate) {
			return out[i].RequestedDate.After(out[j].RequestedDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return limited(out, limit), nil
}

func (s *Store) UpdateStatus(_ context.Context, request entities.BloodRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateStatus"); err != nil {
		return err
	}

	stored, ok := s.data.requests[request.ID]
	if !ok {
		return domain.ErrBloodRequestNotFound
	}
	stored.Status = request.Status
	stored.ApprovedByID = request.ApprovedByID
	stored.ApprovedDate = request.ApprovedDate
	stored.RejectionReason = request.RejectionReason
	stored.Notes = request.Notes
	stored.UpdatedAt = request.UpdatedAt
	s.data.requests[request.ID] = stored
	return nil
}

func (s *Store) DeleteRequest(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteRequest"); err != nil {
		return err
	}

	rid, ok := parseID(id)
	if !ok {
		return domain.ErrBloodRequestNotFound
	}
	if _, ok := s.data.requests[rid]; !ok {
		return domain.ErrBloodRequestNotFound
	}
	delete(s.data.requests, rid)
	return nil
}

func (s *Store) withRequestRefs(request entities.BloodRequest) entities.BloodRequest {
	request.Requester = s.userRef(request.RequesterID)
	if request.ApprovedByID != nil {
		request.ApprovedBy = s.userRef(*request.ApprovedByID)
	}
	return request
}
