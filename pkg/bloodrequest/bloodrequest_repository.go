package bloodrequest

import (
	"context"
	"errors"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

type (
	BloodRequestRepository interface {
		CreateRequest(ctx context.Context, request entities.BloodRequest) (entities.BloodRequest, error)
		GetRequestByID(ctx context.Context, id string) (entities.BloodRequest, error)
		// ListRequests returns every request when requesterID is empty, newest first.
		ListRequests(ctx context.Context, requesterID string, limit int) ([]entities.BloodRequest, error)
		UpdateStatus(ctx context.Context, request entities.BloodRequest) error
		DeleteRequest(ctx context.Context, id string) error
	}

	bloodRequestRepository struct {
		db *gorm.DB
	}
)

func NewBloodRequestRepository(db *gorm.DB) BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) CreateRequest(ctx context.Context, request entities.BloodRequest) (entities.BloodRequest, error) {
	err := transaction.Conn(ctx, r.db).
		Omit("Requester", "ApprovedBy").
		Create(&request).Error
	if err != nil {
		return entities.BloodRequest{}, err
	}
	return request, nil
}

func (r *bloodRequestRepository) GetRequestByID(ctx context.Context, id string) (entities.BloodRequest, error) {
	var request entities.BloodRequest
	err := transaction.Conn(ctx, r.db).
		Preload("Requester").
		Preload("ApprovedBy").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BloodRequest{}, domain.ErrBloodRequestNotFound
		}
		return entities.BloodRequest{}, err
	}
	return request, nil
}

func (r *bloodRequestRepository) ListRequests(ctx context.Context, requesterID string, limit int) ([]entities.BloodRequest, error) {
	query := transaction.Conn(ctx, r.db).Preload("Requester")
	if requesterID != "" {
		query = query.Where("requester_id = ?", requesterID)
	}
	query = query.Order("requested_date DESC").Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var requests []entities.BloodRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *bloodRequestRepository) UpdateStatus(ctx context.Context, request entities.BloodRequest) error {
	result := transaction.Conn(ctx, r.db).
		Model(&entities.BloodRequest{ID: request.ID}).
		Updates(map[string]any{
			"status":           request.Status,
			"approved_by_id":   request.ApprovedByID,
			"approved_date":    request.ApprovedDate,
			"rejection_reason": request.RejectionReason,
			"notes":            request.Notes,
			"updated_at":       request.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBloodRequestNotFound
	}
	return nil
}

func (r *bloodRequestRepository) DeleteRequest(ctx context.Context, id string) error {
	result := transaction.Conn(ctx, r.db).Where("id = ?", id).Delete(&entities.BloodRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBloodRequestNotFound
	}
	return nil
}
