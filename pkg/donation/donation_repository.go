package donation

import (
	"context"
	"errors"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation entities.DonationHistory) (entities.DonationHistory, error)
		GetDonationByID(ctx context.Context, id string) (entities.DonationHistory, error)
		// UpdateDecision persists status, notes and approver only.
		UpdateDecision(ctx context.Context, donation entities.DonationHistory) error
		ListDonationsByDonor(ctx context.Context, donorID string, limit int) ([]entities.DonationHistory, error)
		// ListDonationsByStatus lists every donation when status is empty, newest first.
		ListDonationsByStatus(ctx context.Context, status string, limit int) ([]entities.DonationHistory, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation entities.DonationHistory) (entities.DonationHistory, error) {
	err := transaction.Conn(ctx, r.db).
		Omit("Donor", "BloodBank", "ApprovedBy").
		Create(&donation).Error
	if err != nil {
		return entities.DonationHistory{}, err
	}
	return donation, nil
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (entities.DonationHistory, error) {
	var donation entities.DonationHistory
	err := transaction.Conn(ctx, r.db).
		Preload("Donor.User").
		Preload("BloodBank").
		Where("id = ?", id).
		First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DonationHistory{}, domain.ErrDonationNotFound
		}
		return entities.DonationHistory{}, err
	}
	return donation, nil
}

func (r *donationRepository) UpdateDecision(ctx context.Context, donation entities.DonationHistory) error {
	result := transaction.Conn(ctx, r.db).
		Model(&entities.DonationHistory{ID: donation.ID}).
		Updates(map[string]any{
			"status":         donation.Status,
			"notes":          donation.Notes,
			"approved_by_id": donation.ApprovedByID,
			"updated_at":     donation.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDonationNotFound
	}
	return nil
}

func (r *donationRepository) ListDonationsByDonor(ctx context.Context, donorID string, limit int) ([]entities.DonationHistory, error) {
	query := transaction.Conn(ctx, r.db).
		Preload("BloodBank").
		Where("donor_id = ?", donorID).
		Order("donation_date DESC").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var donations []entities.DonationHistory
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) ListDonationsByStatus(ctx context.Context, status string, limit int) ([]entities.DonationHistory, error) {
	query := transaction.Conn(ctx, r.db).
		Preload("Donor.User").
		Preload("BloodBank")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var donations []entities.DonationHistory
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}
