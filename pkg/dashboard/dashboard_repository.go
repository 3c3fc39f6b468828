package dashboard

import (
	"context"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/pkg/transaction"

	"gorm.io/gorm"
)

type (
	DashboardRepository interface {
		CountDonors(ctx context.Context, availableOnly bool) (int64, error)
		CountActiveBanks(ctx context.Context) (int64, error)
		CountRequestsByStatus(ctx context.Context, status string) (int64, error)
		CountDonationsByStatus(ctx context.Context, status string) (int64, error)
		CountDonationsByDonor(ctx context.Context, donorID string) (int64, error)
		InventoryTotals(ctx context.Context) ([]domain.BloodGroupTotal, error)
		DonorsByBloodGroup(ctx context.Context) ([]domain.BloodGroupCount, error)
	}

	dashboardRepository struct {
		db *gorm.DB
	}
)

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountDonors(ctx context.Context, availableOnly bool) (int64, error) {
	query := transaction.Conn(ctx, r.db).Model(&entities.DonorProfile{})
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveBanks(ctx context.Context) (int64, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.BloodBank{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountRequestsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.BloodRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountDonationsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.DonationHistory{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountDonationsByDonor(ctx context.Context, donorID string) (int64, error) {
	var count int64
	err := transaction.Conn(ctx, r.db).Model(&entities.DonationHistory{}).Where("donor_id = ?", donorID).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) InventoryTotals(ctx context.Context) ([]domain.BloodGroupTotal, error) {
	var totals []domain.BloodGroupTotal
	err := transaction.Conn(ctx, r.db).
		Model(&entities.BloodInventory{}).
		Select("blood_group, COALESCE(SUM(units_available), 0) AS total_units").
		Group("blood_group").
		Order("blood_group").
		Scan(&totals).Error
	return totals, err
}

func (r *dashboardRepository) DonorsByBloodGroup(ctx context.Context) ([]domain.BloodGroupCount, error) {
	var counts []domain.BloodGroupCount
	err := transaction.Conn(ctx, r.db).
		Model(&entities.DonorProfile{}).
		Select("blood_group, COUNT(id) AS count").
		Group("blood_group").
		Order("blood_group").
		Scan(&counts).Error
	return counts, err
}
