package appointments

import (
	"context"

	"djazair-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *models.Appointment) error
	List(ctx context.Context) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, a *models.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormRepository) List(ctx context.Context) ([]models.Appointment, error) {
	items := make([]models.Appointment, 0)
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	return items, err
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
