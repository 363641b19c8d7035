package admins

import (
	"context"
	"errors"

	"djazair-backend/internal/models"

	"gorm.io/gorm"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	FindByEmail(ctx context.Context, email string) (models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AdminUser{}).Count(&n).Error
	return n, err
}

func (r *GormRepository) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AdminUser{}, ErrNotFound
	}
	return user, err
}

func (r *GormRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}
