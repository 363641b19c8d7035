package gallery

import (
	"context"
	"errors"

	"djazair-backend/internal/models"

	"gorm.io/gorm"
)

// listColumns is everything but the binary content.
var listColumns = []string{"id", "mime", "storage_key", "size", "width", "height", "title_fr", "caption_fr", "created_at"}

type Repository interface {
	Create(ctx context.Context, img *models.Image) error
	List(ctx context.Context) ([]models.Image, error)
	Get(ctx context.Context, id uint) (models.Image, error)
	UpdateMetadata(ctx context.Context, id uint, set map[string]interface{}) error
	Delete(ctx context.Context, id uint) (string, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, img *models.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GormRepository) List(ctx context.Context) ([]models.Image, error) {
	items := make([]models.Image, 0)
	err := r.db.WithContext(ctx).
		Select(listColumns).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	return items, err
}

func (r *GormRepository) Get(ctx context.Context, id uint) (models.Image, error) {
	var img models.Image
	err := r.db.WithContext(ctx).Take(&img, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Image{}, ErrNotFound
	}
	return img, err
}

// UpdateMetadata applies set to the row. An empty set only checks that the
// row exists.
func (r *GormRepository) UpdateMetadata(ctx context.Context, id uint, set map[string]interface{}) error {
	if len(set) == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&models.Image{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Image{}).Where("id = ?", id).Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row and returns the storage key it referenced, if any.
func (r *GormRepository) Delete(ctx context.Context, id uint) (string, error) {
	var key string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img models.Image
		if err := tx.Select("id", "storage_key").Take(&img, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&models.Image{}, id).Error; err != nil {
			return err
		}
		key = img.StorageKey
		return nil
	})
	return key, err
}
