package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) ListReviews(ctx context.Context, offset, limit int) (int64, []models.Review, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Review, 0, limit)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ReviewByUID(ctx context.Context, uid uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, uid uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
