package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/transport"
	"github.com/Skotchmaster/bookly/internal/util"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) Add(ctx context.Context, email string, bookUID uuid.UUID, req transport.CreateReviewRequest) (*models.Review, error) {
	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.BookByUID(ctx, bookUID); err != nil {
		return nil, err
	}

	review := &models.Review{
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		UserUID:    &user.UID,
		BookUID:    &bookUID,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) List(ctx context.Context, page, size int) (*transport.Page[models.Review], error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.ListReviews(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.Page[models.Review]{Data: items, Meta: util.Meta(page, limit, total)}, nil
}

func (s *ReviewService) Get(ctx context.Context, uid uuid.UUID) (*models.Review, error) {
	return s.Repo.ReviewByUID(ctx, uid)
}

// Delete succeeds only for the review's author or an admin.
func (s *ReviewService) Delete(ctx context.Context, uid uuid.UUID, user *models.User) error {
	review, err := s.Repo.ReviewByUID(ctx, uid)
	if err != nil {
		return err
	}

	isAuthor := review.UserUID != nil && *review.UserUID == user.UID
	if !isAuthor && user.Role != models.RoleAdmin {
		logging.FromContext(ctx).Warn("review_delete_denied", "status", 403, "review_uid", uid, "user_uid", user.UID)
		return domain.ErrInsufficientRole
	}
	return s.Repo.DeleteReview(ctx, uid)
}
