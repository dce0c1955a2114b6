package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/transport"
)

func (r *GormRepo) ListBooks(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Book, 0, limit)
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) BooksByUser(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	var items []models.Book
	if err := r.DB.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) BookByUID(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).
		Preload("Reviews").
		Preload("Tags").
		Where("uid = ?", uid).
		First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// BooksByUIDs keeps the order of uids and skips the ones that no longer exist.
func (r *GormRepo) BooksByUIDs(ctx context.Context, uids []uuid.UUID) ([]models.Book, error) {
	if len(uids) == 0 {
		return []models.Book{}, nil
	}
	var found []models.Book
	if err := r.DB.WithContext(ctx).Where("uid IN ?", uids).Find(&found).Error; err != nil {
		return nil, err
	}
	byUID := make(map[uuid.UUID]models.Book, len(found))
	for _, b := range found {
		byUID[b.UID] = b
	}
	items := make([]models.Book, 0, len(found))
	for _, uid := range uids {
		if b, ok := byUID[uid]; ok {
			items = append(items, b)
		}
	}
	return items, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

func (r *GormRepo) PatchBook(ctx context.Context, uid uuid.UUID, req transport.PatchBookRequest) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
	}
	if req.Language != nil {
		book.Language = *req.Language
	}

	if err := r.DB.WithContext(ctx).Save(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes the book with its reviews and tag links.
func (r *GormRepo) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_tags WHERE book_uid = ?", uid).Error; err != nil {
			return err
		}
		if err := tx.Where("book_uid = ?", uid).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&models.Book{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookNotFound
		}
		return nil
	})
}

// SearchBooks is a case-insensitive substring match on title and author.
func (r *GormRepo) SearchBooks(ctx context.Context, q string, offset, limit int) (int64, []models.Book, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	where := "LOWER(title) LIKE ? OR LOWER(author) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where(where, pattern, pattern).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Book, 0, limit)
	if err := r.DB.WithContext(ctx).
		Where(where, pattern, pattern).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
