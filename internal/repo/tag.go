package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
)

func (r *GormRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormRepo) TagByUID(ctx context.Context, uid uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := r.DB.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrTagAlreadyExists
		}
		return err
	}
	return nil
}

func (r *GormRepo) TagNameTaken(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Tag{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) RenameTag(ctx context.Context, uid uuid.UUID, name string) (*models.Tag, error) {
	tag, err := r.TagByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := r.DB.WithContext(ctx).Save(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrTagAlreadyExists
		}
		return nil, err
	}
	return tag, nil
}

func (r *GormRepo) DeleteTag(ctx context.Context, uid uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_tags WHERE tag_uid = ?", uid).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&models.Tag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrTagNotFound
		}
		return nil
	})
}

// AddTagsToBook links names to the book, creating tags that do not exist yet,
// and returns the book with its full tag list.
func (r *GormRepo) AddTagsToBook(ctx context.Context, bookUID uuid.UUID, names []string) (*models.Book, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.Where("uid = ?", bookUID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		tags := make([]models.Tag, 0, len(names))
		for _, name := range names {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return tx.Model(&book).Association("Tags").Append(tags)
	})
	if err != nil {
		return nil, err
	}
	return r.BookByUID(ctx, bookUID)
}
