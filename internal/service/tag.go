package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type TagService struct {
	Repo *repo.GormRepo
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.ListTags(ctx)
}

func (s *TagService) Create(ctx context.Context, req transport.TagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	taken, err := s.Repo.TagNameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrTagAlreadyExists
	}

	tag := &models.Tag{Name: name}
	if err := s.Repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// AddToBook links the named tags to the book, creating missing ones.
func (s *TagService) AddToBook(ctx context.Context, bookUID uuid.UUID, req transport.TagsRequest) (*models.Book, error) {
	seen := make(map[string]bool, len(req.Tags))
	names := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		name := strings.TrimSpace(t.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, domain.ErrValidation
	}
	return s.Repo.AddTagsToBook(ctx, bookUID, names)
}

func (s *TagService) Update(ctx context.Context, uid uuid.UUID, req transport.TagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	current, err := s.Repo.TagByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if current.Name == name {
		return current, nil
	}
	taken, err := s.Repo.TagNameTaken(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrTagAlreadyExists
	}
	return s.Repo.RenameTag(ctx, uid, name)
}

func (s *TagService) Delete(ctx context.Context, uid uuid.UUID) error {
	return s.Repo.DeleteTag(ctx, uid)
}
