package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/hash"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/transport"
)

// UserService owns user records. It never deletes users.
type UserService struct {
	Repo   *repo.GormRepo
	Hasher *hash.Hasher
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.UserByEmail(ctx, email)
}

func (s *UserService) Profile(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.UserProfile(ctx, email)
}

func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	return s.Repo.UserExists(ctx, email)
}

func (s *UserService) Create(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	exists, err := s.Repo.UserExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	digest, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		PasswordHash: digest,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update persists fields (column name to value) in a single commit.
func (s *UserService) Update(ctx context.Context, user *models.User, fields map[string]any) (*models.User, error) {
	if err := s.Repo.UpdateUser(ctx, user, fields); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetPassword(ctx context.Context, user *models.User, password string) error {
	digest, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.Update(ctx, user, map[string]any{"password_hash": digest})
	return err
}
