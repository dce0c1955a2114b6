package transport

import (
	"github.com/Skotchmaster/bookly/internal/models"
)

type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,min=3,max=28"`
	LastName  string `json:"last_name"  validate:"required,min=3,max=28"`
	Username  string `json:"username"   validate:"required,min=3,max=8"`
	Email     string `json:"email"      validate:"required,email,max=40"`
	Password  string `json:"password"   validate:"required,min=6,max=16"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type EmailRequest struct {
	Addresses []string `json:"addresses" validate:"required,min=1,dive,email"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=16"`
	ConfirmPassword string `json:"confirm_new_password" validate:"required"`
}

type SignupResult struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type LoginUser struct {
	Email string `json:"email"`
	UID   string `json:"uid"`
}

type LoginResult struct {
	Message      string    `json:"message"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         LoginUser `json:"user"`
}

type AccessTokenResult struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PublishedDate is YYYY-MM-DD.
type CreateBookRequest struct {
	Title         string `json:"title"          validate:"required"`
	Author        string `json:"author"         validate:"required"`
	Publisher     string `json:"publisher"      validate:"required"`
	PublishedDate string `json:"published_date" validate:"required,datetime=2006-01-02"`
	PageCount     int    `json:"page_count"     validate:"gte=0"`
	Language      string `json:"language"       validate:"required"`
}

type PatchBookRequest struct {
	Title     *string `json:"title"      validate:"omitempty,min=1"`
	Author    *string `json:"author"     validate:"omitempty,min=1"`
	Publisher *string `json:"publisher"  validate:"omitempty,min=1"`
	PageCount *int    `json:"page_count" validate:"omitempty,gte=0"`
	Language  *string `json:"language"   validate:"omitempty,min=1"`
}

type CreateReviewRequest struct {
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"required"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type TagsRequest struct {
	Tags []TagRequest `json:"tags" validate:"required,min=1,dive"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}
