package mykafka

import "time"

const (
	EventUserRegistered = "user_registered"
	EventUserVerified   = "user_verified"
	EventUserLoggedIn   = "user_logged_in"
	EventPasswordReset  = "password_reset"

	EventBookCreated = "book_created"
	EventBookUpdated = "book_updated"
	EventBookDeleted = "book_deleted"
)

type UserEvent struct {
	Type    string    `json:"type"`
	UserUID string    `json:"user_uid"`
	Email   string    `json:"email"`
	At      time.Time `json:"at"`
}

type BookEvent struct {
	Type    string    `json:"type"`
	BookUID string    `json:"book_uid"`
	Title   string    `json:"title,omitempty"`
	At      time.Time `json:"at"`
}
