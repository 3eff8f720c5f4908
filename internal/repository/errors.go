package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors returned by repositories. Services translate these to
// API-level failures; repositories never leak raw driver errors for the
// conditions below.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBlogNotFound    = errors.New("blog not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrFollowNotFound  = errors.New("follow relationship not found")
	ErrLimitsNotFound  = errors.New("user limits not found")

	ErrUsernameExists   = errors.New("username already registered")
	ErrEmailExists      = errors.New("email already registered")
	ErrPhoneExists      = errors.New("phone number already registered")
	ErrAlreadyFollowing = errors.New("already following user")
)

// IsDuplicate reports whether err is a unique or primary key violation.
// Matches MySQL (1062), Postgres (23505) and SQLite message shapes.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// translateUserConflict maps a duplicate-key error on the users table to
// the per-field sentinel, inspecting the constraint name in the message.
func translateUserConflict(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "username"):
		return ErrUsernameExists
	case strings.Contains(msg, "email"):
		return ErrEmailExists
	case strings.Contains(msg, "phone"):
		return ErrPhoneExists
	default:
		return ErrUsernameExists
	}
}
