package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and their limits row in one transaction.
// Duplicate-key violations are translated to per-field sentinels so the
// caller can tell the client which field is taken. The username is
// checked up front; which unique index trips first on a multi-field
// conflict varies by driver, and the username takes precedence.
func (r *userRepository) Create(ctx context.Context, user *domain.User, limits *domain.UserLimits) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&domain.User{}).
			Where("username = ?", user.Username).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrUsernameExists
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		limits.Username = user.Username
		return tx.Create(limits).Error
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return err
		}
		if IsDuplicate(err) {
			return translateUserConflict(err)
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsernameWithLimits(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Limits").First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ListComments(ctx context.Context, username string, page, size int) ([]domain.Comment, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("author_username = ?", username)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("Blog").
		Where("author_username = ?", username).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
