package repository

import (
	"context"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a GORM-backed follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts a follow edge. Duplicate edges surface as
// ErrAlreadyFollowing via the composite primary key.
func (r *followRepository) Create(ctx context.Context, follower, following string) error {
	edge := domain.UserFollow{
		FollowerUsername:  follower,
		FollowingUsername: following,
	}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		if IsDuplicate(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, follower, following string) error {
	res := r.db.WithContext(ctx).
		Where("follower_username = ? AND following_username = ?", follower, following).
		Delete(&domain.UserFollow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, follower, following string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserFollow{}).
		Where("follower_username = ? AND following_username = ?", follower, following).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepository) ListFollowers(ctx context.Context, username string, page, size int) ([]domain.FollowEdgeResponse, int64, error) {
	return r.listEdges(ctx, username, "following_username", "follower_username", page, size)
}

func (r *followRepository) ListFollowing(ctx context.Context, username string, page, size int) ([]domain.FollowEdgeResponse, int64, error) {
	return r.listEdges(ctx, username, "follower_username", "following_username", page, size)
}

// listEdges pages one side of the follow graph, joining user rows for the
// profile fields. anchorCol filters on username; otherCol is the side
// projected into the result.
func (r *followRepository) listEdges(ctx context.Context, username, anchorCol, otherCol string, page, size int) ([]domain.FollowEdgeResponse, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.UserFollow{}).
		Where(anchorCol+" = ?", username).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var edges []domain.FollowEdgeResponse
	err = r.db.WithContext(ctx).Model(&domain.UserFollow{}).
		Select("users.username, users.first_name, users.last_name, user_follows.created_at AS followed_at").
		Joins("JOIN users ON users.username = user_follows."+otherCol).
		Where("user_follows."+anchorCol+" = ?", username).
		Order("user_follows.created_at DESC, users.username ASC").
		Offset((page - 1) * size).
		Limit(size).
		Scan(&edges).Error
	if err != nil {
		return nil, 0, err
	}
	return edges, total, nil
}

func (r *followRepository) Counts(ctx context.Context, username string) (int64, int64, error) {
	var followers, following int64
	err := r.db.WithContext(ctx).Model(&domain.UserFollow{}).
		Where("following_username = ?", username).
		Count(&followers).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.UserFollow{}).
		Where("follower_username = ?", username).
		Count(&following).Error
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
