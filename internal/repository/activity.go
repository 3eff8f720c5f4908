package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a GORM-backed activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) GetLimits(ctx context.Context, username string) (*domain.UserLimits, error) {
	var limits domain.UserLimits
	err := r.db.WithContext(ctx).First(&limits, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLimitsNotFound
		}
		return nil, err
	}
	return &limits, nil
}

// TodayActivity returns the counters for the given day. A missing row reads
// as zero activity without inserting anything.
func (r *activityRepository) TodayActivity(ctx context.Context, username string, day time.Time) (*domain.UserDailyActivity, error) {
	date := day.Format(domain.ActivityDateLayout)
	var activity domain.UserDailyActivity
	err := r.db.WithContext(ctx).
		First(&activity, "username = ? AND activity_date = ?", username, date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.UserDailyActivity{Username: username, ActivityDate: date}, nil
		}
		return nil, err
	}
	return &activity, nil
}

// EnsureDay returns the counter row for the given day, inserting a zero row
// on first use. A concurrent first insert is resolved by re-reading.
func (r *activityRepository) EnsureDay(ctx context.Context, username string, day time.Time) (*domain.UserDailyActivity, error) {
	date := day.Format(domain.ActivityDateLayout)
	var activity domain.UserDailyActivity
	err := r.db.WithContext(ctx).
		First(&activity, "username = ? AND activity_date = ?", username, date).Error
	if err == nil {
		return &activity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	activity = domain.UserDailyActivity{Username: username, ActivityDate: date}
	if err := r.db.WithContext(ctx).Create(&activity).Error; err != nil {
		if IsDuplicate(err) {
			var existing domain.UserDailyActivity
			if err2 := r.db.WithContext(ctx).
				First(&existing, "username = ? AND activity_date = ?", username, date).Error; err2 == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) IncrementBlogs(ctx context.Context, username string, day time.Time) error {
	return r.increment(ctx, username, day, "blogs_made")
}

func (r *activityRepository) IncrementComments(ctx context.Context, username string, day time.Time) error {
	return r.increment(ctx, username, day, "comments_made")
}

// increment bumps one counter atomically. A missing row is a no-op; callers
// go through EnsureDay first.
func (r *activityRepository) increment(ctx context.Context, username string, day time.Time, column string) error {
	date := day.Format(domain.ActivityDateLayout)
	return r.db.WithContext(ctx).Model(&domain.UserDailyActivity{}).
		Where("username = ? AND activity_date = ?", username, date).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}
