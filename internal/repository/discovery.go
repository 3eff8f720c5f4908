package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type discoveryRepository struct {
	db *gorm.DB
}

// NewDiscoveryRepository creates a GORM-backed discovery repository.
func NewDiscoveryRepository(db *gorm.DB) DiscoveryRepository {
	return &discoveryRepository{db: db}
}

const discoveredCols = "users.username, users.first_name, users.last_name"

// UsersWithNoNegativeCommentsOnBlogs finds authors with at least one blog
// where no blog of theirs ever received a negative comment.
func (r *discoveryRepository) UsersWithNoNegativeCommentsOnBlogs(ctx context.Context) ([]domain.DiscoveredUser, error) {
	authors := r.db.Model(&domain.Blog{}).Select("blogs.author_username")
	flagged := r.db.Model(&domain.Blog{}).
		Select("blogs.author_username").
		Joins("JOIN comments ON comments.blog_id = blogs.id").
		Where("comments.sentiment = ?", domain.SentimentNegative)

	var users []domain.DiscoveredUser
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select(discoveredCols).
		Where("users.username IN (?)", authors).
		Where("users.username NOT IN (?)", flagged).
		Scan(&users).Error
	return users, err
}

// UsersWithAllNegativeComments finds users who have commented at least once
// and whose every comment is negative.
func (r *discoveryRepository) UsersWithAllNegativeComments(ctx context.Context) ([]domain.DiscoveredUser, error) {
	commenters := r.db.Model(&domain.Comment{}).Select("comments.author_username")
	positive := r.db.Model(&domain.Comment{}).
		Select("comments.author_username").
		Where("comments.sentiment <> ?", domain.SentimentNegative)

	var users []domain.DiscoveredUser
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select(discoveredCols).
		Where("users.username IN (?)", commenters).
		Where("users.username NOT IN (?)", positive).
		Scan(&users).Error
	return users, err
}

// UsersWhoNeverPostedBlog finds users with zero blogs, drafts included.
func (r *discoveryRepository) UsersWhoNeverPostedBlog(ctx context.Context) ([]domain.DiscoveredUser, error) {
	authors := r.db.Model(&domain.Blog{}).Select("blogs.author_username")

	var users []domain.DiscoveredUser
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select(discoveredCols).
		Where("users.username NOT IN (?)", authors).
		Scan(&users).Error
	return users, err
}

// UsersFollowedByAll finds users followed by every one of the given
// followers.
func (r *discoveryRepository) UsersFollowedByAll(ctx context.Context, followers []string) ([]domain.DiscoveredUser, error) {
	followed := r.db.Model(&domain.UserFollow{}).
		Select("user_follows.following_username").
		Where("user_follows.follower_username IN ?", followers).
		Group("user_follows.following_username").
		Having("COUNT(DISTINCT user_follows.follower_username) = ?", len(followers))

	var users []domain.DiscoveredUser
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select(discoveredCols).
		Where("users.username IN (?)", followed).
		Scan(&users).Error
	return users, err
}

// TopPostersOnDate finds the user(s) whose daily activity counter records
// the most blogs created on the given calendar day. Ties all win; a day
// with no activity rows yields no users.
func (r *discoveryRepository) TopPostersOnDate(ctx context.Context, day time.Time) ([]domain.DiscoveredUser, error) {
	date := day.Format(domain.ActivityDateLayout)

	var rows []domain.UserDailyActivity
	err := r.db.WithContext(ctx).Model(&domain.UserDailyActivity{}).
		Where("activity_date = ?", date).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.DiscoveredUser{}, nil
	}

	best := 0
	for _, row := range rows {
		if row.BlogsMade > best {
			best = row.BlogsMade
		}
	}
	winners := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.BlogsMade == best {
			winners = append(winners, row.Username)
		}
	}
	return r.usersByUsernames(ctx, winners)
}

// UsersByTags finds authors whose blogs collectively carry every listed
// tag. With sameDay set, the coverage must come from at least as many
// distinct blogs as tags, all created on one calendar day.
func (r *discoveryRepository) UsersByTags(ctx context.Context, tags []string, sameDay bool) ([]domain.DiscoveredUser, error) {
	q := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Joins("JOIN blog_tags ON blog_tags.blog_id = blogs.id").
		Joins("JOIN tags ON tags.id = blog_tags.tag_id").
		Where("tags.name IN ?", tags)

	if sameDay {
		q = q.Group("blogs.author_username, DATE(blogs.created_at)").
			Having("COUNT(DISTINCT tags.name) = ?", len(tags)).
			Having("COUNT(DISTINCT blogs.id) >= ?", len(tags))
	} else {
		q = q.Group("blogs.author_username").
			Having("COUNT(DISTINCT tags.name) = ?", len(tags))
	}

	var authors []string
	if err := q.Pluck("blogs.author_username", &authors).Error; err != nil {
		return nil, err
	}

	// same-day grouping can emit an author once per qualifying day
	seen := make(map[string]struct{}, len(authors))
	unique := authors[:0]
	for _, a := range authors {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unique = append(unique, a)
	}
	return r.usersByUsernames(ctx, unique)
}

func (r *discoveryRepository) usersByUsernames(ctx context.Context, usernames []string) ([]domain.DiscoveredUser, error) {
	if len(usernames) == 0 {
		return []domain.DiscoveredUser{}, nil
	}
	var users []domain.DiscoveredUser
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select(discoveredCols).
		Where("users.username IN ?", usernames).
		Scan(&users).Error
	return users, err
}
