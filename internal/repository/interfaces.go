package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

// UserRepository manages user accounts and their profile projections.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User, limits *domain.UserLimits) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameWithLimits(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	// ListComments returns the user's comments newest-first with each
	// comment's Blog association preloaded.
	ListComments(ctx context.Context, username string, page, size int) ([]domain.Comment, int64, error)
}

// BlogRepository manages blog rows, their tag associations and search.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog, tags []string) error
	GetByID(ctx context.Context, id uint) (*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog, tags []string) error
	UpdateStatus(ctx context.Context, id uint, status domain.BlogStatus) error
	Delete(ctx context.Context, id uint) error
	AddTags(ctx context.Context, id uint, tags []string) error
	RemoveTags(ctx context.Context, id uint, tags []string) error
	Search(ctx context.Context, q SearchQuery) ([]domain.Blog, int64, error)
	ListByAuthor(ctx context.Context, username string, includeDrafts bool, page, size int) ([]domain.Blog, int64, error)
}

// SearchQuery is the repository-level form of a blog search: parameters are
// already normalized by the service (terms tokenized, tags lowercased,
// paging clamped).
type SearchQuery struct {
	BooleanQuery         string
	Tags                 []string
	TagsMatchAll         bool
	Authors              []string
	PositiveCommentsOnly bool
	SortBy               domain.BlogSortBy
	SortOrder            domain.SortOrder
	Page                 int
	Size                 int
}

// TagRepository manages the tag vocabulary.
type TagRepository interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	CleanupOrphans(ctx context.Context) (int64, error)
}

// CommentRepository manages threaded comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uint) (*domain.Comment, error)
	HasRootComment(ctx context.Context, blogID uint, username string) (bool, error)
	ListRoots(ctx context.Context, blogID uint, page, size int) ([]domain.Comment, map[uint]int64, int64, error)
	ListReplies(ctx context.Context, parentID uint, page, size int) ([]domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uint) error
}

// FollowRepository manages the follow graph.
type FollowRepository interface {
	Create(ctx context.Context, follower, following string) error
	Delete(ctx context.Context, follower, following string) error
	Exists(ctx context.Context, follower, following string) (bool, error)
	ListFollowers(ctx context.Context, username string, page, size int) ([]domain.FollowEdgeResponse, int64, error)
	ListFollowing(ctx context.Context, username string, page, size int) ([]domain.FollowEdgeResponse, int64, error)
	Counts(ctx context.Context, username string) (followers, following int64, err error)
}

// ActivityRepository manages daily activity counters and per-user limits.
type ActivityRepository interface {
	GetLimits(ctx context.Context, username string) (*domain.UserLimits, error)
	TodayActivity(ctx context.Context, username string, day time.Time) (*domain.UserDailyActivity, error)
	EnsureDay(ctx context.Context, username string, day time.Time) (*domain.UserDailyActivity, error)
	IncrementBlogs(ctx context.Context, username string, day time.Time) error
	IncrementComments(ctx context.Context, username string, day time.Time) error
}

// DiscoveryRepository answers the user discovery modes. Every query returns
// candidate users as lightweight projections; ordering is applied by the
// service.
type DiscoveryRepository interface {
	UsersWithNoNegativeCommentsOnBlogs(ctx context.Context) ([]domain.DiscoveredUser, error)
	UsersWithAllNegativeComments(ctx context.Context) ([]domain.DiscoveredUser, error)
	UsersWhoNeverPostedBlog(ctx context.Context) ([]domain.DiscoveredUser, error)
	UsersFollowedByAll(ctx context.Context, followers []string) ([]domain.DiscoveredUser, error)
	TopPostersOnDate(ctx context.Context, day time.Time) ([]domain.DiscoveredUser, error)
	UsersByTags(ctx context.Context, tags []string, sameDay bool) ([]domain.DiscoveredUser, error)
}

// Repositories bundles every repository for wiring at startup.
type Repositories struct {
	Users     UserRepository
	Blogs     BlogRepository
	Tags      TagRepository
	Comments  CommentRepository
	Follows   FollowRepository
	Activity  ActivityRepository
	Discovery DiscoveryRepository
}

// New constructs the full repository set on one database handle.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Blogs:     NewBlogRepository(db),
		Tags:      NewTagRepository(db),
		Comments:  NewCommentRepository(db),
		Follows:   NewFollowRepository(db),
		Activity:  NewActivityRepository(db),
		Discovery: NewDiscoveryRepository(db),
	}
}
