package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkwell/internal/cache"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/pkg/database"
	"inkwell/pkg/jwt"
)

var (
	dbSeq    int64
	phoneSeq int64
)

type env struct {
	db        *gorm.DB
	repos     *repository.Repositories
	users     *UserService
	blogs     *BlogService
	search    *SearchService
	discovery *DiscoveryService
	comments  *CommentService
	follows   *FollowService
}

// newEnv spins up the full service stack on a private in-memory database.
func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: dsn,
		Silent:   true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, domain.AllModels()...))

	repos := repository.New(db)
	tokens, err := jwt.NewManager(15*time.Minute, time.Hour, "test")
	require.NoError(t, err)

	return &env{
		db:        db,
		repos:     repos,
		users:     NewUserService(repos.Users, repos.Follows, tokens, cache.Noop{}, time.Minute, 2, 3),
		blogs:     NewBlogService(repos.Blogs, repos.Tags, repos.Activity),
		search:    NewSearchService(repos.Blogs),
		discovery: NewDiscoveryService(repos.Discovery),
		comments:  NewCommentService(repos.Comments, repos.Blogs, repos.Activity),
		follows:   NewFollowService(repos.Follows, repos.Users, cache.Noop{}),
	}
}

// signup registers a user with generated contact details.
func (e *env) signup(t *testing.T, username string) {
	t.Helper()
	_, err := e.users.Signup(context.Background(), domain.SignupRequest{
		Username:  username,
		Password:  "correct-horse",
		Email:     username + "@example.com",
		Phone:     fmt.Sprintf("+1202555%04d", atomic.AddInt64(&phoneSeq, 1)),
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
}

// seedBlog inserts a blog directly, bypassing the daily creation limit.
func (e *env) seedBlog(t *testing.T, author, subject string, status domain.BlogStatus, tags ...string) uint {
	t.Helper()
	blog := &domain.Blog{
		Subject:        subject,
		Description:    subject + " description",
		Content:        subject + " content",
		Status:         status,
		AuthorUsername: author,
	}
	require.NoError(t, e.repos.Blogs.Create(context.Background(), blog, tags))
	return blog.ID
}

// seedActivity inserts a daily activity counter row directly.
func (e *env) seedActivity(t *testing.T, username, date string, blogsMade, commentsMade int) {
	t.Helper()
	require.NoError(t, e.db.Create(&domain.UserDailyActivity{
		Username:     username,
		ActivityDate: date,
		BlogsMade:    blogsMade,
		CommentsMade: commentsMade,
	}).Error)
}

// seedComment inserts a comment directly, bypassing comment rules and
// limits.
func (e *env) seedComment(t *testing.T, blogID uint, author string, sentiment domain.Sentiment, parentID *uint) uint {
	t.Helper()
	comment := &domain.Comment{
		Content:         "seeded comment",
		Sentiment:       sentiment,
		BlogID:          blogID,
		AuthorUsername:  author,
		ParentCommentID: parentID,
	}
	require.NoError(t, e.repos.Comments.Create(context.Background(), comment))
	return comment.ID
}
