package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
)

func discoveredUsernames(users []domain.DiscoveredUser) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

func TestDiscoverNoNegativeCommentsOnBlogs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")
	e.signup(t, "carol_posts")

	clean := e.seedBlog(t, "alice_writer", "Clean record", domain.BlogStatusPublished)
	stained := e.seedBlog(t, "bob_reader", "Stained record", domain.BlogStatusPublished)
	e.seedComment(t, clean, "carol_posts", domain.SentimentPositive, nil)
	e.seedComment(t, stained, "carol_posts", domain.SentimentNegative, nil)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{NoNegativeCommentsOnBlogs: true})
	require.NoError(t, err)
	// carol never posted a blog so she does not qualify either way
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverAllNegativeComments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")
	e.signup(t, "carol_posts")

	blogID := e.seedBlog(t, "alice_writer", "Divisive", domain.BlogStatusPublished)
	e.seedComment(t, blogID, "bob_reader", domain.SentimentNegative, nil)
	e.seedComment(t, blogID, "carol_posts", domain.SentimentPositive, nil)
	e.seedComment(t, blogID, "carol_posts", domain.SentimentNegative, nil)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{AllNegativeComments: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob_reader"}, discoveredUsernames(users))
}

func TestDiscoverNeverPostedBlog(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")
	e.signup(t, "carol_posts")

	e.seedBlog(t, "alice_writer", "Only alice posts", domain.BlogStatusDraft)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{NeverPostedBlog: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob_reader", "carol_posts"}, discoveredUsernames(users))
}

func TestDiscoverFollowedByAll(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, u := range []string{"alice_writer", "bob_reader", "carol_posts", "dave_lurks"} {
		e.signup(t, u)
	}

	require.NoError(t, e.follows.Follow(ctx, "alice_writer", "dave_lurks"))
	require.NoError(t, e.follows.Follow(ctx, "bob_reader", "dave_lurks"))
	require.NoError(t, e.follows.Follow(ctx, "alice_writer", "carol_posts"))

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		FollowedBy: []string{"alice_writer", "bob_reader"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"dave_lurks"}, discoveredUsernames(users))
}

func TestDiscoverTopPostersOnDate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	today := time.Now().Format(domain.ActivityDateLayout)
	e.seedActivity(t, "alice_writer", today, 2, 0)
	e.seedActivity(t, "bob_reader", today, 1, 3)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{Date: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))

	// ties all win
	require.NoError(t, e.db.Model(&domain.UserDailyActivity{}).
		Where("username = ? AND activity_date = ?", "bob_reader", today).
		UpdateColumn("blogs_made", 2).Error)
	users, err = e.discovery.Discover(ctx, domain.DiscoveryParams{Date: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer", "bob_reader"}, discoveredUsernames(users))

	// a day with no activity yields nobody
	users, err = e.discovery.Discover(ctx, domain.DiscoveryParams{Date: "1999-12-31"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDiscoverDateReadsActivityCounters(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	// counters decide the winner, not blog rows: bob has more blog rows
	// today but alice's counter is higher
	today := time.Now().Format(domain.ActivityDateLayout)
	e.seedBlog(t, "bob_reader", "One", domain.BlogStatusPublished)
	e.seedBlog(t, "bob_reader", "Two", domain.BlogStatusPublished)
	e.seedActivity(t, "alice_writer", today, 2, 0)
	e.seedActivity(t, "bob_reader", today, 1, 0)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{Date: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverInvalidDate(t *testing.T) {
	e := newEnv(t)

	// an unparseable date is an empty result, not an error
	users, err := e.discovery.Discover(context.Background(), domain.DiscoveryParams{Date: "31/12/1999"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDiscoverByTags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	// alice covers both tags across two blogs, bob only one
	e.seedBlog(t, "alice_writer", "Go piece", domain.BlogStatusPublished, "go")
	e.seedBlog(t, "alice_writer", "Rust piece", domain.BlogStatusPublished, "rust")
	e.seedBlog(t, "bob_reader", "Go too", domain.BlogStatusPublished, "go")

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{Tags: []string{"go", "rust"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverSameDayTags(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	// alice: two blogs today covering both tags
	e.seedBlog(t, "alice_writer", "Go today", domain.BlogStatusPublished, "go")
	e.seedBlog(t, "alice_writer", "Rust today", domain.BlogStatusPublished, "rust")

	// bob: covers both tags but on different days
	e.seedBlog(t, "bob_reader", "Go today", domain.BlogStatusPublished, "go")
	old := e.seedBlog(t, "bob_reader", "Rust last week", domain.BlogStatusPublished, "rust")
	lastWeek := time.Now().AddDate(0, 0, -7)
	require.NoError(t, e.db.Model(&domain.Blog{}).Where("id = ?", old).
		UpdateColumn("created_at", lastWeek).Error)

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		Tags:        []string{"go", "rust"},
		SameDayTags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverSameDayTagsNeedsBlogPerTag(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	// one blog carrying both tags does not satisfy the same-day pair
	e.seedBlog(t, "alice_writer", "Doubly tagged", domain.BlogStatusPublished, "go", "rust")

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		Tags:        []string{"go", "rust"},
		SameDayTags: true,
	})
	require.NoError(t, err)
	assert.Empty(t, users)

	// without the same-day constraint a single blog covering both counts
	users, err = e.discovery.Discover(ctx, domain.DiscoveryParams{Tags: []string{"go", "rust"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverSameDayTagsSingleTag(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	// one tag requires only one blog that day
	e.seedBlog(t, "alice_writer", "Go piece", domain.BlogStatusPublished, "go")

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		Tags:        []string{"go"},
		SameDayTags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverSameDayTagsThreeTagsTwoBlogs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	// three tags covered by only two blogs fall short of a blog per tag
	e.seedBlog(t, "alice_writer", "Go and Rust", domain.BlogStatusPublished, "go", "rust")
	e.seedBlog(t, "alice_writer", "Zig", domain.BlogStatusPublished, "zig")

	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		Tags:        []string{"go", "rust", "zig"},
		SameDayTags: true,
	})
	require.NoError(t, err)
	assert.Empty(t, users)

	// a third blog that day completes the coverage
	e.seedBlog(t, "alice_writer", "More Go", domain.BlogStatusPublished, "go")
	users, err = e.discovery.Discover(ctx, domain.DiscoveryParams{
		Tags:        []string{"go", "rust", "zig"},
		SameDayTags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice_writer"}, discoveredUsernames(users))
}

func TestDiscoverPrecedenceAndEmpty(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	e.seedBlog(t, "alice_writer", "Post", domain.BlogStatusPublished, "go")

	// never_posted_blog outranks the tag mode when both are supplied
	users, err := e.discovery.Discover(ctx, domain.DiscoveryParams{
		NeverPostedBlog: true,
		Tags:            []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob_reader"}, discoveredUsernames(users))

	// no parameters at all is an empty result, not an error
	users, err = e.discovery.Discover(ctx, domain.DiscoveryParams{})
	require.NoError(t, err)
	assert.Empty(t, users)
}
