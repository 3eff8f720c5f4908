package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/repository"
)

func TestFollowRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	assert.ErrorIs(t, e.follows.Follow(ctx, "alice_writer", "alice_writer"), ErrSelfFollow)
	assert.ErrorIs(t, e.follows.Follow(ctx, "alice_writer", "ghost_user"), repository.ErrUserNotFound)

	require.NoError(t, e.follows.Follow(ctx, "alice_writer", "bob_reader"))
	assert.ErrorIs(t, e.follows.Follow(ctx, "alice_writer", "bob_reader"), repository.ErrAlreadyFollowing)

	following, err := e.follows.IsFollowing(ctx, "alice_writer", "bob_reader")
	require.NoError(t, err)
	assert.True(t, following)

	// edges are directed
	following, err = e.follows.IsFollowing(ctx, "bob_reader", "alice_writer")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	require.NoError(t, e.follows.Follow(ctx, "alice_writer", "bob_reader"))
	require.NoError(t, e.follows.Unfollow(ctx, "alice_writer", "bob_reader"))
	assert.ErrorIs(t, e.follows.Unfollow(ctx, "alice_writer", "bob_reader"), repository.ErrFollowNotFound)
}

func TestFollowListingsAndStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, u := range []string{"alice_writer", "bob_reader", "carol_posts"} {
		e.signup(t, u)
	}

	require.NoError(t, e.follows.Follow(ctx, "bob_reader", "alice_writer"))
	require.NoError(t, e.follows.Follow(ctx, "carol_posts", "alice_writer"))
	require.NoError(t, e.follows.Follow(ctx, "alice_writer", "carol_posts"))

	followers, err := e.follows.ListFollowers(ctx, "alice_writer", 1, 10)
	require.NoError(t, err)
	names := make([]string, 0, len(followers.Items))
	for _, f := range followers.Items {
		names = append(names, f.Username)
	}
	assert.ElementsMatch(t, []string{"bob_reader", "carol_posts"}, names)
	assert.Equal(t, int64(2), followers.Meta.Total)

	following, err := e.follows.ListFollowing(ctx, "alice_writer", 1, 10)
	require.NoError(t, err)
	require.Len(t, following.Items, 1)
	assert.Equal(t, "carol_posts", following.Items[0].Username)
	assert.Equal(t, "Test", following.Items[0].FirstName)

	stats, err := e.follows.Stats(ctx, "alice_writer")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.FollowerCount)
	assert.Equal(t, int64(1), stats.FollowingCount)

	_, err = e.follows.ListFollowers(ctx, "ghost_user", 1, 10)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
