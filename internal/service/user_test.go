package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

func TestSignupAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	auth, err := e.users.Signup(ctx, domain.SignupRequest{
		Username:  "alice_writer",
		Password:  "correct-horse",
		Email:     "alice@example.com",
		Phone:     "202-555-0147",
		FirstName: "Alice",
		LastName:  "Nguyen",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_writer", auth.Username)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "Bearer", auth.TokenType)

	login, err := e.users.Login(ctx, domain.LoginRequest{Username: "alice_writer", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = e.users.Login(ctx, domain.LoginRequest{Username: "alice_writer", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = e.users.Login(ctx, domain.LoginRequest{Username: "nobody_here", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupNormalizesPhone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Signup(ctx, domain.SignupRequest{
		Username:  "bob_reader",
		Password:  "correct-horse",
		Email:     "bob@example.com",
		Phone:     "(202) 555-0100",
		FirstName: "Bob",
		LastName:  "Lee",
	})
	require.NoError(t, err)

	profile, err := e.users.GetPrivateProfile(ctx, "bob_reader")
	require.NoError(t, err)
	assert.Equal(t, "+1.2025550100", profile.Phone)
	assert.Equal(t, 2, profile.BlogCreationLimit)
	assert.Equal(t, 3, profile.CommentCreationLimit)
}

func TestSignupConflicts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	base := domain.SignupRequest{
		Username:  "carol_posts",
		Password:  "correct-horse",
		Email:     "carol@example.com",
		Phone:     "202-555-0111",
		FirstName: "Carol",
		LastName:  "Smith",
	}
	_, err := e.users.Signup(ctx, base)
	require.NoError(t, err)

	dup := base
	_, err = e.users.Signup(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrUsernameExists)

	dup = base
	dup.Username = "carol_again"
	dup.Phone = "202-555-0112"
	_, err = e.users.Signup(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	dup = base
	dup.Username = "carol_again"
	dup.Email = "carol2@example.com"
	_, err = e.users.Signup(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrPhoneExists)
}

func TestSignupValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	base := domain.SignupRequest{
		Username:  "dave_writes",
		Password:  "correct-horse",
		Email:     "dave@example.com",
		Phone:     "202-555-0122",
		FirstName: "Dave",
		LastName:  "Kim",
	}

	req := base
	req.Username = "1bad"
	_, err := e.users.Signup(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)

	req = base
	req.Email = "not-an-email"
	_, err = e.users.Signup(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	req = base
	req.FirstName = "Dave3"
	_, err = e.users.Signup(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	req = base
	req.Password = "short"
	_, err = e.users.Signup(ctx, req)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRefreshFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signup(t, "erin_codes")
	auth, err := e.users.Login(ctx, domain.LoginRequest{Username: "erin_codes", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := e.users.Refresh(ctx, auth.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "erin_codes", refreshed.Username)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = e.users.Refresh(ctx, auth.AccessToken)
	assert.Error(t, err)
}

func TestPublicProfileCounts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signup(t, "frank_blogs")
	e.signup(t, "grace_reads")
	e.signup(t, "heidi_reads")

	require.NoError(t, e.follows.Follow(ctx, "grace_reads", "frank_blogs"))
	require.NoError(t, e.follows.Follow(ctx, "heidi_reads", "frank_blogs"))
	require.NoError(t, e.follows.Follow(ctx, "frank_blogs", "grace_reads"))

	profile, err := e.users.GetPublicProfile(ctx, "frank_blogs")
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.FollowerCount)
	assert.Equal(t, int64(1), profile.FollowingCount)

	_, err = e.users.GetPublicProfile(ctx, "missing_user")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestListUserComments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.signup(t, "ivan_posts")
	e.signup(t, "judy_reads")
	blogID := e.seedBlog(t, "ivan_posts", "Ivan on Go", domain.BlogStatusPublished)
	e.seedComment(t, blogID, "judy_reads", domain.SentimentPositive, nil)

	result, err := e.users.ListComments(ctx, "judy_reads", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Ivan on Go", result.Items[0].BlogSubject)
	assert.Equal(t, int64(1), result.Meta.Total)

	_, err = e.users.ListComments(ctx, "missing_user", 1, 10)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
