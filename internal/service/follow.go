package service

import (
	"context"

	"inkwell/internal/audit"
	"inkwell/internal/cache"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/pkg/log"
)

// FollowService manages the follow graph.
type FollowService struct {
	follows  repository.FollowRepository
	users    repository.UserRepository
	profiles cache.ProfileCache
}

// NewFollowService wires the follow service.
func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	profiles cache.ProfileCache,
) *FollowService {
	return &FollowService{follows: follows, users: users, profiles: profiles}
}

// Follow creates a follow edge from follower to target. Self-follows are
// rejected; a duplicate edge surfaces as ErrAlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, follower, target string) error {
	if follower == target {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByUsername(ctx, target); err != nil {
		return err
	}
	if err := s.follows.Create(ctx, follower, target); err != nil {
		return err
	}

	s.invalidateProfiles(ctx, follower, target)
	audit.Record(audit.ActionFollow, follower).WithTarget(target).Log(ctx)
	return nil
}

// Unfollow removes the edge from follower to target.
func (s *FollowService) Unfollow(ctx context.Context, follower, target string) error {
	if err := s.follows.Delete(ctx, follower, target); err != nil {
		return err
	}

	s.invalidateProfiles(ctx, follower, target)
	audit.Record(audit.ActionUnfollow, follower).WithTarget(target).Log(ctx)
	return nil
}

// IsFollowing reports whether follower follows target.
func (s *FollowService) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	return s.follows.Exists(ctx, follower, target)
}

// ListFollowers pages the users following username, most recent first.
func (s *FollowService) ListFollowers(ctx context.Context, username string, page, size int) (domain.Page[domain.FollowEdgeResponse], error) {
	return s.listEdges(ctx, username, page, size, s.follows.ListFollowers)
}

// ListFollowing pages the users username follows, most recent first.
func (s *FollowService) ListFollowing(ctx context.Context, username string, page, size int) (domain.Page[domain.FollowEdgeResponse], error) {
	return s.listEdges(ctx, username, page, size, s.follows.ListFollowing)
}

func (s *FollowService) listEdges(
	ctx context.Context,
	username string,
	page, size int,
	list func(context.Context, string, int, int) ([]domain.FollowEdgeResponse, int64, error),
) (domain.Page[domain.FollowEdgeResponse], error) {
	var empty domain.Page[domain.FollowEdgeResponse]

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return empty, err
	}

	page, size = domain.NormalizePaging(page, size)
	edges, total, err := list(ctx, username, page, size)
	if err != nil {
		return empty, err
	}
	return domain.NewPage(edges, page, size, total), nil
}

// Stats returns follower and following counts for a user.
func (s *FollowService) Stats(ctx context.Context, username string) (*domain.FollowStats, error) {
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, err
	}
	followers, following, err := s.follows.Counts(ctx, username)
	if err != nil {
		return nil, err
	}
	return &domain.FollowStats{
		Username:       username,
		FollowerCount:  followers,
		FollowingCount: following,
	}, nil
}

// invalidateProfiles drops both users' cached profiles since follow counts
// changed. Best-effort.
func (s *FollowService) invalidateProfiles(ctx context.Context, usernames ...string) {
	l := log.Ctx(ctx)
	for _, username := range usernames {
		if err := s.profiles.InvalidateProfile(ctx, username); err != nil {
			l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache invalidation failed")
		}
	}
}
