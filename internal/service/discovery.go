package service

import (
	"context"
	"sort"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/pkg/log"
)

// DiscoveryService answers user discovery searches. Exactly one mode runs
// per request, chosen by fixed precedence over the supplied parameters;
// parameters of lower-precedence modes are ignored.
type DiscoveryService struct {
	discovery repository.DiscoveryRepository
}

// NewDiscoveryService wires the discovery service.
func NewDiscoveryService(discovery repository.DiscoveryRepository) *DiscoveryService {
	return &DiscoveryService{discovery: discovery}
}

// Discover picks the highest-precedence mode present in params and runs
// it. Query failures and a malformed date both degrade to an empty
// result rather than an error.
func (s *DiscoveryService) Discover(ctx context.Context, params domain.DiscoveryParams) ([]domain.DiscoveredUser, error) {
	var day time.Time
	if params.Date != "" {
		var err error
		day, err = time.Parse(domain.ActivityDateLayout, params.Date)
		if err != nil {
			l := log.Ctx(ctx)
			l.Warn().Str("date", params.Date).Msg("unparseable discovery date, returning empty result")
			return []domain.DiscoveredUser{}, nil
		}
	}

	var (
		users []domain.DiscoveredUser
		err   error
		mode  string
	)

	switch {
	case params.NoNegativeCommentsOnBlogs:
		mode = "no_negative_comments_on_blogs"
		users, err = s.discovery.UsersWithNoNegativeCommentsOnBlogs(ctx)

	case params.AllNegativeComments:
		mode = "all_negative_comments"
		users, err = s.discovery.UsersWithAllNegativeComments(ctx)

	case params.NeverPostedBlog:
		mode = "never_posted_blog"
		users, err = s.discovery.UsersWhoNeverPostedBlog(ctx)

	case len(params.FollowedBy) > 0:
		mode = "followed_by"
		followers := normalizeFilterValues(params.FollowedBy, false)
		if len(followers) == 0 {
			return []domain.DiscoveredUser{}, nil
		}
		users, err = s.discovery.UsersFollowedByAll(ctx, followers)

	case params.Date != "":
		mode = "date"
		users, err = s.discovery.TopPostersOnDate(ctx, day)

	case len(params.Tags) > 0:
		mode = "tags"
		if params.SameDayTags {
			mode = "same_day_tags"
		}
		tags := normalizeFilterValues(params.Tags, true)
		if len(tags) == 0 {
			return []domain.DiscoveredUser{}, nil
		}
		users, err = s.discovery.UsersByTags(ctx, tags, params.SameDayTags)

	default:
		return []domain.DiscoveredUser{}, nil
	}

	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str("mode", mode).Msg("discovery query failed, returning empty result")
		return []domain.DiscoveredUser{}, nil
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}
