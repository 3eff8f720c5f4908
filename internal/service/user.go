package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/audit"
	"inkwell/internal/cache"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/pkg/jwt"
	"inkwell/pkg/log"
	"inkwell/pkg/phone"
)

// UserService handles signup, authentication and profile reads.
type UserService struct {
	users    repository.UserRepository
	follows  repository.FollowRepository
	tokens   *jwt.Manager
	profiles cache.ProfileCache
	cacheTTL time.Duration

	defaultBlogLimit    int
	defaultCommentLimit int
}

// NewUserService wires the user service.
func NewUserService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	tokens *jwt.Manager,
	profiles cache.ProfileCache,
	cacheTTL time.Duration,
	defaultBlogLimit, defaultCommentLimit int,
) *UserService {
	return &UserService{
		users:               users,
		follows:             follows,
		tokens:              tokens,
		profiles:            profiles,
		cacheTTL:            cacheTTL,
		defaultBlogLimit:    defaultBlogLimit,
		defaultCommentLimit: defaultCommentLimit,
	}
}

// Signup registers an account. The phone number is normalized to
// +<country>.<national> form before storage; conflicts on username, email
// or phone surface as the matching repository sentinel.
func (s *UserService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	if err := domain.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(req.FirstName); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(req.LastName); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	normalizedPhone, err := phone.Normalize(req.Phone)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Phone:        normalizedPhone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	limits := &domain.UserLimits{
		BlogCreationLimit:    s.defaultBlogLimit,
		CommentCreationLimit: s.defaultCommentLimit,
	}
	if err := s.users.Create(ctx, user, limits); err != nil {
		return nil, err
	}

	audit.Record(audit.ActionSignup, user.Username).Log(ctx)
	return s.issueTokens(user)
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	audit.Record(audit.ActionLogin, user.Username).Log(ctx)
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	access, refresh, _, _, err := s.tokens.RefreshTokens(refreshToken)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		Username:     claims.Username,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}

func (s *UserService) issueTokens(user *domain.User) (*domain.AuthResponse, error) {
	access, refresh, _, _, err := s.tokens.GenerateTokenPair(user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		Username:     user.Username,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}, nil
}

// GetPublicProfile returns the cacheable profile view of any user.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	if cached, err := s.profiles.GetProfile(ctx, username); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache read failed")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.follows.Counts(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := &domain.PublicProfile{
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FollowerCount:  followers,
		FollowingCount: following,
		CreatedAt:      user.CreatedAt,
	}
	if err := s.profiles.SetProfile(ctx, profile, s.cacheTTL); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache write failed")
	}
	return profile, nil
}

// GetPrivateProfile returns the owner-only profile view with contact
// details and creation limits. It always bypasses the cache.
func (s *UserService) GetPrivateProfile(ctx context.Context, username string) (*domain.PrivateProfile, error) {
	user, err := s.users.GetByUsernameWithLimits(ctx, username)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.follows.Counts(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := &domain.PrivateProfile{
		PublicProfile: domain.PublicProfile{
			Username:       user.Username,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			FollowerCount:  followers,
			FollowingCount: following,
			CreatedAt:      user.CreatedAt,
		},
		Email: user.Email,
		Phone: user.Phone,
	}
	if user.Limits != nil {
		profile.BlogCreationLimit = user.Limits.BlogCreationLimit
		profile.CommentCreationLimit = user.Limits.CommentCreationLimit
	}
	return profile, nil
}

// ListComments pages a user's comment history newest-first, each entry
// carrying the subject of the blog it was posted under.
func (s *UserService) ListComments(ctx context.Context, username string, page, size int) (domain.Page[domain.UserCommentResponse], error) {
	var empty domain.Page[domain.UserCommentResponse]

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return empty, err
	}

	page, size = domain.NormalizePaging(page, size)
	comments, total, err := s.users.ListComments(ctx, username, page, size)
	if err != nil {
		return empty, err
	}

	items := make([]domain.UserCommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		items = append(items, domain.UserCommentResponse{
			CommentResponse: domain.NewCommentResponse(c, 0),
			BlogSubject:     c.Blog.Subject,
		})
	}
	return domain.NewPage(items, page, size, total), nil
}
