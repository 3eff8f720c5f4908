package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/pkg/jwt"
	"inkwell/pkg/log"
	"inkwell/pkg/phone"
	"inkwell/pkg/response"
)

// Handler bundles every HTTP handler with its dependencies.
type Handler struct {
	users     *service.UserService
	blogs     *service.BlogService
	search    *service.SearchService
	discovery *service.DiscoveryService
	comments  *service.CommentService
	follows   *service.FollowService
	tokens    *jwt.Manager
}

// New wires the handler layer.
func New(
	users *service.UserService,
	blogs *service.BlogService,
	search *service.SearchService,
	discovery *service.DiscoveryService,
	comments *service.CommentService,
	follows *service.FollowService,
	tokens *jwt.Manager,
) *Handler {
	return &Handler{
		users:     users,
		blogs:     blogs,
		search:    search,
		discovery: discovery,
		comments:  comments,
		follows:   follows,
		tokens:    tokens,
	}
}

// RegisterRoutes mounts the full API under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth(h.tokens))

	users := authed.Group("/users")
	{
		users.GET("/me", h.GetMyProfile)
		users.GET("/search", h.DiscoverUsers)
		users.GET("/:username", h.GetProfile)
		users.GET("/:username/blogs", h.ListUserBlogs)
		users.GET("/:username/comments", h.ListUserComments)
		users.GET("/:username/followers", h.ListFollowers)
		users.GET("/:username/following", h.ListFollowing)
		users.GET("/:username/follow-stats", h.FollowStats)
		users.POST("/:username/follow", h.Follow)
		users.DELETE("/:username/follow", h.Unfollow)
	}

	blogs := authed.Group("/blogs")
	{
		blogs.POST("", h.CreateBlog)
		blogs.GET("/search", h.SearchBlogs)
		blogs.GET("/tags", h.ListTags)
		blogs.GET("/:id", h.GetBlog)
		blogs.PATCH("/:id", h.UpdateBlog)
		blogs.DELETE("/:id", h.DeleteBlog)
		blogs.POST("/:id/publish", h.PublishBlog)
		blogs.POST("/:id/delist", h.DelistBlog)
		blogs.POST("/:id/tags", h.AddBlogTags)
		blogs.DELETE("/:id/tags", h.RemoveBlogTags)
		blogs.POST("/:id/comments", h.CreateComment)
		blogs.GET("/:id/comments", h.ListBlogComments)
	}

	comments := authed.Group("/comments")
	{
		comments.GET("/:id/replies", h.ListCommentReplies)
		comments.PATCH("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

// Health is the liveness check.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// respondError maps service and repository sentinels to HTTP statuses.
// Anything unrecognized is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrBlogNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrFollowNotFound),
		errors.Is(err, repository.ErrLimitsNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, repository.ErrUsernameExists),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrPhoneExists),
		errors.Is(err, repository.ErrAlreadyFollowing),
		errors.Is(err, service.ErrDuplicateRootComment):
		response.Conflict(c, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrExpiredToken),
		errors.Is(err, jwt.ErrRevokedToken):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrOwnBlogRootComment),
		errors.Is(err, service.ErrSelfReply),
		errors.Is(err, service.ErrBlogLimitReached),
		errors.Is(err, service.ErrCommentLimitReached):
		response.Forbidden(c, err.Error())

	case errors.Is(err, service.ErrParentMismatch),
		errors.Is(err, service.ErrInvalidSentiment),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidTagName),
		errors.Is(err, phone.ErrInvalidPhone):
		response.UnprocessableEntity(c, err.Error())

	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("unhandled error")
		response.InternalError(c, "internal server error")
	}
}

// pathID parses a numeric :id path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// paging reads page/size query parameters, tolerating junk.
func paging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return page, size
}
