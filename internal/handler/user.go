package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/pkg/response"
)

// Signup registers a new account and returns a token pair.
func (h *Handler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	auth, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, auth)
}

// Login authenticates with username and password.
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	auth, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, auth)
}

// Refresh exchanges a refresh token for a new pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	auth, err := h.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, auth)
}

// GetMyProfile returns the caller's private profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	profile, err := h.users.GetPrivateProfile(c.Request.Context(), middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetProfile returns a user's profile: the private view for the owner, the
// public view for everyone else.
func (h *Handler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == middleware.Username(c) {
		profile, err := h.users.GetPrivateProfile(c.Request.Context(), username)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, profile)
		return
	}

	profile, err := h.users.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, profile)
}

// ListUserBlogs pages a user's blogs; drafts show for the owner only.
func (h *Handler) ListUserBlogs(c *gin.Context) {
	page, size := paging(c)
	result, err := h.blogs.ListByAuthor(c.Request.Context(), c.Param("username"), middleware.Username(c), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ListUserComments pages a user's comment history.
func (h *Handler) ListUserComments(c *gin.Context) {
	page, size := paging(c)
	result, err := h.users.ListComments(c.Request.Context(), c.Param("username"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// DiscoverUsers runs a discovery search over the user base.
func (h *Handler) DiscoverUsers(c *gin.Context) {
	var params domain.DiscoveryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	users, err := h.discovery.Discover(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, users)
}
