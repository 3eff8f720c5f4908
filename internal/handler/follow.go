package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/middleware"
	"inkwell/pkg/response"
)

// Follow creates a follow edge from the caller to :username.
func (h *Handler) Follow(c *gin.Context) {
	err := h.follows.Follow(c.Request.Context(), middleware.Username(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, gin.H{"following": c.Param("username")})
}

// Unfollow removes the caller's follow edge to :username.
func (h *Handler) Unfollow(c *gin.Context) {
	err := h.follows.Unfollow(c.Request.Context(), middleware.Username(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}

// ListFollowers pages the users following :username.
func (h *Handler) ListFollowers(c *gin.Context) {
	page, size := paging(c)
	result, err := h.follows.ListFollowers(c.Request.Context(), c.Param("username"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ListFollowing pages the users :username follows.
func (h *Handler) ListFollowing(c *gin.Context) {
	page, size := paging(c)
	result, err := h.follows.ListFollowing(c.Request.Context(), c.Param("username"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// FollowStats returns follower and following counts for :username.
func (h *Handler) FollowStats(c *gin.Context) {
	stats, err := h.follows.Stats(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, stats)
}
