package handler

import (
	"github.com/gin-gonic/gin"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/pkg/response"
)

// CreateComment posts a root comment or reply on a blog.
func (h *Handler) CreateComment(c *gin.Context) {
	blogID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), blogID, middleware.Username(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, comment)
}

// ListBlogComments pages a blog's root comments.
func (h *Handler) ListBlogComments(c *gin.Context) {
	blogID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := paging(c)
	result, err := h.comments.ListRoots(c.Request.Context(), blogID, middleware.Username(c), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ListCommentReplies pages a comment's direct replies.
func (h *Handler) ListCommentReplies(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size := paging(c)
	result, err := h.comments.ListReplies(c.Request.Context(), commentID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateComment patches a comment's content or sentiment.
func (h *Handler) UpdateComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	comment, err := h.comments.Update(c.Request.Context(), commentID, middleware.Username(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment removes a comment and its reply subtree.
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), commentID, middleware.Username(c)); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
