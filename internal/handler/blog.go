package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"inkwell/internal/domain"
	"inkwell/internal/middleware"
	"inkwell/pkg/response"
)

// CreateBlog drafts a new blog for the caller.
func (h *Handler) CreateBlog(c *gin.Context) {
	var req domain.BlogEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	blog, err := h.blogs.Create(c.Request.Context(), middleware.Username(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, blog)
}

// SearchBlogs searches published blogs.
func (h *Handler) SearchBlogs(c *gin.Context) {
	var params domain.BlogSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	result, err := h.search.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// ListTags returns the tag vocabulary.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.blogs.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	response.Success(c, names)
}

// GetBlog returns one blog; drafts only for their author.
func (h *Handler) GetBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogs.Get(c.Request.Context(), id, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, blog)
}

// UpdateBlog patches a blog's fields and optionally replaces its tags.
func (h *Handler) UpdateBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.BlogEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	blog, err := h.blogs.Update(c.Request.Context(), id, middleware.Username(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, blog)
}

// DeleteBlog removes a blog with its comments and tag links.
func (h *Handler) DeleteBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.blogs.Delete(c.Request.Context(), id, middleware.Username(c)); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}

// PublishBlog makes a blog publicly visible.
func (h *Handler) PublishBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogs.Publish(c.Request.Context(), id, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, blog)
}

// DelistBlog returns a blog to draft.
func (h *Handler) DelistBlog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blog, err := h.blogs.Delist(c.Request.Context(), id, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, blog)
}

// AddBlogTags links tags to a blog.
func (h *Handler) AddBlogTags(c *gin.Context) {
	h.tagOperation(c, h.blogs.AddTags)
}

// RemoveBlogTags unlinks tags from a blog.
func (h *Handler) RemoveBlogTags(c *gin.Context) {
	h.tagOperation(c, h.blogs.RemoveTags)
}

func (h *Handler) tagOperation(c *gin.Context, op func(context.Context, uint, string, []string) (*domain.BlogDetail, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.TagOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	blog, err := op(c.Request.Context(), id, middleware.Username(c), req.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, blog)
}
