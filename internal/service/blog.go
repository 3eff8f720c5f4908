package service

import (
	"context"
	"time"

	"inkwell/internal/audit"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/pkg/log"
)

// BlogService handles the blog lifecycle: drafting, publishing, tagging and
// deletion, with daily creation limits enforced per author.
type BlogService struct {
	blogs    repository.BlogRepository
	tags     repository.TagRepository
	activity repository.ActivityRepository
	now      func() time.Time
}

// NewBlogService wires the blog service.
func NewBlogService(
	blogs repository.BlogRepository,
	tags repository.TagRepository,
	activity repository.ActivityRepository,
) *BlogService {
	return &BlogService{
		blogs:    blogs,
		tags:     tags,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create drafts a new blog for author. The author's daily blog allowance is
// checked first and consumed only after the row is written.
func (s *BlogService) Create(ctx context.Context, author string, req domain.BlogEditRequest) (*domain.BlogDetail, error) {
	tags, err := domain.NormalizeTagNames(req.Tags)
	if err != nil {
		return nil, err
	}

	day := s.now()
	if err := checkAllowance(ctx, s.activity, author, day, allowanceBlogs); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Status:         domain.BlogStatusDraft,
		AuthorUsername: author,
	}
	if req.Subject != nil {
		blog.Subject = *req.Subject
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if err := s.blogs.Create(ctx, blog, tags); err != nil {
		return nil, err
	}
	if err := s.activity.IncrementBlogs(ctx, author, day); err != nil {
		return nil, err
	}

	audit.Record(audit.ActionBlogCreate, author).WithBlog(blog.ID).Log(ctx)
	return s.detail(ctx, blog.ID)
}

// Get returns one blog. Drafts are visible to their author only; everyone
// else sees not-found, so draft existence does not leak.
func (s *BlogService) Get(ctx context.Context, id uint, viewer string) (*domain.BlogDetail, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.BlogStatusPublished && blog.AuthorUsername != viewer {
		return nil, repository.ErrBlogNotFound
	}
	d := domain.NewBlogDetail(blog)
	return &d, nil
}

// Update patches a blog's fields. A non-nil Tags slice replaces the tag
// set; tags orphaned by the replacement are garbage-collected afterwards.
func (s *BlogService) Update(ctx context.Context, id uint, actor string, req domain.BlogEditRequest) (*domain.BlogDetail, error) {
	blog, err := s.ownedBlog(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	var tags []string
	if req.Tags != nil {
		tags, err = domain.NormalizeTagNames(req.Tags)
		if err != nil {
			return nil, err
		}
	}
	if req.Subject != nil {
		blog.Subject = *req.Subject
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if err := s.blogs.Update(ctx, blog, tags); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		s.cleanupOrphans(ctx)
	}

	audit.Record(audit.ActionBlogUpdate, actor).WithBlog(id).Log(ctx)
	return s.detail(ctx, id)
}

// Publish makes a blog visible to search and other readers.
func (s *BlogService) Publish(ctx context.Context, id uint, actor string) (*domain.BlogDetail, error) {
	return s.setStatus(ctx, id, actor, domain.BlogStatusPublished, audit.ActionBlogPublish)
}

// Delist returns a blog to draft, hiding it from everyone but its author.
func (s *BlogService) Delist(ctx context.Context, id uint, actor string) (*domain.BlogDetail, error) {
	return s.setStatus(ctx, id, actor, domain.BlogStatusDraft, audit.ActionBlogDelist)
}

func (s *BlogService) setStatus(ctx context.Context, id uint, actor string, status domain.BlogStatus, action audit.Action) (*domain.BlogDetail, error) {
	if _, err := s.ownedBlog(ctx, id, actor); err != nil {
		return nil, err
	}
	if err := s.blogs.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	audit.Record(action, actor).WithBlog(id).Log(ctx)
	return s.detail(ctx, id)
}

// Delete removes a blog with its comments and tag links, then collects any
// tags left orphaned.
func (s *BlogService) Delete(ctx context.Context, id uint, actor string) error {
	if _, err := s.ownedBlog(ctx, id, actor); err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}
	s.cleanupOrphans(ctx)

	audit.Record(audit.ActionBlogDelete, actor).WithBlog(id).Log(ctx)
	return nil
}

// AddTags links tags to a blog, creating unseen tag names.
func (s *BlogService) AddTags(ctx context.Context, id uint, actor string, names []string) (*domain.BlogDetail, error) {
	tags, err := domain.NormalizeTagNames(names)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBlog(ctx, id, actor); err != nil {
		return nil, err
	}
	if err := s.blogs.AddTags(ctx, id, tags); err != nil {
		return nil, err
	}

	audit.Record(audit.ActionTagsAdd, actor).WithBlog(id).Log(ctx)
	return s.detail(ctx, id)
}

// RemoveTags unlinks tags from a blog and garbage-collects orphans.
func (s *BlogService) RemoveTags(ctx context.Context, id uint, actor string, names []string) (*domain.BlogDetail, error) {
	tags, err := domain.NormalizeTagNames(names)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBlog(ctx, id, actor); err != nil {
		return nil, err
	}
	if err := s.blogs.RemoveTags(ctx, id, tags); err != nil {
		return nil, err
	}
	s.cleanupOrphans(ctx)

	audit.Record(audit.ActionTagsRemove, actor).WithBlog(id).Log(ctx)
	return s.detail(ctx, id)
}

// ListByAuthor pages a user's blogs. Drafts appear only when the viewer is
// the author.
func (s *BlogService) ListByAuthor(ctx context.Context, author, viewer string, page, size int) (domain.Page[domain.BlogSummary], error) {
	var empty domain.Page[domain.BlogSummary]

	page, size = domain.NormalizePaging(page, size)
	blogs, total, err := s.blogs.ListByAuthor(ctx, author, author == viewer, page, size)
	if err != nil {
		return empty, err
	}

	items := make([]domain.BlogSummary, 0, len(blogs))
	for i := range blogs {
		items = append(items, domain.NewBlogSummary(&blogs[i]))
	}
	return domain.NewPage(items, page, size, total), nil
}

// ListTags returns the full tag vocabulary alphabetically.
func (s *BlogService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *BlogService) ownedBlog(ctx context.Context, id uint, actor string) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorUsername != actor {
		return nil, ErrNotOwner
	}
	return blog, nil
}

func (s *BlogService) detail(ctx context.Context, id uint) (*domain.BlogDetail, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := domain.NewBlogDetail(blog)
	return &d, nil
}

// cleanupOrphans is best-effort; a failed sweep leaves unreferenced tag
// rows that the next sweep picks up.
func (s *BlogService) cleanupOrphans(ctx context.Context) {
	l := log.Ctx(ctx)
	removed, err := s.tags.CleanupOrphans(ctx)
	if err != nil {
		l.Warn().Err(err).Msg("orphan tag cleanup failed")
		return
	}
	if removed > 0 {
		l.Debug().Int64("removed", removed).Msg("collected orphan tags")
	}
}

type allowanceKind int

const (
	allowanceBlogs allowanceKind = iota
	allowanceComments
)

// checkAllowance enforces the per-day creation limit for blogs or
// comments, lazily creating the day's counter row.
func checkAllowance(ctx context.Context, activity repository.ActivityRepository, username string, day time.Time, kind allowanceKind) error {
	limits, err := activity.GetLimits(ctx, username)
	if err != nil {
		return err
	}
	row, err := activity.EnsureDay(ctx, username, day)
	if err != nil {
		return err
	}
	switch kind {
	case allowanceBlogs:
		if row.BlogsMade >= limits.BlogCreationLimit {
			return ErrBlogLimitReached
		}
	case allowanceComments:
		if row.CommentsMade >= limits.CommentCreationLimit {
			return ErrCommentLimitReached
		}
	}
	return nil
}
