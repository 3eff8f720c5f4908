package service

import (
	"context"
	"time"

	"inkwell/internal/audit"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

// CommentService handles threaded comments and the rules that govern them:
// no top-level comment on your own blog, one top-level comment per user
// per blog, no replying to yourself, and a daily creation allowance.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	activity repository.ActivityRepository
	now      func() time.Time
}

// NewCommentService wires the comment service.
func NewCommentService(
	comments repository.CommentRepository,
	blogs repository.BlogRepository,
	activity repository.ActivityRepository,
) *CommentService {
	return &CommentService{
		comments: comments,
		blogs:    blogs,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create posts a root comment or reply on a published blog.
func (s *CommentService) Create(ctx context.Context, blogID uint, author string, req domain.CommentCreateRequest) (*domain.CommentResponse, error) {
	if !req.Sentiment.Valid() {
		return nil, ErrInvalidSentiment
	}

	blog, err := s.visibleBlog(ctx, blogID, author)
	if err != nil {
		return nil, err
	}

	if req.ParentCommentID == nil {
		if blog.AuthorUsername == author {
			return nil, ErrOwnBlogRootComment
		}
		exists, err := s.comments.HasRootComment(ctx, blogID, author)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateRootComment
		}
	} else {
		parent, err := s.comments.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.BlogID != blogID {
			return nil, ErrParentMismatch
		}
		if parent.AuthorUsername == author {
			return nil, ErrSelfReply
		}
	}

	day := s.now()
	if err := checkAllowance(ctx, s.activity, author, day, allowanceComments); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:         req.Content,
		Sentiment:       req.Sentiment,
		BlogID:          blogID,
		AuthorUsername:  author,
		ParentCommentID: req.ParentCommentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.activity.IncrementComments(ctx, author, day); err != nil {
		return nil, err
	}

	audit.Record(audit.ActionCommentCreate, author).WithBlog(blogID).WithComment(comment.ID).Log(ctx)
	resp := domain.NewCommentResponse(comment, 0)
	return &resp, nil
}

// ListRoots pages a blog's top-level comments oldest-first with reply
// counts.
func (s *CommentService) ListRoots(ctx context.Context, blogID uint, viewer string, page, size int) (domain.Page[domain.CommentResponse], error) {
	var empty domain.Page[domain.CommentResponse]

	if _, err := s.visibleBlog(ctx, blogID, viewer); err != nil {
		return empty, err
	}

	page, size = domain.NormalizePaging(page, size)
	comments, replyCounts, total, err := s.comments.ListRoots(ctx, blogID, page, size)
	if err != nil {
		return empty, err
	}

	items := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		items = append(items, domain.NewCommentResponse(c, replyCounts[c.ID]))
	}
	return domain.NewPage(items, page, size, total), nil
}

// ListReplies pages a comment's direct replies oldest-first.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint, page, size int) (domain.Page[domain.CommentResponse], error) {
	var empty domain.Page[domain.CommentResponse]

	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return empty, err
	}

	page, size = domain.NormalizePaging(page, size)
	comments, total, err := s.comments.ListReplies(ctx, commentID, page, size)
	if err != nil {
		return empty, err
	}

	items := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, domain.NewCommentResponse(&comments[i], 0))
	}
	return domain.NewPage(items, page, size, total), nil
}

// Update patches the comment's content and/or sentiment. Only the comment
// author may edit.
func (s *CommentService) Update(ctx context.Context, commentID uint, actor string, req domain.CommentUpdateRequest) (*domain.CommentResponse, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorUsername != actor {
		return nil, ErrNotOwner
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	if req.Sentiment != nil {
		if !req.Sentiment.Valid() {
			return nil, ErrInvalidSentiment
		}
		comment.Sentiment = *req.Sentiment
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	audit.Record(audit.ActionCommentUpdate, actor).WithBlog(comment.BlogID).WithComment(commentID).Log(ctx)
	resp := domain.NewCommentResponse(comment, 0)
	return &resp, nil
}

// Delete removes the comment and its reply subtree. Only the comment
// author may delete.
func (s *CommentService) Delete(ctx context.Context, commentID uint, actor string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorUsername != actor {
		return ErrNotOwner
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	audit.Record(audit.ActionCommentDelete, actor).WithBlog(comment.BlogID).WithComment(commentID).Log(ctx)
	return nil
}

// visibleBlog resolves a blog as seen by viewer: published blogs for
// everyone, drafts for their author only.
func (s *CommentService) visibleBlog(ctx context.Context, blogID uint, viewer string) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.BlogStatusPublished && blog.AuthorUsername != viewer {
		return nil, repository.ErrBlogNotFound
	}
	return blog, nil
}
