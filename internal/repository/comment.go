package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a GORM-backed comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// HasRootComment reports whether username already has a root-level comment
// on the blog. Replies do not count.
func (r *commentRepository) HasRootComment(ctx context.Context, blogID uint, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("blog_id = ? AND author_username = ? AND parent_comment_id IS NULL", blogID, username).
		Count(&count).Error
	return count > 0, err
}

// ListRoots returns one page of a blog's root comments oldest-first, plus a
// reply count per returned comment.
func (r *commentRepository) ListRoots(ctx context.Context, blogID uint, page, size int) ([]domain.Comment, map[uint]int64, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("blog_id = ? AND parent_comment_id IS NULL", blogID).
		Count(&total).Error
	if err != nil {
		return nil, nil, 0, err
	}

	var comments []domain.Comment
	err = r.db.WithContext(ctx).
		Where("blog_id = ? AND parent_comment_id IS NULL", blogID).
		Order("created_at ASC, id ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, nil, 0, err
	}

	counts := make(map[uint]int64, len(comments))
	if len(comments) > 0 {
		ids := make([]uint, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		var rows []struct {
			ParentCommentID uint
			N               int64
		}
		err = r.db.WithContext(ctx).Model(&domain.Comment{}).
			Select("parent_comment_id, COUNT(*) AS n").
			Where("parent_comment_id IN ?", ids).
			Group("parent_comment_id").
			Scan(&rows).Error
		if err != nil {
			return nil, nil, 0, err
		}
		for _, row := range rows {
			counts[row.ParentCommentID] = row.N
		}
	}
	return comments, counts, total, nil
}

// ListReplies returns one page of a comment's direct replies oldest-first.
func (r *commentRepository) ListReplies(ctx context.Context, parentID uint, page, size int) ([]domain.Comment, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("parent_comment_id = ?", parentID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []domain.Comment
	err = r.db.WithContext(ctx).
		Where("parent_comment_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Model(comment).Updates(map[string]interface{}{
		"content":   comment.Content,
		"sentiment": comment.Sentiment,
	}).Error
}

// Delete removes the comment and, recursively, its reply subtree.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteReplies(tx, []uint{id}); err != nil {
			return err
		}
		res := tx.Delete(&domain.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return nil
	})
}

func deleteReplies(tx *gorm.DB, parentIDs []uint) error {
	var childIDs []uint
	err := tx.Model(&domain.Comment{}).
		Where("parent_comment_id IN ?", parentIDs).
		Pluck("id", &childIDs).Error
	if err != nil {
		return err
	}
	if len(childIDs) == 0 {
		return nil
	}
	if err := deleteReplies(tx, childIDs); err != nil {
		return err
	}
	return tx.Delete(&domain.Comment{}, childIDs).Error
}
