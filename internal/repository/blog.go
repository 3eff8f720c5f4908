package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"inkwell/internal/domain"
	"inkwell/pkg/database"
)

const matchExpr = "MATCH(blogs.subject, blogs.description, blogs.content) AGAINST(? IN BOOLEAN MODE)"

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a GORM-backed blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts the blog and links its tags, creating tag rows on demand.
func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		return linkTags(ctx, tx, blog, tags)
	})
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.db.WithContext(ctx).Preload("Tags").First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &blog, nil
}

// Update saves the blog's scalar fields. A non-nil tags slice replaces the
// tag set; nil leaves associations untouched.
func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(blog).Updates(map[string]interface{}{
			"subject":     blog.Subject,
			"description": blog.Description,
			"content":     blog.Content,
		}).Error; err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		if err := tx.Model(blog).Association("Tags").Clear(); err != nil {
			return err
		}
		return linkTags(ctx, tx, blog, tags)
	})
}

func (r *blogRepository) UpdateStatus(ctx context.Context, id uint, status domain.BlogStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Blog{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// Delete removes the blog with its comments and tag links. Tag rows that
// become orphaned are left for CleanupOrphans.
func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM blog_tags WHERE blog_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Blog{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBlogNotFound
		}
		return nil
	})
}

// AddTags links the named tags to the blog, creating tag rows on demand.
// Already-linked tags are no-ops.
func (r *blogRepository) AddTags(ctx context.Context, id uint, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog domain.Blog
		if err := tx.First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlogNotFound
			}
			return err
		}
		return linkTags(ctx, tx, &blog, tags)
	})
}

// RemoveTags unlinks the named tags from the blog. Names the blog never
// carried are ignored.
func (r *blogRepository) RemoveTags(ctx context.Context, id uint, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog domain.Blog
		if err := tx.First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlogNotFound
			}
			return err
		}
		var rows []domain.Tag
		if err := tx.Where("name IN ?", tags).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Model(&blog).Association("Tags").Delete(rows)
	})
}

// ListByAuthor pages a user's blogs newest-first. Drafts are included only
// when the caller is the author.
func (r *blogRepository) ListByAuthor(ctx context.Context, username string, includeDrafts bool, page, size int) ([]domain.Blog, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("author_username = ?", username)
		if !includeDrafts {
			db = db.Where("status = ?", domain.BlogStatusPublished)
		}
		return db
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&domain.Blog{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []domain.Blog
	err := filter(r.db.WithContext(ctx)).
		Preload("Tags").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// Search runs the filter pipeline twice on fresh builders, once to count
// distinct matching blogs and once to fetch the requested page. Free-text
// relevance requires the MySQL full-text index; on other dialects the text
// filter is dropped and ordering falls back to recency.
func (r *blogRepository) Search(ctx context.Context, q SearchQuery) ([]domain.Blog, int64, error) {
	useText := q.BooleanQuery != "" && database.IsMySQL(r.db)

	build := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&domain.Blog{}).
			Where("blogs.status = ?", domain.BlogStatusPublished)
		if useText {
			db = db.Where(matchExpr+" > 0", q.BooleanQuery)
		}
		if len(q.Authors) > 0 {
			db = db.Where("blogs.author_username IN ?", q.Authors)
		}
		if len(q.Tags) > 0 {
			db = db.
				Joins("JOIN blog_tags ON blog_tags.blog_id = blogs.id").
				Joins("JOIN tags ON tags.id = blog_tags.tag_id").
				Where("tags.name IN ?", q.Tags).
				Group("blogs.id")
			if q.TagsMatchAll {
				db = db.Having("COUNT(DISTINCT tags.id) = ?", len(q.Tags))
			}
		}
		if q.PositiveCommentsOnly {
			db = db.
				Where("EXISTS (SELECT 1 FROM comments WHERE comments.blog_id = blogs.id)").
				Where("NOT EXISTS (SELECT 1 FROM comments WHERE comments.blog_id = blogs.id AND comments.sentiment <> ?)",
					domain.SentimentPositive)
		}
		return db
	}

	var total int64
	countQ := build().Select("blogs.id")
	if err := r.db.WithContext(ctx).Table("(?) AS matched", countQ).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageQ := build()
	if useText {
		pageQ = pageQ.Select("blogs.*, "+matchExpr+" AS relevance", q.BooleanQuery)
	} else {
		pageQ = pageQ.Select("blogs.*")
	}

	var blogs []domain.Blog
	err := pageQ.
		Preload("Tags").
		Order(searchOrder(q, useText)).
		Offset((q.Page - 1) * q.Size).
		Limit(q.Size).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// searchOrder builds the ORDER BY clause. When relevance is available it
// always leads, best match first regardless of the requested direction;
// the blog id breaks any remaining ties so paging is stable.
func searchOrder(q SearchQuery, useText bool) string {
	dir := "DESC"
	if q.SortOrder == domain.SortAsc {
		dir = "ASC"
	}

	var field string
	switch q.SortBy {
	case domain.SortByCreatedAt:
		field = "blogs.created_at"
	case domain.SortByUpdatedAt:
		field = "blogs.updated_at"
	case domain.SortBySubject:
		field = "blogs.subject"
	default:
		if useText {
			return "relevance DESC, blogs.id ASC"
		}
		return "blogs.created_at DESC, blogs.id ASC"
	}

	order := fmt.Sprintf("%s %s, blogs.id ASC", field, dir)
	if useText {
		order = "relevance DESC, " + order
	}
	return order
}

// BuildBooleanQuery turns free text into a boolean-mode prefix query.
// Each whitespace token is stripped of boolean operator characters and
// suffixed with * so partial words still match.
func BuildBooleanQuery(search string) string {
	fields := strings.Fields(search)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Map(func(r rune) rune {
			switch r {
			case '+', '-', '<', '>', '(', ')', '~', '*', '"', '@':
				return -1
			}
			return r
		}, f)
		if tok == "" {
			continue
		}
		terms = append(terms, tok+"*")
	}
	return strings.Join(terms, " ")
}
