package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkwell/internal/domain"
)

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a GORM-backed tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetOrCreate returns the tag with the given name, inserting it if needed.
// When tx is non-nil the lookup joins that transaction.
func (r *tagRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*domain.Tag, error) {
	if tx == nil {
		tx = r.db.WithContext(ctx)
	}
	return getOrCreateTag(tx, name)
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// CleanupOrphans deletes tag rows no blog references anymore. Runs outside
// the mutating transaction; a tag re-linked concurrently simply survives.
func (r *tagRepository) CleanupOrphans(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`DELETE FROM tags WHERE NOT EXISTS (
			SELECT 1 FROM blog_tags WHERE blog_tags.tag_id = tags.id
		)`,
	)
	return res.RowsAffected, res.Error
}

// getOrCreateTag is the shared lookup-then-insert used inside blog
// transactions. A duplicate-key race resolves by re-reading the winner.
func getOrCreateTag(tx *gorm.DB, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = domain.Tag{Name: name}
	if err := tx.Create(&tag).Error; err != nil {
		if IsDuplicate(err) {
			var existing domain.Tag
			if err2 := tx.Where("name = ?", name).First(&existing).Error; err2 == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &tag, nil
}

// linkTags attaches the named tags to the blog inside tx.
func linkTags(ctx context.Context, tx *gorm.DB, blog *domain.Blog, tags []string) error {
	for _, name := range tags {
		tag, err := getOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Model(blog).Association("Tags").Append(tag); err != nil {
			return err
		}
	}
	return nil
}
