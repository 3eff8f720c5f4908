package repository

import (
	"context"

	"gorm.io/gorm"

	"inkwell/internal/domain"
	"inkwell/pkg/database"
	"inkwell/pkg/log"
)

// Migrate runs schema auto-migration and, on MySQL, ensures the full-text
// index backing relevance search. Other dialects skip the index; free-text
// search degrades to a filterless query there.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := database.AutoMigrate(db, domain.AllModels()...); err != nil {
		return err
	}
	if !database.IsMySQL(db) {
		l := log.Ctx(ctx)
		l.Warn().
			Str("dialect", db.Dialector.Name()).
			Msg("skipping full-text index, relevance search requires mysql")
		return nil
	}
	return ensureFulltextIndex(db)
}

func ensureFulltextIndex(db *gorm.DB) error {
	var count int64
	err := db.Raw(
		`SELECT COUNT(*) FROM information_schema.statistics
		 WHERE table_schema = DATABASE() AND table_name = 'blogs' AND index_name = 'ft_blogs_text'`,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Exec(
		`CREATE FULLTEXT INDEX ft_blogs_text ON blogs (subject, description, content)`,
	).Error
}
