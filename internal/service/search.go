package service

import (
	"context"
	"strings"

	"inkwell/internal/domain"
	"inkwell/internal/repository"
)

// SearchService answers published-blog searches combining free text,
// tag filters, author filters and comment-sentiment filters.
type SearchService struct {
	blogs repository.BlogRepository
}

// NewSearchService wires the search service.
func NewSearchService(blogs repository.BlogRepository) *SearchService {
	return &SearchService{blogs: blogs}
}

// Search runs one search. Free text becomes a boolean-mode prefix query so
// word prefixes match; blank filter values are dropped rather than
// rejected.
func (s *SearchService) Search(ctx context.Context, params domain.BlogSearchParams) (domain.Page[domain.BlogSummary], error) {
	var empty domain.Page[domain.BlogSummary]

	page, size := domain.NormalizePaging(params.Page, params.Size)
	q := repository.SearchQuery{
		BooleanQuery:         repository.BuildBooleanQuery(params.Search),
		Tags:                 normalizeFilterValues(params.Tags, true),
		TagsMatchAll:         params.TagsMatchAll,
		Authors:              normalizeFilterValues(params.Authors, false),
		PositiveCommentsOnly: params.PositiveCommentsOnly,
		SortBy:               domain.ParseBlogSortBy(params.SortBy),
		SortOrder:            domain.ParseSortOrder(params.SortOrder),
		Page:                 page,
		Size:                 size,
	}

	blogs, total, err := s.blogs.Search(ctx, q)
	if err != nil {
		return empty, err
	}

	items := make([]domain.BlogSummary, 0, len(blogs))
	for i := range blogs {
		items = append(items, domain.NewBlogSummary(&blogs[i]))
	}
	return domain.NewPage(items, page, size, total), nil
}

// normalizeFilterValues trims, optionally lowercases, and deduplicates
// filter values, dropping blanks.
func normalizeFilterValues(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
