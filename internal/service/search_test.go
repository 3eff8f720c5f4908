package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
)

func searchSubjects(p domain.Page[domain.BlogSummary]) []string {
	subjects := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		subjects = append(subjects, item.Subject)
	}
	return subjects
}

func TestSearchOnlyPublished(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	e.seedBlog(t, "alice_writer", "Visible", domain.BlogStatusPublished)
	e.seedBlog(t, "alice_writer", "Invisible", domain.BlogStatusDraft)

	result, err := e.search.Search(ctx, domain.BlogSearchParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Visible"}, searchSubjects(result))
	assert.Equal(t, int64(1), result.Meta.Total)
}

func TestSearchByAuthor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")

	e.seedBlog(t, "alice_writer", "By alice", domain.BlogStatusPublished)
	e.seedBlog(t, "bob_reader", "By bob", domain.BlogStatusPublished)

	result, err := e.search.Search(ctx, domain.BlogSearchParams{Authors: []string{"alice_writer"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"By alice"}, searchSubjects(result))
}

func TestSearchByTagsAnyOf(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	e.seedBlog(t, "alice_writer", "Go only", domain.BlogStatusPublished, "go")
	e.seedBlog(t, "alice_writer", "Rust only", domain.BlogStatusPublished, "rust")
	e.seedBlog(t, "alice_writer", "Both", domain.BlogStatusPublished, "go", "rust")
	e.seedBlog(t, "alice_writer", "Neither", domain.BlogStatusPublished, "python")

	result, err := e.search.Search(ctx, domain.BlogSearchParams{Tags: []string{"go", "rust"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go only", "Rust only", "Both"}, searchSubjects(result))
	// a blog matching both tags is still counted once
	assert.Equal(t, int64(3), result.Meta.Total)
}

func TestSearchByTagsMatchAll(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	e.seedBlog(t, "alice_writer", "Go only", domain.BlogStatusPublished, "go")
	e.seedBlog(t, "alice_writer", "Both", domain.BlogStatusPublished, "go", "rust")

	result, err := e.search.Search(ctx, domain.BlogSearchParams{
		Tags:         []string{"go", "rust"},
		TagsMatchAll: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Both"}, searchSubjects(result))
	assert.Equal(t, int64(1), result.Meta.Total)
}

func TestSearchPositiveCommentsOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")
	e.signup(t, "bob_reader")
	e.signup(t, "carol_posts")

	loved := e.seedBlog(t, "alice_writer", "Loved", domain.BlogStatusPublished)
	mixed := e.seedBlog(t, "alice_writer", "Mixed", domain.BlogStatusPublished)
	e.seedBlog(t, "alice_writer", "Uncommented", domain.BlogStatusPublished)

	e.seedComment(t, loved, "bob_reader", domain.SentimentPositive, nil)
	e.seedComment(t, loved, "carol_posts", domain.SentimentPositive, nil)
	e.seedComment(t, mixed, "bob_reader", domain.SentimentPositive, nil)
	e.seedComment(t, mixed, "carol_posts", domain.SentimentNegative, nil)

	result, err := e.search.Search(ctx, domain.BlogSearchParams{PositiveCommentsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Loved"}, searchSubjects(result))
}

func TestSearchPagination(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	for _, subject := range []string{"A", "B", "C", "D", "E"} {
		e.seedBlog(t, "alice_writer", subject, domain.BlogStatusPublished)
	}

	result, err := e.search.Search(ctx, domain.BlogSearchParams{
		SortBy:    "subject",
		SortOrder: "asc",
		Page:      2,
		Size:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, searchSubjects(result))
	assert.Equal(t, int64(5), result.Meta.Total)
	assert.Equal(t, 3, result.Meta.Pages)
	assert.True(t, result.Meta.HasNext)
	assert.True(t, result.Meta.HasPrev)
}

func TestSearchSortBySubjectDesc(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	e.seedBlog(t, "alice_writer", "Alpha", domain.BlogStatusPublished)
	e.seedBlog(t, "alice_writer", "Beta", domain.BlogStatusPublished)

	result, err := e.search.Search(ctx, domain.BlogSearchParams{SortBy: "subject", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Alpha"}, searchSubjects(result))
}

func TestSearchBlankFiltersDropped(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "alice_writer")

	e.seedBlog(t, "alice_writer", "Kept", domain.BlogStatusPublished, "go")

	result, err := e.search.Search(ctx, domain.BlogSearchParams{
		Tags:    []string{" ", ""},
		Authors: []string{"  "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kept"}, searchSubjects(result))
}
