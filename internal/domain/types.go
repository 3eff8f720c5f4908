package domain

import "strings"

// Sentiment classifies a comment as positive or negative.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is a recognized sentiment value.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative
}

// BlogStatus is the publication state of a blog.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Valid reports whether s is a recognized blog status.
func (s BlogStatus) Valid() bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}

// BlogSortBy names a sortable blog column for search results.
type BlogSortBy string

const (
	SortByRelevance BlogSortBy = "relevance"
	SortByCreatedAt BlogSortBy = "created_at"
	SortByUpdatedAt BlogSortBy = "updated_at"
	SortBySubject   BlogSortBy = "subject"
)

// ParseBlogSortBy maps a query-string value to a sort column. Unknown and
// empty values fall back to relevance ordering.
func ParseBlogSortBy(s string) BlogSortBy {
	switch BlogSortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByCreatedAt:
		return SortByCreatedAt
	case SortByUpdatedAt:
		return SortByUpdatedAt
	case SortBySubject:
		return SortBySubject
	default:
		return SortByRelevance
	}
}

// SortOrder is an ascending or descending result ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder maps a query-string value to a sort order, defaulting to
// descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortAsc {
		return SortAsc
	}
	return SortDesc
}
