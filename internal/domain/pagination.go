package domain

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageInfo describes one page of a paginated result set. Pages is never
// below 1 even when the result set is empty, so clients can always render
// "page X of Y".
type PageInfo struct {
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPageInfo computes pagination metadata for the given page, size and
// total row count.
func NewPageInfo(page, size int, total int64) PageInfo {
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return PageInfo{
		Page:    page,
		Size:    size,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Page is a paginated slice of items together with its metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageInfo `json:"meta"`
}

// NewPage wraps items with pagination metadata. A nil items slice is
// normalized to an empty one so the JSON encoding is always an array.
func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: NewPageInfo(page, size, total)}
}

// NormalizePaging clamps page and size to their valid ranges.
func NormalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}
