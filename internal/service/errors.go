package service

import "errors"

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotOwner           = errors.New("only the owner may modify this resource")

	ErrBlogLimitReached    = errors.New("daily blog creation limit reached")
	ErrCommentLimitReached = errors.New("daily comment creation limit reached")

	ErrOwnBlogRootComment   = errors.New("authors cannot leave a top-level comment on their own blog")
	ErrDuplicateRootComment = errors.New("users may leave only one top-level comment per blog")
	ErrSelfReply            = errors.New("users cannot reply to their own comment")
	ErrParentMismatch       = errors.New("parent comment belongs to a different blog")

	ErrSelfFollow = errors.New("users cannot follow themselves")

	ErrInvalidSentiment = errors.New("sentiment must be positive or negative")
)
