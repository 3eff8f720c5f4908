package domain

import "time"

// SignupRequest carries the fields required to register a new account.
type SignupRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest carries credentials for password authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token to exchange for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse is returned on successful signup, login or refresh.
type AuthResponse struct {
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// PublicProfile is the profile view any caller may see.
type PublicProfile struct {
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// PrivateProfile extends the public view with contact details and limits,
// visible only to the account owner.
type PrivateProfile struct {
	PublicProfile
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	BlogCreationLimit    int    `json:"blog_creation_limit"`
	CommentCreationLimit int    `json:"comment_creation_limit"`
}

// BlogEditRequest patches a blog. Nil fields are left unchanged; a non-nil
// Tags slice replaces the blog's tag set wholesale.
type BlogEditRequest struct {
	Subject     *string  `json:"subject"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags"`
}

// TagOperationRequest names tags to add to or remove from a blog.
type TagOperationRequest struct {
	Tags []string `json:"tags" binding:"required,min=1"`
}

// BlogSummary is the list-view projection of a blog.
type BlogSummary struct {
	ID             uint       `json:"id"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	Status         BlogStatus `json:"status"`
	AuthorUsername string     `json:"author_username"`
	Tags           []string   `json:"tags"`
	Upvotes        int        `json:"upvotes"`
	Downvotes      int        `json:"downvotes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewBlogSummary projects a blog row (with tags preloaded) to its summary.
func NewBlogSummary(b *Blog) BlogSummary {
	tags := b.TagNames()
	if tags == nil {
		tags = []string{}
	}
	return BlogSummary{
		ID:             b.ID,
		Subject:        b.Subject,
		Description:    b.Description,
		Status:         b.Status,
		AuthorUsername: b.AuthorUsername,
		Tags:           tags,
		Upvotes:        b.Upvotes,
		Downvotes:      b.Downvotes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// BlogDetail is the full single-blog projection.
type BlogDetail struct {
	BlogSummary
	Content string `json:"content"`
}

// NewBlogDetail projects a blog row (with tags preloaded) to its detail view.
func NewBlogDetail(b *Blog) BlogDetail {
	return BlogDetail{BlogSummary: NewBlogSummary(b), Content: b.Content}
}

// BlogSearchParams are the bound query parameters of a blog search.
type BlogSearchParams struct {
	Search               string   `form:"search"`
	Tags                 []string `form:"tags"`
	TagsMatchAll         bool     `form:"tags_match_all"`
	Authors              []string `form:"authors"`
	PositiveCommentsOnly bool     `form:"positive_comments_only"`
	SortBy               string   `form:"sort_by"`
	SortOrder            string   `form:"sort_order"`
	Page                 int      `form:"page"`
	Size                 int      `form:"size"`
}

// CommentCreateRequest creates a root comment or a reply on a blog.
type CommentCreateRequest struct {
	Content         string    `json:"content" binding:"required"`
	Sentiment       Sentiment `json:"sentiment" binding:"required"`
	ParentCommentID *uint     `json:"parent_comment_id"`
}

// CommentUpdateRequest patches a comment's content and/or sentiment.
type CommentUpdateRequest struct {
	Content   *string    `json:"content"`
	Sentiment *Sentiment `json:"sentiment"`
}

// CommentResponse is the wire projection of a comment.
type CommentResponse struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	Sentiment       Sentiment `json:"sentiment"`
	BlogID          uint      `json:"blog_id"`
	AuthorUsername  string    `json:"author_username"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty"`
	ReplyCount      int64     `json:"reply_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewCommentResponse projects a comment row to its wire form.
func NewCommentResponse(c *Comment, replyCount int64) CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		Content:         c.Content,
		Sentiment:       c.Sentiment,
		BlogID:          c.BlogID,
		AuthorUsername:  c.AuthorUsername,
		ParentCommentID: c.ParentCommentID,
		ReplyCount:      replyCount,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// UserCommentResponse is a comment as listed on a user's profile, carrying
// the subject of the blog it was posted under.
type UserCommentResponse struct {
	CommentResponse
	BlogSubject string `json:"blog_subject"`
}

// DiscoveryParams are the bound query parameters of a user discovery search.
// Exactly one mode is picked by fixed precedence; the rest are ignored.
type DiscoveryParams struct {
	Tags                      []string `form:"tags"`
	SameDayTags               bool     `form:"same_day_tags"`
	Date                      string   `form:"date"`
	FollowedBy                []string `form:"followed_by"`
	NeverPostedBlog           bool     `form:"never_posted_blog"`
	AllNegativeComments       bool     `form:"all_negative_comments"`
	NoNegativeCommentsOnBlogs bool     `form:"no_negative_comments_on_blogs"`
}

// DiscoveredUser is one row of a discovery result.
type DiscoveredUser struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FollowEdgeResponse is one row of a followers or following listing.
type FollowEdgeResponse struct {
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FollowedAt time.Time `json:"followed_at"`
}

// FollowStats summarizes a user's position in the follow graph.
type FollowStats struct {
	Username       string `json:"username"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}
