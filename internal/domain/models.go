package domain

import (
	"time"
)

// User is the GORM model for the users table. Users are keyed by their
// immutable username rather than a surrogate ID.
type User struct {
	Username     string    `gorm:"type:varchar(50);primaryKey" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Blogs     []Blog              `gorm:"foreignKey:AuthorUsername" json:"-"`
	Comments  []Comment           `gorm:"foreignKey:AuthorUsername" json:"-"`
	Limits    *UserLimits         `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE" json:"-"`
	Activity  []UserDailyActivity `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE" json:"-"`
	Followers []UserFollow        `gorm:"foreignKey:FollowingUsername;constraint:OnDelete:CASCADE" json:"-"`
	Following []UserFollow        `gorm:"foreignKey:FollowerUsername;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// Blog is the GORM model for the blogs table. Subject, description and
// content are all optional; a blog starts life as an empty draft.
type Blog struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject        string     `gorm:"type:varchar(100)" json:"subject"`
	Description    string     `gorm:"type:text" json:"description"`
	Content        string     `gorm:"type:text" json:"content"`
	Status         BlogStatus `gorm:"type:varchar(16);not null;default:'draft';index:idx_blogs_status_created,priority:1" json:"status"`
	AuthorUsername string     `gorm:"type:varchar(50);not null;index" json:"author_username"`
	Upvotes        int        `gorm:"not null;default:0;check:upvotes >= 0" json:"upvotes"`
	Downvotes      int        `gorm:"not null;default:0;check:downvotes >= 0" json:"downvotes"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index:idx_blogs_status_created,priority:2" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Author   User      `gorm:"foreignKey:AuthorUsername" json:"-"`
	Tags     []Tag     `gorm:"many2many:blog_tags;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Blog.
func (Blog) TableName() string {
	return "blogs"
}

// TagNames returns the names of the loaded tag associations.
func (b *Blog) TagNames() []string {
	names := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Tag is content-addressed by its unique name. Tag rows referenced by zero
// blogs are orphans and get garbage-collected after tag-removal operations.
type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Blogs []Blog `gorm:"many2many:blog_tags;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Tag.
func (Tag) TableName() string {
	return "tags"
}

// Comment is a threaded comment on a blog. A nil ParentCommentID marks a
// root-level comment; replies cascade-delete with their parent.
type Comment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Sentiment       Sentiment `gorm:"type:varchar(16);not null;default:'negative'" json:"sentiment"`
	BlogID          uint      `gorm:"not null;index" json:"blog_id"`
	AuthorUsername  string    `gorm:"type:varchar(50);not null;index" json:"author_username"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Blog    Blog      `gorm:"foreignKey:BlogID" json:"-"`
	Author  User      `gorm:"foreignKey:AuthorUsername" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Comment.
func (Comment) TableName() string {
	return "comments"
}

// IsRoot reports whether the comment is attached directly to its blog.
func (c *Comment) IsRoot() bool {
	return c.ParentCommentID == nil
}

// UserFollow is a follow edge. The composite primary key doubles as the
// uniqueness guarantee; self-follows are rejected before the row is written
// and additionally blocked by a CHECK constraint.
type UserFollow struct {
	FollowerUsername  string    `gorm:"type:varchar(50);primaryKey;check:chk_no_self_follow,follower_username <> following_username" json:"follower_username"`
	FollowingUsername string    `gorm:"type:varchar(50);primaryKey" json:"following_username"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	Follower  User `gorm:"foreignKey:FollowerUsername;constraint:OnDelete:CASCADE" json:"-"`
	Following User `gorm:"foreignKey:FollowingUsername;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserFollow.
func (UserFollow) TableName() string {
	return "user_follows"
}

// UserDailyActivity stores per-user per-day creation counters. Rows are
// created lazily on the first gated action of a day; a missing row means
// zero activity. The date is stored as YYYY-MM-DD.
type UserDailyActivity struct {
	Username     string `gorm:"type:varchar(50);primaryKey" json:"username"`
	ActivityDate string `gorm:"type:date;primaryKey" json:"activity_date"`
	CommentsMade int    `gorm:"not null;default:0;check:comments_made >= 0" json:"comments_made"`
	BlogsMade    int    `gorm:"not null;default:0;check:blogs_made >= 0" json:"blogs_made"`

	User User `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserDailyActivity.
func (UserDailyActivity) TableName() string {
	return "user_daily_activity"
}

// ActivityDateLayout is the storage layout of UserDailyActivity.ActivityDate.
const ActivityDateLayout = "2006-01-02"

// UserLimits holds per-user daily creation limits, assigned once at signup
// from the configured defaults.
type UserLimits struct {
	Username             string `gorm:"type:varchar(50);primaryKey" json:"username"`
	CommentCreationLimit int    `gorm:"not null;default:0;check:comment_creation_limit >= 0" json:"comment_creation_limit"`
	BlogCreationLimit    int    `gorm:"not null;default:0;check:blog_creation_limit >= 0" json:"blog_creation_limit"`

	User User `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserLimits.
func (UserLimits) TableName() string {
	return "user_limits"
}

// AllModels lists every model for auto-migration, in FK dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&UserLimits{},
		&UserDailyActivity{},
		&UserFollow{},
		&Blog{},
		&Tag{},
		&Comment{},
	}
}
