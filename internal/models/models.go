package models

import (
	"time"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Group struct {
	GroupID     string `json:"groupId" db:"group_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	GroupID   *string   `json:"groupId" db:"group_id"`
	Text      string    `json:"text" db:"text"`
	ImagePath *string   `json:"imagePath" db:"image_path"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Filled by the JOIN in list queries so templates never look up
	// authors or groups per post.
	AuthorUsername string  `json:"authorUsername" db:"author_username"`
	GroupTitle     *string `json:"groupTitle" db:"group_title"`
	GroupSlug      *string `json:"groupSlug" db:"group_slug"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

type Follow struct {
	FollowID  string    `json:"followId" db:"follow_id"`
	UserID    string    `json:"userId" db:"user_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
