package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialblog/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// listColumns resolves the author username and group title/slug in the
// same query, so feed pages render without per-post lookups.
const listColumns = `
	p.post_id, p.author_id, p.group_id, p.text, p.image_path, p.created_at,
	u.username AS author_username, g.title AS group_title, g.slug AS group_slug
`

const listJoins = `
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN groups g ON g.group_id = p.group_id
`

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (post_id, author_id, group_id, text, image_path, created_at)
		VALUES (:post_id, :author_id, :group_id, :text, :image_path, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	// Publication time is assigned once and never updated afterwards.
	post.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + listColumns + listJoins + ` WHERE p.post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) ListAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + listColumns + listJoins + ` ORDER BY p.created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByGroup(ctx context.Context, groupID string) ([]models.Post, error) {
	query := `SELECT ` + listColumns + listJoins + ` WHERE p.group_id = $1 ORDER BY p.created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `SELECT ` + listColumns + listJoins + ` WHERE p.author_id = $1 ORDER BY p.created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListBySubscriber(ctx context.Context, userID string) ([]models.Post, error) {
	query := `SELECT ` + listColumns + listJoins + `
		JOIN follows f ON f.author_id = p.author_id
		WHERE f.user_id = $1
		ORDER BY p.created_at DESC`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	// created_at and author_id deliberately not in the SET list.
	query := `
		UPDATE posts SET
			text = :text,
			group_id = :group_id,
			image_path = :image_path
		WHERE post_id = :post_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete post comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}
