package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type FollowRepositoryImpl struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepositoryImpl {
	return &FollowRepositoryImpl{db: db}
}

// Create is idempotent: inserting an existing (user, author) pair is a
// no-op backed by the unique constraint on the edge.
func (r *FollowRepositoryImpl) Create(ctx context.Context, userID, authorID string) error {
	query := `
		INSERT INTO follows (follow_id, user_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, authorID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// Delete of an absent edge is a no-op, not an error.
func (r *FollowRepositoryImpl) Delete(ctx context.Context, userID, authorID string) error {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	return nil
}

func (r *FollowRepositoryImpl) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	query := `SELECT COUNT(*) FROM follows WHERE user_id = $1 AND author_id = $2`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}

	return count > 0, nil
}

func (r *FollowRepositoryImpl) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	query := `SELECT COUNT(*) FROM follows WHERE author_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}

	return count, nil
}
