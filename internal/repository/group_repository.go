package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialblog/internal/models"
)

type GroupRepositoryImpl struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepositoryImpl {
	return &GroupRepositoryImpl{db: db}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (group_id, title, slug, description)
		VALUES (:group_id, :title, :slug, :description)
	`

	if group.GroupID == "" {
		group.GroupID = uuid.New().String()
	}

	_, err := r.db.NamedExecContext(ctx, query, group)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("group slug %q already taken: %w", group.Slug, err)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

func (r *GroupRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `SELECT * FROM groups WHERE slug = $1`

	var group models.Group
	err := r.db.GetContext(ctx, &group, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &group, nil
}

func (r *GroupRepositoryImpl) List(ctx context.Context) ([]models.Group, error) {
	query := `SELECT * FROM groups ORDER BY title`

	var groups []models.Group
	err := r.db.SelectContext(ctx, &groups, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	return groups, nil
}

// Delete detaches the group's posts instead of removing them: a post
// outlives its group with group_id set to NULL.
func (r *GroupRepositoryImpl) Delete(ctx context.Context, groupID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE posts SET group_id = NULL WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to detach posts from group: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE group_id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
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
