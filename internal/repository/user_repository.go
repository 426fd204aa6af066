package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"socialblog/internal/models"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) CreateUser(ctx context.Context, user *models.User, password string) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, created_at)
		VALUES (:user_id, :username, :email, :password_hash, :created_at)
	`

	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT * FROM users WHERE username = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return user, nil
}

// DeleteUser removes the user together with their posts, comments and
// follow edges. The schema declares the same cascades, but they are
// performed explicitly here inside one transaction so the rules hold on
// stores without referential actions.
func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM comments WHERE author_id = $1`,
		`DELETE FROM comments WHERE post_id IN (SELECT post_id FROM posts WHERE author_id = $1)`,
		`DELETE FROM posts WHERE author_id = $1`,
		`DELETE FROM follows WHERE user_id = $1 OR author_id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, userID); err != nil {
			return fmt.Errorf("failed to cascade user delete: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

func (r *UserRepositoryImpl) CountPostsByAuthor(ctx context.Context, authorID string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE author_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}
