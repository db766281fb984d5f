package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
)

type PasswordRepository struct {
	db DBTX
}

func NewPasswordRepository(db DBTX) *PasswordRepository {
	return &PasswordRepository{db: db}
}

func (r *PasswordRepository) WithTx(tx *sql.Tx) *PasswordRepository {
	return &PasswordRepository{db: tx}
}

func (r *PasswordRepository) Create(ctx context.Context, password *entity.Password) error {
	query := `
		INSERT INTO passwords (user_id, hash, updated_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		password.UserID,
		password.Hash,
		password.UpdatedAt,
	)
	return err
}

func (r *PasswordRepository) FindByUserID(ctx context.Context, userID string) (*entity.Password, error) {
	query := `
		SELECT user_id, hash, updated_at
		FROM passwords WHERE user_id = ?
	`
	password := &entity.Password{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&password.UserID,
		&password.Hash,
		&password.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return password, nil
}

// UpdateHash replaces the stored hash for a user and bumps updated_at.
func (r *PasswordRepository) UpdateHash(ctx context.Context, userID, hash string) error {
	query := `
		UPDATE passwords SET hash = ?, updated_at = ? WHERE user_id = ?
	`
	_, err := r.db.ExecContext(ctx, query, hash, time.Now(), userID)
	return err
}
