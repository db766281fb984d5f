package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
)

type VerificationTokenRepository struct {
	db DBTX
}

func NewVerificationTokenRepository(db DBTX) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

func (r *VerificationTokenRepository) WithTx(tx *sql.Tx) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: tx}
}

func (r *VerificationTokenRepository) Create(ctx context.Context, token *entity.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (identifier, token, expires)
		VALUES (?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.Identifier,
		token.Token,
		token.Expires,
	)
	return err
}

func (r *VerificationTokenRepository) FindByToken(ctx context.Context, token string) (*entity.VerificationToken, error) {
	query := `
		SELECT identifier, token, expires
		FROM verification_tokens WHERE token = ?
	`
	vt := &entity.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&vt.Identifier,
		&vt.Token,
		&vt.Expires,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vt, nil
}

// DeleteByIdentifier invalidates every outstanding token for an email.
func (r *VerificationTokenRepository) DeleteByIdentifier(ctx context.Context, identifier string) error {
	query := `DELETE FROM verification_tokens WHERE identifier = ?`
	_, err := r.db.ExecContext(ctx, query, identifier)
	return err
}

func (r *VerificationTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM verification_tokens WHERE token = ?`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *VerificationTokenRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM verification_tokens WHERE expires < ?`
	_, err := r.db.ExecContext(ctx, query, time.Now())
	return err
}
