package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
)

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) WithTx(tx *sql.Tx) *SessionRepository {
	return &SessionRepository{db: tx}
}

func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, session_token, user_id, expires)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.SessionToken,
		session.UserID,
		session.Expires,
	)
	return err
}

func (r *SessionRepository) FindBySessionToken(ctx context.Context, sessionToken string) (*entity.Session, error) {
	query := `
		SELECT id, session_token, user_id, expires
		FROM sessions WHERE session_token = ?
	`
	session := &entity.Session{}
	err := r.db.QueryRowContext(ctx, query, sessionToken).Scan(
		&session.ID,
		&session.SessionToken,
		&session.UserID,
		&session.Expires,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) DeleteBySessionToken(ctx context.Context, sessionToken string, userID string) (int64, error) {
	query := `DELETE FROM sessions WHERE session_token = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, sessionToken, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM sessions WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires < ?`
	_, err := r.db.ExecContext(ctx, query, time.Now())
	return err
}
