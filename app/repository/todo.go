package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
)

type TodoRepository struct {
	db DBTX
}

func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) WithTx(tx *sql.Tx) *TodoRepository {
	return &TodoRepository{db: tx}
}

func (r *TodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	query := `
		INSERT INTO todos (title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	todo.ID = uint64(id)
	return nil
}

func (r *TodoRepository) List(ctx context.Context) ([]*entity.Todo, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []*entity.Todo{}
	for rows.Next() {
		todo := &entity.Todo{}
		if err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint64) (*entity.Todo, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM todos WHERE id = ?
	`
	todo := &entity.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	query := `
		UPDATE todos SET
			title = ?,
			description = ?,
			completed = ?,
			updated_at = ?
		WHERE id = ?
	`
	todo.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.UpdatedAt,
		todo.ID,
	)
	return err
}

func (r *TodoRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	query := `DELETE FROM todos WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
