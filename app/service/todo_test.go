package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/repository"
	"github.com/DevRyuki/todo-with-cline/app/service"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertTodoQuery   = `(?s)INSERT INTO todos \(title, description, completed, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?\)`
	listTodosQuery    = `(?s)SELECT id, title, description, completed, created_at, updated_at\s+FROM todos ORDER BY id`
	findTodoByIDQuery = `(?s)SELECT id, title, description, completed, created_at, updated_at\s+FROM todos WHERE id = \?`
	updateTodoQuery   = `(?s)UPDATE todos SET\s+title = \?,\s+description = \?,\s+completed = \?,\s+updated_at = \?\s+WHERE id = \?`
	deleteTodoStmt    = `(?s)DELETE FROM todos WHERE id = \?`
)

var todoColumns = []string{"id", "title", "description", "completed", "created_at", "updated_at"}

func newTodoService(t *testing.T) (*service.TodoService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return service.NewTodoService(repository.NewTodoRepository(db)), mock, func() { _ = db.Close() }
}

func TestTodoService_Create(t *testing.T) {
	t.Run("defaults to not completed with matching timestamps", func(t *testing.T) {
		svc, mock, cleanup := newTodoService(t)
		defer cleanup()

		mock.ExpectExec(insertTodoQuery).
			WithArgs("buy milk", sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		todo, err := svc.Create(context.Background(), "buy milk", "", false)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if todo.ID != 1 {
			t.Errorf("expected id 1, got %d", todo.ID)
		}
		if todo.Completed {
			t.Error("expected new todo to be incomplete")
		}
		if !todo.CreatedAt.Equal(todo.UpdatedAt) {
			t.Error("expected created_at and updated_at to match at creation")
		}
		if todo.Description.Valid {
			t.Error("expected empty description to be null")
		}
	})

	t.Run("stores description when provided", func(t *testing.T) {
		svc, mock, cleanup := newTodoService(t)
		defer cleanup()

		mock.ExpectExec(insertTodoQuery).
			WithArgs("buy milk", sql.NullString{String: "two liters", Valid: true}, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(2, 1))

		todo, err := svc.Create(context.Background(), "buy milk", "two liters", false)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if !todo.Description.Valid || todo.Description.String != "two liters" {
			t.Errorf("unexpected description: %+v", todo.Description)
		}
	})
}

func TestTodoService_Get(t *testing.T) {
	svc, mock, cleanup := newTodoService(t)
	defer cleanup()

	mock.ExpectQuery(findTodoByIDQuery).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(todoColumns))

	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, service.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_List(t *testing.T) {
	svc, mock, cleanup := newTodoService(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows(todoColumns).
		AddRow(1, "first", nil, false, now, now).
		AddRow(2, "second", "desc", true, now, now)
	mock.ExpectQuery(listTodosQuery).WillReturnRows(rows)

	todos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
}

func TestTodoService_Update(t *testing.T) {
	t.Run("missing todo", func(t *testing.T) {
		svc, mock, cleanup := newTodoService(t)
		defer cleanup()

		mock.ExpectQuery(findTodoByIDQuery).
			WithArgs(uint64(42)).
			WillReturnRows(sqlmock.NewRows(todoColumns))

		_, err := svc.Update(context.Background(), 42, service.TodoPatch{})
		if !errors.Is(err, service.ErrTodoNotFound) {
			t.Fatalf("expected ErrTodoNotFound, got %v", err)
		}
	})

	t.Run("applies only provided fields", func(t *testing.T) {
		svc, mock, cleanup := newTodoService(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery(findTodoByIDQuery).
			WithArgs(uint64(3)).
			WillReturnRows(sqlmock.NewRows(todoColumns).
				AddRow(3, "original", "keep me", false, now, now))

		completed := true
		mock.ExpectExec(updateTodoQuery).
			WithArgs("original", sql.NullString{String: "keep me", Valid: true}, true, sqlmock.AnyArg(), uint64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		todo, err := svc.Update(context.Background(), 3, service.TodoPatch{Completed: &completed})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if !todo.Completed {
			t.Error("expected todo to be completed")
		}
		if todo.Title != "original" {
			t.Errorf("title should be untouched, got %s", todo.Title)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestTodoService_Delete(t *testing.T) {
	svc, mock, cleanup := newTodoService(t)
	defer cleanup()

	mock.ExpectExec(deleteTodoStmt).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}

	mock.ExpectExec(deleteTodoStmt).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Delete(context.Background(), 3); !errors.Is(err, service.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound on second delete, got %v", err)
	}
}
