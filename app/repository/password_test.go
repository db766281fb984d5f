package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
	"github.com/DevRyuki/todo-with-cline/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertPasswordQuery       = `(?s)INSERT INTO passwords \(user_id, hash, updated_at\)\s+VALUES \(\?, \?, \?\)`
	findPasswordByUserIDQuery = `(?s)SELECT user_id, hash, updated_at\s+FROM passwords WHERE user_id = \?`
	updatePasswordHashQuery   = `(?s)UPDATE passwords SET hash = \?, updated_at = \? WHERE user_id = \?`
)

var passwordColumns = []string{
	"user_id",
	"hash",
	"updated_at",
}

func TestPasswordRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPasswordRepository(db)
	now := time.Now()
	password := &entity.Password{
		UserID:    "user-id",
		Hash:      "$2a$10$hash",
		UpdatedAt: now,
	}

	mock.ExpectExec(insertPasswordQuery).
		WithArgs(password.UserID, password.Hash, password.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), password); err != nil {
		t.Fatalf("create failed: %v", err)
	}
}

func TestPasswordRepository_FindByUserID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPasswordRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(passwordColumns).
			AddRow("user-id", "$2a$10$hash", time.Now())
		mock.ExpectQuery(findPasswordByUserIDQuery).
			WithArgs("user-id").
			WillReturnRows(rows)

		password, err := repo.FindByUserID(context.Background(), "user-id")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if password == nil {
			t.Fatal("expected password, got nil")
		}
		if password.Hash != "$2a$10$hash" {
			t.Errorf("unexpected hash: %s", password.Hash)
		}
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(findPasswordByUserIDQuery).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(passwordColumns))

		password, err := repo.FindByUserID(context.Background(), "missing")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if password != nil {
			t.Fatalf("expected nil, got %+v", password)
		}
	})
}

func TestPasswordRepository_UpdateHash(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPasswordRepository(db)

	mock.ExpectExec(updatePasswordHashQuery).
		WithArgs("$2a$10$newhash", sqlmock.AnyArg(), "user-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateHash(context.Background(), "user-id", "$2a$10$newhash"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
