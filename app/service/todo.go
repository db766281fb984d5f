package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
	"github.com/DevRyuki/todo-with-cline/app/repository"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoPatch carries a partial update; nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

type TodoService struct {
	todoRepo *repository.TodoRepository
}

func NewTodoService(todoRepo *repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

func (s *TodoService) List(ctx context.Context) ([]*entity.Todo, error) {
	return s.todoRepo.List(ctx)
}

func (s *TodoService) Get(ctx context.Context, id uint64) (*entity.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, title, description string, completed bool) (*entity.Todo, error) {
	now := time.Now()
	todo := &entity.Todo{
		Title:     title,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if description != "" {
		todo.Description = sql.NullString{String: description, Valid: true}
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id uint64, patch TodoPatch) (*entity.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = sql.NullString{String: *patch.Description, Valid: *patch.Description != ""}
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id uint64) error {
	rowsDeleted, err := s.todoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rowsDeleted == 0 {
		return ErrTodoNotFound
	}
	return nil
}
