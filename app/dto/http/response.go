package http

import (
	"time"

	"github.com/DevRyuki/todo-with-cline/app/entity"
)

type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          *string    `json:"name,omitempty"`
	EmailVerified *time.Time `json:"email_verified,omitempty"`
	Image         *string    `json:"image,omitempty"`
}

func NewUserResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}
	if user.Name.Valid {
		resp.Name = &user.Name.String
	}
	if user.EmailVerified.Valid {
		resp.EmailVerified = &user.EmailVerified.Time
	}
	if user.Image.Valid {
		resp.Image = &user.Image.String
	}
	return resp
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	SessionToken string       `json:"session_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type TodoResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTodoResponse(todo *entity.Todo) TodoResponse {
	resp := TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
	if todo.Description.Valid {
		resp.Description = &todo.Description.String
	}
	return resp
}

func NewTodoListResponse(todos []*entity.Todo) []TodoResponse {
	resp := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		resp = append(resp, NewTodoResponse(todo))
	}
	return resp
}
