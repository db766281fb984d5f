package controller

import (
	"errors"
	"net/http"
	"strconv"

	dto "github.com/DevRyuki/todo-with-cline/app/dto/http"
	"github.com/DevRyuki/todo-with-cline/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type TodoController struct {
	todoService *service.TodoService
}

func NewTodoController(todoService *service.TodoService) *TodoController {
	return &TodoController{todoService: todoService}
}

func (c *TodoController) List(ctx echo.Context) error {
	todos, err := c.todoService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List todos failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewTodoListResponse(todos))
}

func (c *TodoController) Get(ctx echo.Context) error {
	id, err := todoID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid todo id"})
	}

	todo, err := c.todoService.Get(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "todo not found"})
		}
		logrus.WithError(err).WithField("todo_id", id).Error("Get todo failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

func (c *TodoController) Create(ctx echo.Context) error {
	var req dto.TodoCreateRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind todo create request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Todo create validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	todo, err := c.todoService.Create(ctx.Request().Context(), req.Title, req.Description, req.Completed)
	if err != nil {
		logrus.WithError(err).Error("Create todo failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("todo_id", todo.ID).Info("Todo created")
	return ctx.JSON(http.StatusCreated, dto.NewTodoResponse(todo))
}

func (c *TodoController) Update(ctx echo.Context) error {
	id, err := todoID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid todo id"})
	}

	var req dto.TodoUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind todo update request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Todo update validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}

	todo, err := c.todoService.Update(ctx.Request().Context(), id, service.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "todo not found"})
		}
		logrus.WithError(err).WithField("todo_id", id).Error("Update todo failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("todo_id", id).Info("Todo updated")
	return ctx.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

func (c *TodoController) Delete(ctx echo.Context) error {
	id, err := todoID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid todo id"})
	}

	if err := c.todoService.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "todo not found"})
		}
		logrus.WithError(err).WithField("todo_id", id).Error("Delete todo failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("todo_id", id).Info("Todo deleted")
	return ctx.NoContent(http.StatusNoContent)
}

func todoID(ctx echo.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}
