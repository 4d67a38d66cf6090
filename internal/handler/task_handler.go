package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bdrdragon/internal/errors"
	"bdrdragon/internal/service"
)

// TaskHandler serves the caller's task lists and tasks. Other users' lists and tasks
// are reported as not found.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ListNameRequest names a custom list.
type ListNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListLists godoc
// @Summary List own task lists
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TaskList
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/lists [get]
func (h *TaskHandler) ListLists(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	lists, err := h.svc.ListLists(c.Request().Context(), caller.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

// CreateList godoc
// @Summary Create a custom task list
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListNameRequest true "List name"
// @Success 201 {object} model.TaskList
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/lists [post]
func (h *TaskHandler) CreateList(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ListNameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	list, err := h.svc.CreateList(c.Request().Context(), caller.UserID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

// RenameList godoc
// @Summary Rename a custom task list
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task list ID"
// @Param request body ListNameRequest true "List name"
// @Success 200 {object} model.TaskList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/lists/{id} [put]
func (h *TaskHandler) RenameList(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req ListNameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	list, err := h.svc.RenameList(c.Request().Context(), caller.UserID, id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteList godoc
// @Summary Delete a custom task list and its tasks
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task list ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/lists/{id} [delete]
func (h *TaskHandler) DeleteList(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteList(c.Request().Context(), caller.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTasks godoc
// @Summary List tasks of one list
// @Description Open tasks first, then by due date, newest first within a day.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param listId query string true "Task list ID"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	listID, err := uuid.Parse(c.QueryParam("listId"))
	if err != nil {
		return respondError(c, errors.NewValidationError("listId", "is required and must be a UUID"))
	}
	tasks, err := h.svc.ListTasks(c.Request().Context(), caller.UserID, listID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateTaskInput true "Task"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	var req service.CreateTaskInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	task, err := h.svc.CreateTask(c.Request().Context(), caller.UserID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Completing an open DAILY or WEEKLY task schedules its next occurrence (spawnedFollowUp).
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body service.UpdateTaskInput true "Fields to change"
// @Success 200 {object} service.TaskUpdateResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateTaskInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	result, err := h.svc.UpdateTask(c.Request().Context(), caller.UserID, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTask(c.Request().Context(), caller.UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
