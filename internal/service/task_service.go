package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

// CreateTaskInput creates an OPEN task. Unknown recurrence values become NONE.
type CreateTaskInput struct {
	TaskListID     uuid.UUID            `json:"taskListId" validate:"required"`
	Title          string               `json:"title" validate:"required"`
	Description    *string              `json:"description"`
	DueDate        *string              `json:"dueDate"`
	RecurrenceType model.RecurrenceType `json:"recurrenceType"`
}

// UpdateTaskInput is a partial task update. An empty description or dueDate clears it.
type UpdateTaskInput struct {
	Title          *string               `json:"title"`
	Description    *string               `json:"description"`
	DueDate        *string               `json:"dueDate"`
	Status         *model.TaskStatus     `json:"status" validate:"omitempty,oneof=OPEN COMPLETED"`
	RecurrenceType *model.RecurrenceType `json:"recurrenceType" validate:"omitempty,oneof=NONE DAILY WEEKLY"`
}

// TaskUpdateResult reports the updated task and whether completing it scheduled a follow-up.
type TaskUpdateResult struct {
	Task            *model.Task `json:"task"`
	SpawnedFollowUp bool        `json:"spawnedFollowUp"`
	FollowUp        *model.Task `json:"followUp,omitempty"`
}

// TaskService manages a user's task lists and tasks.
type TaskService interface {
	ListLists(ctx context.Context, userID uuid.UUID) ([]model.TaskList, error)
	CreateList(ctx context.Context, userID uuid.UUID, name string) (*model.TaskList, error)
	RenameList(ctx context.Context, userID, listID uuid.UUID, name string) (*model.TaskList, error)
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error

	ListTasks(ctx context.Context, userID, listID uuid.UUID) ([]model.Task, error)
	CreateTask(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, in UpdateTaskInput) (*TaskUpdateResult, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskService struct {
	repo  repository.TaskRepository
	clock Clock
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, clock Clock) TaskService {
	return &taskService{repo: repo, clock: clock}
}

func (s *taskService) ListLists(ctx context.Context, userID uuid.UUID) ([]model.TaskList, error) {
	lists, err := s.repo.ListLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	return lists, nil
}

func (s *taskService) CreateList(ctx context.Context, userID uuid.UUID, name string) (*model.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	list := &model.TaskList{UserID: userID, Name: name, Type: model.TaskListCustom}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("create task list: %w", err)
	}
	return list, nil
}

func (s *taskService) RenameList(ctx context.Context, userID, listID uuid.UUID, name string) (*model.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	list, err := s.customList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	list.Name = name
	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("update task list: %w", err)
	}
	return list, nil
}

// DeleteList deletes a custom list and its tasks.
func (s *taskService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := s.customList(ctx, userID, listID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteList(ctx, list); err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}
	return nil
}

func (s *taskService) customList(ctx context.Context, userID, listID uuid.UUID) (*model.TaskList, error) {
	list, err := s.findList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if list.Type != model.TaskListCustom {
		return nil, apperrors.ErrDefaultListImmutable
	}
	return list, nil
}

func (s *taskService) findList(ctx context.Context, userID, listID uuid.UUID) (*model.TaskList, error) {
	list, err := s.repo.FindList(ctx, listID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTaskListNotFound
		}
		return nil, fmt.Errorf("find task list: %w", err)
	}
	return list, nil
}

func (s *taskService) ListTasks(ctx context.Context, userID, listID uuid.UUID) ([]model.Task, error) {
	if _, err := s.findList(ctx, userID, listID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) CreateTask(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "is required")
	}
	if _, err := s.findList(ctx, userID, in.TaskListID); err != nil {
		return nil, err
	}

	task := &model.Task{
		UserID:         userID,
		TaskListID:     in.TaskListID,
		Title:          title,
		Description:    optionalString(in.Description),
		Status:         model.TaskStatusOpen,
		RecurrenceType: model.RecurrenceNone,
	}
	if in.RecurrenceType == model.RecurrenceDaily || in.RecurrenceType == model.RecurrenceWeekly {
		task.RecurrenceType = in.RecurrenceType
	}
	if in.DueDate != nil {
		due, err := optionalDate("dueDate", *in.DueDate, s.clock().Location())
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update. Completing an OPEN recurring task creates its next
// occurrence in the same transaction, reported through SpawnedFollowUp.
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, in UpdateTaskInput) (*TaskUpdateResult, error) {
	task, err := s.repo.FindTask(ctx, taskID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	now := s.clock()
	previousStatus := task.Status

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title", "must not be empty")
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = optionalString(in.Description)
	}
	if in.DueDate != nil {
		due, err := optionalDate("dueDate", *in.DueDate, now.Location())
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewValidationError("status", "must be OPEN or COMPLETED")
		}
		task.Status = *in.Status
	}
	if in.RecurrenceType != nil {
		if !in.RecurrenceType.Valid() {
			return nil, apperrors.NewValidationError("recurrenceType", "must be NONE, DAILY or WEEKLY")
		}
		task.RecurrenceType = *in.RecurrenceType
	}

	followUp := NextOccurrence(previousStatus, task, now)
	if err := s.repo.UpdateTask(ctx, task, followUp); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &TaskUpdateResult{
		Task:            task,
		SpawnedFollowUp: followUp != nil,
		FollowUp:        followUp,
	}, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.repo.FindTask(ctx, taskID, userID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("find task: %w", err)
	}
	if err := s.repo.DeleteTask(ctx, task); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// NextOccurrence returns the follow-up task created when updated moves from a
// non-completed status to COMPLETED with DAILY or WEEKLY recurrence, or nil otherwise.
// The follow-up is due at midnight after the previous due date (or now) plus one or seven days.
func NextOccurrence(previousStatus model.TaskStatus, updated *model.Task, now time.Time) *model.Task {
	if previousStatus == model.TaskStatusCompleted || updated.Status != model.TaskStatusCompleted {
		return nil
	}

	var days int
	switch updated.RecurrenceType {
	case model.RecurrenceDaily:
		days = 1
	case model.RecurrenceWeekly:
		days = 7
	default:
		return nil
	}

	base := now
	if updated.DueDate != nil {
		base = updated.DueDate.In(now.Location())
	}
	due := midnight(base).AddDate(0, 0, days)

	return &model.Task{
		UserID:         updated.UserID,
		TaskListID:     updated.TaskListID,
		Title:          updated.Title,
		Description:    updated.Description,
		DueDate:        &due,
		Status:         model.TaskStatusOpen,
		RecurrenceType: updated.RecurrenceType,
	}
}
