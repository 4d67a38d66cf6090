package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bdrdragon/internal/model"
)

// TaskRepository defines task list and task persistence operations. Every lookup is
// scoped to the owning user.
type TaskRepository interface {
	CreateList(ctx context.Context, list *model.TaskList) error
	UpdateList(ctx context.Context, list *model.TaskList) error
	// DeleteList removes the list's tasks and then the list, in one transaction.
	DeleteList(ctx context.Context, list *model.TaskList) error
	FindList(ctx context.Context, id, userID uuid.UUID) (*model.TaskList, error)
	ListLists(ctx context.Context, userID uuid.UUID) ([]model.TaskList, error)

	CreateTask(ctx context.Context, task *model.Task) error
	// UpdateTask saves the task and, when followUp is non-nil, inserts it in the same transaction.
	UpdateTask(ctx context.Context, task *model.Task, followUp *model.Task) error
	DeleteTask(ctx context.Context, task *model.Task) error
	FindTask(ctx context.Context, id, userID uuid.UUID) (*model.Task, error)
	ListTasks(ctx context.Context, listID, userID uuid.UUID) ([]model.Task, error)
}

const (
	listOrder = "CASE type WHEN 'TODAY' THEN 0 WHEN 'THIS_WEEK' THEN 1 WHEN 'THIS_MONTH' THEN 2 ELSE 3 END, created_at ASC"
	taskOrder = "CASE status WHEN 'OPEN' THEN 0 ELSE 1 END, due_date ASC, created_at DESC"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) CreateList(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *taskRepository) UpdateList(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

func (r *taskRepository) DeleteList(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_list_id = ? AND user_id = ?", list.ID, list.UserID).
			Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(list).Error
	})
}

func (r *taskRepository) FindList(ctx context.Context, id, userID uuid.UUID) (*model.TaskList, error) {
	var list model.TaskList
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListLists orders the default lists first (today, week, month), then custom lists by age.
func (r *taskRepository) ListLists(ctx context.Context, userID uuid.UUID) ([]model.TaskList, error) {
	var lists []model.TaskList
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order(listOrder).
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *taskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *taskRepository) UpdateTask(ctx context.Context, task *model.Task, followUp *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if followUp == nil {
			return nil
		}
		return tx.Omit(clause.Associations).Create(followUp).Error
	})
}

func (r *taskRepository) DeleteTask(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

func (r *taskRepository) FindTask(ctx context.Context, id, userID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks orders open tasks first, then by due date, newest created first.
func (r *taskRepository) ListTasks(ctx context.Context, listID, userID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("task_list_id = ? AND user_id = ?", listID, userID).
		Order(taskOrder).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
