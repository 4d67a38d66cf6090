package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskListType distinguishes the built-in lists from user-created ones.
type TaskListType string

const (
	TaskListToday     TaskListType = "TODAY"
	TaskListThisWeek  TaskListType = "THIS_WEEK"
	TaskListThisMonth TaskListType = "THIS_MONTH"
	TaskListCustom    TaskListType = "CUSTOM"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusOpen || s == TaskStatusCompleted
}

// RecurrenceType controls whether completing a task schedules another one.
type RecurrenceType string

const (
	RecurrenceNone   RecurrenceType = "NONE"
	RecurrenceDaily  RecurrenceType = "DAILY"
	RecurrenceWeekly RecurrenceType = "WEEKLY"
)

// Valid reports whether r is a known recurrence.
func (r RecurrenceType) Valid() bool {
	return r == RecurrenceNone || r == RecurrenceDaily || r == RecurrenceWeekly
}

// TaskList groups a user's tasks.
type TaskList struct {
	ID        uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:char(36);not null;index"`
	Name      string       `json:"name" gorm:"size:255;not null"`
	Type      TaskListType `json:"type" gorm:"type:varchar(20);not null;default:'CUSTOM'"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (l *TaskList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// DefaultTaskLists returns the lists every user starts with.
func DefaultTaskLists(userID uuid.UUID) []TaskList {
	return []TaskList{
		{UserID: userID, Name: "Today's Tasks", Type: TaskListToday},
		{UserID: userID, Name: "This Week's Tasks", Type: TaskListThisWeek},
		{UserID: userID, Name: "This Month's Tasks", Type: TaskListThisMonth},
	}
}

// Task is a single to-do item.
type Task struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID      `json:"userId" gorm:"type:char(36);not null;index"`
	TaskListID     uuid.UUID      `json:"taskListId" gorm:"type:char(36);not null;index"`
	Title          string         `json:"title" gorm:"size:500;not null"`
	Description    *string        `json:"description" gorm:"type:text"`
	DueDate        *time.Time     `json:"dueDate"`
	Status         TaskStatus     `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index"`
	RecurrenceType RecurrenceType `json:"recurrenceType" gorm:"type:varchar(20);not null;default:'NONE'"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	TaskList TaskList `json:"-" gorm:"foreignKey:TaskListID"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
