package task

import (
	"time"

	"github.com/google/uuid"
)

type Priority string
type Status string

const PriorityLow Priority = "Low"
const PriorityMedium Priority = "Medium"
const PriorityHigh Priority = "High"

const StatusPending Status = "Pending"
const StatusInProgress Status = "InProgress"
const StatusCompleted Status = "Completed"

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Priority    Priority   `json:"priority" db:"priority"`
	Status      Status     `json:"status" db:"status"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at,omitempty"`
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// Fields - полный набор полей для create/update,
// у update семантика полной замены, как у create
type Fields struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
	DueDate     *time.Time
	AssignedTo  *uuid.UUID
}

// Filter - конъюнктивный фильтр списка, nil означает "без ограничения"
type Filter struct {
	Priority *Priority
	Status   *Status
}

func (f Filter) Matches(t *Task) bool {
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}
