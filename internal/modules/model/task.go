package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusPendiente  TaskStatus = "Pendiente"
	StatusEnProgreso TaskStatus = "En Progreso"
	StatusCompletada TaskStatus = "Completada"
	StatusBloqueada  TaskStatus = "Bloqueada"
	StatusCancelada  TaskStatus = "Cancelada"
)

type TaskPriority string

const (
	PriorityBaja    TaskPriority = "Baja"
	PriorityMedia   TaskPriority = "Media"
	PriorityAlta    TaskPriority = "Alta"
	PriorityCritica TaskPriority = "Crítica"
)

// Task is the central entity. ProjectID and AssignedTo are references
// resolved at read time; the preloaded Project/Assignee/Creator
// pointers are nil when unresolved.
type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text;not null;default:''" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pendiente';check:status IN ('Pendiente','En Progreso','Completada','Bloqueada','Cancelada');index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'Media';check:priority IN ('Baja','Media','Alta','Crítica');index" json:"priority"`

	ProjectID  *uuid.UUID `gorm:"type:uuid;index" json:"projectId"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assignedTo"`
	// CreatedBy is immutable once set; it always carries the
	// authenticated caller of the create request.
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"createdBy"`

	DueDate        *time.Time `gorm:"type:timestamptz" json:"dueDate"`
	EstimatedHours float64    `gorm:"not null;default:0;check:estimated_hours >= 0" json:"estimatedHours"`
	ActualHours    float64    `gorm:"not null;default:0;check:actual_hours >= 0" json:"actualHours"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"project,omitempty"`

	// Task <-> User
	Assignee *User `gorm:"foreignKey:AssignedTo;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"assignee,omitempty"`
	Creator  *User `gorm:"foreignKey:CreatedBy;references:ID;" json:"creator,omitempty"`

	// Task <-> Comment
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`
}

func (Task) TableName() string { return "tasks" }
