package model

import (
	"time"

	"github.com/google/uuid"
)

// Project groups tasks by reference. Deleting a project does not
// delete its tasks; their projectId is set to NULL.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;index" json:"name"`
	Description string    `gorm:"type:varchar(200);not null;default:''" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"tasks,omitempty"`
}

func (Project) TableName() string { return "projects" }
