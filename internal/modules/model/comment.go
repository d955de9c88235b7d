package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one task and one user. Immutable after
// creation; removed only by the task cascade.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index" json:"taskId"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	CommentText string    `gorm:"type:varchar(500);not null" json:"commentText"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Comment <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"task,omitempty"`

	// Comment <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;" json:"user,omitempty"`
}

func (Comment) TableName() string { return "comments" }
