package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryAction string

const (
	ActionCreated       HistoryAction = "CREATED"
	ActionStatusChanged HistoryAction = "STATUS_CHANGED"
	ActionTitleChanged  HistoryAction = "TITLE_CHANGED"
	ActionUpdated       HistoryAction = "UPDATED"
	ActionDeleted       HistoryAction = "DELETED"
	ActionCommentAdded  HistoryAction = "COMMENT_ADDED"
)

// History is the append-only audit trail. TaskID is a plain column
// without a foreign key: a DELETED row must outlive its task, so the
// reference is allowed to dangle.
type History struct {
	ID       uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID   uuid.UUID     `gorm:"type:uuid;not null;index:ix_histories_task_id_timestamp,priority:1" json:"taskId"`
	UserID   uuid.UUID     `gorm:"type:uuid;not null" json:"userId"`
	Action   HistoryAction `gorm:"type:varchar(20);not null" json:"action"`
	OldValue string        `gorm:"type:text;not null;default:''" json:"oldValue"`
	NewValue string        `gorm:"type:text;not null;default:''" json:"newValue"`

	Timestamp time.Time `gorm:"autoCreateTime;index:ix_histories_task_id_timestamp,priority:2,sort:desc;index" json:"timestamp"`

	// History <-> User (actor)
	User *User `gorm:"foreignKey:UserID;references:ID;" json:"user,omitempty"`

	// Title of the referenced task, resolved by join on read paths.
	// Empty when the task no longer exists.
	TaskTitle string `gorm:"->;-:migration" json:"taskTitle,omitempty"`
}

func (History) TableName() string { return "histories" }
