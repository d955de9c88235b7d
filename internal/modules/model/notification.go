package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifTaskAssigned NotificationType = "task_assigned"
	NotifTaskCreated  NotificationType = "task_created"
	NotifTaskUpdated  NotificationType = "task_updated"
	NotifCommentAdded NotificationType = "comment_added"
	NotifOther        NotificationType = "other"
)

// Notification is delivered by polling. Mutated only by the bulk
// mark-as-read operation; never deleted.
type Notification struct {
	ID      uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID        `gorm:"type:uuid;not null;index:ix_notifications_user_read,priority:1" json:"userId"`
	Message string           `gorm:"type:text;not null" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);not null;default:'other'" json:"type"`
	Read    bool             `gorm:"not null;default:false;index:ix_notifications_user_read,priority:2" json:"read"`

	// Structured context, e.g. the task the notification refers to.
	Data datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"data,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`

	// Notification <-> User (recipient)
	User *User `gorm:"foreignKey:UserID;references:ID;" json:"user,omitempty"`
}

func (Notification) TableName() string { return "notifications" }
