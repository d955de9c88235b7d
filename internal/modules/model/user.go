package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a registered account. The password hash is never serialized
// to clients.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string    `gorm:"type:varchar(100);not null" json:"-"`
	Role     Role      `gorm:"type:varchar(10);not null;default:'user';check:role IN ('admin','user')" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string { return "users" }
