package domain

import "time"

// Account status values
const (
	StatusDisabled = 0 // Account may not sign in
	StatusActive   = 1 // Account is enabled
)

// Account Model (sys_user table)
type Account struct {
	ID           uint64    `gorm:"column:user_id;primaryKey" json:"userId"`                      // Primary key
	Username     string    `gorm:"column:username;size:50;uniqueIndex;not null" json:"username"` // Unique username
	Password     string    `gorm:"column:password;size:100;not null" json:"-"`                   // Password digest, never serialized
	Email        string    `gorm:"column:email;size:100" json:"email"`                           // Contact email
	Mobile       string    `gorm:"column:mobile;size:100" json:"mobile"`                         // Contact phone
	Status       int       `gorm:"column:status;not null" json:"status"`                         // 0 disabled, 1 active
	CreateUserID uint64    `gorm:"column:create_user_id;index" json:"createUserId"`              // Owner reference
	CreateTime   time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`          // Creation timestamp
	RoleIDs      []uint64  `gorm:"-" json:"roleIdList"`                                          // Populated on single-record fetch
}

// TableName keeps the legacy table name
func (Account) TableName() string { return "sys_user" }

// UserRole links an account to a role (sys_user_role table)
type UserRole struct {
	ID     uint64 `gorm:"primaryKey"`              // Primary key
	UserID uint64 `gorm:"column:user_id;index"`    // Account reference
	RoleID uint64 `gorm:"column:role_id;not null"` // Role reference
}

// TableName keeps the legacy table name
func (UserRole) TableName() string { return "sys_user_role" }
