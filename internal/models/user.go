package models

import (
	"time"
)

// User represents a record in users table.
// Authentication and sessions are handled outside this service; the row exists
// so investments, transactions and withdrawals have an owner.
type User struct {
	ID        string    `gorm:"primarykey;size:16" json:"id"` // USR-1003
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
