package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User: учетная запись (логин это email)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"index" json:"full_name"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"index;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Student struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Group   string  `gorm:"index" json:"group"`
	Profile *string `json:"profile,omitempty"`
	UserID  uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User    *User   `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

type Teacher struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Degree   *string `json:"degree,omitempty"`
	Title    *string `json:"title,omitempty"`
	Position string  `json:"position"`
	UserID   uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User     *User   `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
