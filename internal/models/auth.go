package models

import (
	"time"
)

type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleSuperadmin UserRole = "superadmin"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Nickname    string    `json:"nickname" gorm:"unique;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Role        UserRole  `json:"role" gorm:"default:'user'"`
	TotalPoints int       `json:"totalPoints"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SafeUser is the projection returned over HTTP: no password, and the
// role collapsed into an isAdmin flag.
type SafeUser struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	IsAdmin     bool   `json:"isAdmin"`
	TotalPoints int    `json:"totalPoints"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:          u.ID,
		Nickname:    u.Nickname,
		IsAdmin:     u.Role == UserRoleSuperadmin,
		TotalPoints: u.TotalPoints,
	}
}

// Preference stores per-user UI settings keyed by nickname.
type Preference struct {
	Nickname  string    `json:"nickname" gorm:"primaryKey"`
	Language  string    `json:"language" gorm:"default:'zh'"`
	Theme     string    `json:"theme" gorm:"default:'light'"`
	UpdatedAt time.Time `json:"updated_at"`
}
