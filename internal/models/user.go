package models

import (
	"time"
)

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	Role         string     `json:"role" gorm:"type:varchar(50);default:'viewer'"` // viewer, contributor, editor, admin
	SessionToken string     `json:"-" gorm:"type:varchar(64);index"`               // rotated on every login; empty means no valid session
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Session is the server-side session record. The cookie carries only the
// signed ID; Token must still match the owning user's SessionToken for the
// session to be accepted.
type Session struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"type:varchar(50);not null"` // snapshot at login time
	Token     string    `json:"-" gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
