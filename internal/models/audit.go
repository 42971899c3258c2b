package models

import (
	"time"
)

// Audit log levels
const (
	LevelInfo     = "INFO"
	LevelWarn     = "WARN"
	LevelError    = "ERROR"
	LevelDebug    = "DEBUG"
	LevelSecurity = "SECURITY"
)

// Audit log categories
const (
	CategoryAuthentication = "AUTHENTICATION"
	CategoryAuthorization  = "AUTHORIZATION"
	CategoryUserManagement = "USER_MANAGEMENT"
	CategoryContent        = "CONTENT"
	CategoryFiles          = "FILES"
	CategorySystem         = "SYSTEM"
)

// AuditLog is append-only: entries are never updated, only bulk-deleted by age.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Level       string    `json:"level" gorm:"type:varchar(10);not null;index"`
	Category    string    `json:"category" gorm:"type:varchar(50);not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(100);not null"`
	UserID      *uint     `json:"user_id" gorm:"index"` // nil for anonymous requests
	Username    string    `json:"username" gorm:"type:varchar(255)"`
	Method      string    `json:"method" gorm:"type:varchar(10)"`
	Endpoint    string    `json:"endpoint" gorm:"type:varchar(255)"`
	StatusCode  int       `json:"status_code"`
	IPAddress   string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent   string    `json:"user_agent" gorm:"type:varchar(500)"`
	Message     string    `json:"message" gorm:"type:varchar(500)"`
	Details     string    `json:"details" gorm:"type:text"` // JSON payload
	ExecutionMs int64     `json:"execution_ms"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
