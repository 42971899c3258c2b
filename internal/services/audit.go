package services

import (
	"log"
	"time"

	"sitecms/internal/models"
)

// AuditService writes and queries the append-only audit log.
type AuditService struct{}

func NewAuditService() *AuditService {
	return &AuditService{}
}

// Record appends an entry. It is fire-and-forget: a failed write is printed
// to the operational log and swallowed, so a logging outage can never take
// down authentication or a business operation.
func (s *AuditService) Record(entry *models.AuditLog) {
	if models.DB == nil {
		log.Printf("audit: dropped entry %s/%s: database not initialized", entry.Category, entry.Action)
		return
	}
	if err := models.DB.Create(entry).Error; err != nil {
		log.Printf("audit: failed to write entry %s/%s: %v", entry.Category, entry.Action, err)
	}
}

// AuditFilter narrows a log query. Zero values mean "no filter".
type AuditFilter struct {
	Level    string
	Category string
	UserID   uint
	From     time.Time
	To       time.Time
}

// Query returns matching entries newest-first plus the total match count.
func (s *AuditService) Query(f AuditFilter, limit, offset int) ([]models.AuditLog, int64, error) {
	q := models.DB.Model(&models.AuditLog{})

	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Cleanup deletes entries older than the cutoff and returns how many were
// removed. This is the only permitted deletion path for audit data.
func (s *AuditService) Cleanup(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := models.DB.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
