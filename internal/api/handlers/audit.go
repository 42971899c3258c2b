package handlers

import (
	"net/http"
	"strconv"
	"time"

	"sitecms/internal/services"
	"sitecms/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetLogs returns audit log entries, filtered and paginated. Admin only.
func (h *AuditHandler) GetLogs(c *gin.Context) {
	filter := services.AuditFilter{
		Level:    c.Query("level"),
		Category: c.Query("category"),
	}

	if userStr := c.Query("user_id"); userStr != "" {
		userID, err := strconv.ParseUint(userStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		filter.UserID = uint(userID)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, use RFC3339"})
			return
		}
		filter.From = from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, use RFC3339"})
			return
		}
		filter.To = to
	}

	page := pagination.Parse(c)
	entries, total, err := h.auditService.Query(filter, page.Limit, page.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  entries,
		"total": total,
		"page":  page.Page,
		"limit": page.Limit,
	})
}

// Cleanup bulk-deletes entries older than the given number of days. This is
// the only deletion the audit log supports.
func (h *AuditHandler) Cleanup(c *gin.Context) {
	days := 90
	if daysStr := c.Query("older_than_days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "older_than_days must be a positive integer"})
			return
		}
		days = parsed
	}

	deleted, err := h.auditService.Cleanup(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "older_than_days": days})
}
