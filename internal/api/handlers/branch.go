package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sitecms/internal/models"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type BranchRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	OpeningHours string  `json:"opening_hours"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Published    bool    `json:"published"`
}

// GetBranches returns all branches
func (h *BranchHandler) GetBranches(c *gin.Context) {
	branches, err := h.branchService.GetBranches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get branches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// GetBranch returns a specific branch
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	branch, err := h.branchService.GetBranch(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get branch"})
		return
	}
	c.JSON(http.StatusOK, branch)
}

// CreateBranch creates a new branch
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch name is required"})
		return
	}

	branch := &models.Branch{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Published:    req.Published,
	}

	if err := h.branchService.CreateBranch(branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// UpdateBranch updates a branch
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	branch, err := h.branchService.GetBranch(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get branch"})
		return
	}

	var req BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch name is required"})
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.City = req.City
	branch.Phone = req.Phone
	branch.Email = req.Email
	branch.OpeningHours = req.OpeningHours
	branch.Latitude = req.Latitude
	branch.Longitude = req.Longitude
	branch.Published = req.Published

	if err := h.branchService.UpdateBranch(branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
		return
	}
	c.JSON(http.StatusOK, branch)
}

// DeleteBranch deletes a branch
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	if err := h.branchService.DeleteBranch(uint(id)); err != nil {
		if errors.Is(err, services.ErrBranchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}
