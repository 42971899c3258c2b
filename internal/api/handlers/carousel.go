package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sitecms/internal/models"
	"sitecms/internal/services"

	"github.com/gin-gonic/gin"
)

type CarouselHandler struct {
	carouselService *services.CarouselService
}

func NewCarouselHandler(carouselService *services.CarouselService) *CarouselHandler {
	return &CarouselHandler{carouselService: carouselService}
}

type SlideRequest struct {
	Title        string `json:"title"`
	ImagePath    string `json:"image_path" binding:"required"`
	LinkURL      string `json:"link_url"`
	DisplayOrder int    `json:"display_order"`
	Published    bool   `json:"published"`
}

// GetSlides returns all carousel slides in display order
func (h *CarouselHandler) GetSlides(c *gin.Context) {
	slides, err := h.carouselService.GetSlides()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get slides"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slides": slides})
}

// CreateSlide adds a carousel slide
func (h *CarouselHandler) CreateSlide(c *gin.Context) {
	var req SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image path is required"})
		return
	}

	slide := &models.CarouselSlide{
		Title:        req.Title,
		ImagePath:    req.ImagePath,
		LinkURL:      req.LinkURL,
		DisplayOrder: req.DisplayOrder,
		Published:    req.Published,
	}

	if err := h.carouselService.CreateSlide(slide); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create slide"})
		return
	}
	c.JSON(http.StatusCreated, slide)
}

// UpdateSlide updates a carousel slide
func (h *CarouselHandler) UpdateSlide(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slide ID"})
		return
	}

	slide, err := h.carouselService.GetSlide(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrSlideNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slide not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get slide"})
		return
	}

	var req SlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image path is required"})
		return
	}

	slide.Title = req.Title
	slide.ImagePath = req.ImagePath
	slide.LinkURL = req.LinkURL
	slide.DisplayOrder = req.DisplayOrder
	slide.Published = req.Published

	if err := h.carouselService.UpdateSlide(slide); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slide"})
		return
	}
	c.JSON(http.StatusOK, slide)
}

// DeleteSlide removes a carousel slide
func (h *CarouselHandler) DeleteSlide(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slide ID"})
		return
	}

	if err := h.carouselService.DeleteSlide(uint(id)); err != nil {
		if errors.Is(err, services.ErrSlideNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slide not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete slide"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slide deleted successfully"})
}
