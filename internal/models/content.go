package models

import (
	"time"
)

// Branch is one entry in the public branch directory.
type Branch struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Address      string    `json:"address" gorm:"type:varchar(500)"`
	City         string    `json:"city" gorm:"type:varchar(100);index"`
	Phone        string    `json:"phone" gorm:"type:varchar(50)"`
	Email        string    `json:"email" gorm:"type:varchar(255)"`
	OpeningHours string    `json:"opening_hours" gorm:"type:varchar(255)"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Published    bool      `json:"published" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product is a public product description page.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Category     string    `json:"category" gorm:"type:varchar(100);index"` // accounts, loans, cards, deposits
	Summary      string    `json:"summary" gorm:"type:varchar(500)"`
	Body         string    `json:"body" gorm:"type:text"`
	Published    bool      `json:"published" gorm:"default:false"`
	DisplayOrder int       `json:"display_order" gorm:"default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is a staff or board-member bio published on the site.
type Profile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Bio       string    `json:"bio" gorm:"type:text"`
	PhotoPath string    `json:"photo_path" gorm:"type:varchar(500)"`
	Published bool      `json:"published" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is the stored metadata for an uploaded file.
type Document struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Directory  string    `json:"directory" gorm:"type:varchar(100);not null;index"`
	Filename   string    `json:"filename" gorm:"type:varchar(255);not null"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy uint      `json:"uploaded_by" gorm:"index"`
	CreatedAt  time.Time `json:"created_at"`
}

// CarouselSlide is a homepage carousel image with ordering.
type CarouselSlide struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"type:varchar(255)"`
	ImagePath    string    `json:"image_path" gorm:"type:varchar(500);not null"`
	LinkURL      string    `json:"link_url" gorm:"type:varchar(500)"`
	DisplayOrder int       `json:"display_order" gorm:"default:0;index"`
	Published    bool      `json:"published" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
