package academy

import "gorm.io/gorm"

// Course is the top-level catalog entity
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	Price        int64  `json:"price" gorm:"default:0"` // smallest currency unit
	IsFree       bool   `json:"is_free" gorm:"default:false"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	CreatedBy    uint   `json:"created_by"`
	IsDeleted    bool   `gorm:"default:false"`
}
