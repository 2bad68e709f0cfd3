package academy

import "gorm.io/gorm"

// CourseSection is a course subdivision ("week") holding ordered lessons
// and an optional terminal assignment
type CourseSection struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	SectionOrder int    `json:"section_order" gorm:"default:0"` // Section order in course
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
