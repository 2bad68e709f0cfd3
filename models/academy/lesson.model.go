package academy

import "gorm.io/gorm"

// Lesson is a single video lesson within a section
type Lesson struct {
	gorm.Model
	SectionID     uint   `json:"section_id" gorm:"index;not null"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration" gorm:"default:0"` // seconds
	LessonOrder   int    `json:"lesson_order" gorm:"default:0"`   // Order within section
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	// Marks the terminal lesson of its section; completing it requires a
	// submitted assignment
	IsLastOfWeek bool `json:"is_last_video_of_week" gorm:"default:false"`
	// Embedded instructions backing a virtual assignment when no authored
	// assignment row exists for the section
	AssignmentText string `json:"assignment_text" gorm:"type:text"`
	IsDeleted      bool   `gorm:"default:false"`
}
