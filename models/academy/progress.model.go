package academy

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress marks a lesson complete for a user. Row existence is the
// completion flag; unmarking deletes the row. The composite unique index
// enforces at most one record per (user, lesson) pair.
type LessonProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	CompletedAt time.Time `json:"completed_at"`
	WatchTime   int       `json:"watch_time" gorm:"default:0"` // seconds
}
