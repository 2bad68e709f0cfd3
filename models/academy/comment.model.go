package academy

import "gorm.io/gorm"

// LessonComment is a user comment on a lesson; visible once approved
type LessonComment struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index;not null"`
	LessonID   uint   `json:"lesson_id" gorm:"index;not null"`
	Content    string `json:"content" gorm:"type:text"`
	IsApproved bool   `json:"is_approved" gorm:"default:false"`
	IsDeleted  bool   `gorm:"default:false"`
}
