package academy

import (
	"time"

	"gorm.io/gorm"
)

// VirtualAssignmentTitle is the fixed synthetic title used when an
// assignment row is synthesized from a lesson's embedded instructions.
// The (section_id, title) unique index makes concurrent first submissions
// collapse onto a single row.
const VirtualAssignmentTitle = "Week Assignment"

// Assignment belongs to a section; by convention it gates the section's
// terminal lesson
type Assignment struct {
	gorm.Model
	SectionID       uint       `json:"section_id" gorm:"not null;uniqueIndex:idx_section_title"`
	Title           string     `json:"title" gorm:"uniqueIndex:idx_section_title"`
	Description     string     `json:"description"`
	Instructions    string     `json:"instructions" gorm:"type:text"`
	DueDate         *time.Time `json:"due_date"`
	MaxPoints       int        `json:"max_points" gorm:"default:100"`
	AssignmentOrder int        `json:"assignment_order" gorm:"default:0"`
	IsPublished     bool       `json:"is_published" gorm:"default:false"`
	IsVirtual       bool       `json:"is_virtual" gorm:"default:false"`
	IsDeleted       bool       `gorm:"default:false"`
}

// AssignmentSubmission is the single live submission per (user, assignment).
// A resubmission deletes the prior blob and row first.
type AssignmentSubmission struct {
	gorm.Model
	AssignmentID uint       `json:"assignment_id" gorm:"index;not null"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	FileURL      string     `json:"file_url"` // storage path
	FileName     string     `json:"file_name"`
	FileSize     int64      `json:"file_size"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	PointsEarned int        `json:"points_earned" gorm:"default:0"`
	Feedback     string     `json:"feedback"`
	GradedAt     *time.Time `json:"graded_at"`
	GradedBy     uint       `json:"graded_by"`
}
