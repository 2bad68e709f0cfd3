package academy

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment payment states
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFree    = "FREE"
)

// CourseEnrollment tracks a user's access to a course
type CourseEnrollment struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	CourseID        uint      `json:"course_id" gorm:"index;not null"`
	PaymentStatus   string    `json:"payment_status" gorm:"default:'PENDING'"` // PENDING, PAID, FREE
	PaymentProofURL string    `json:"payment_proof_url"`
	EnrolledAt      time.Time `json:"enrolled_at"`
	IsDeleted       bool      `gorm:"default:false"`
}
