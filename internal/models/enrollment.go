package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment records a student joining a course. Unique per (user, course);
// a duplicate enrollment attempt is rejected, never upserted.
type Enrollment struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID   string  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" validate:"required,uuid"`
	User     *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourseID string  `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" validate:"required,uuid"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	ProgressPercentage float64    `json:"progress_percentage" gorm:"default:0"`
	CompletedAt        *time.Time `json:"completed_at"`
	EnrolledAt         time.Time  `json:"enrolled_at" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.EnrolledAt.IsZero() {
		e.EnrolledAt = time.Now()
	}
	return nil
}
