package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonProgress tracks one user's progress through one lesson. Unique per
// (user, lesson). CompletedAt is a ratchet: stamped the first time completed
// flips to true and never cleared or overwritten afterwards.
type LessonProgress struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID   string  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_user_lesson" validate:"required,uuid"`
	User     *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	LessonID string  `json:"lesson_id" gorm:"type:uuid;not null;uniqueIndex:idx_lesson_progress_user_lesson" validate:"required,uuid"`
	Lesson   *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`

	Completed      bool       `json:"completed" gorm:"default:false"`
	WatchedSeconds int        `json:"watched_seconds" gorm:"default:0"`
	CompletedAt    *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

func (p *LessonProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
