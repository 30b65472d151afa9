package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYear struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string  `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Link     *string `json:"link" gorm:"size:500"`
	Province *string `json:"province" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AcademicYear) TableName() string {
	return "academic_years"
}

func (y *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if y.ID == "" {
		y.ID = uuid.NewString()
	}
	return nil
}
