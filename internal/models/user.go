package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleInstructor  UserRole = "instructor"
	RoleAdmin       UserRole = "admin"
	RoleInspector   UserRole = "inspector"
	RoleSchoolAdmin UserRole = "school-admin"
)

type User struct {
	ID        string  `json:"id" gorm:"type:uuid;primaryKey"`
	Firstname string  `json:"firstname" gorm:"not null;size:100" validate:"required,max=100"`
	Lastname  string  `json:"lastname" gorm:"not null;size:100" validate:"required,max=100"`
	Surname   *string `json:"surname" gorm:"size:100"`
	Age       *int    `json:"age"`
	Sex       *string `json:"sex" gorm:"size:10" validate:"omitempty,oneof=male female"`

	Email        *string `json:"email" gorm:"uniqueIndex;size:255" validate:"omitempty,email"`
	PasswordHash *string `json:"-" gorm:"size:100"`
	Avatar       *string `json:"avatar" gorm:"size:500"`
	GoogleID     *string `json:"google_id" gorm:"index;size:255"`

	Role     UserRole `json:"role" gorm:"not null;default:student;index" validate:"omitempty,user_role"`
	SchoolID *string  `json:"school_id" gorm:"type:uuid;index"`
	School   *School  `json:"school,omitempty" gorm:"foreignKey:SchoolID"`

	Province *string `json:"province" gorm:"size:100"`
	Location *string `json:"location" gorm:"size:100"`
	Section  *string `json:"section" gorm:"size:100"`
	Class    *string `json:"class" gorm:"size:100"`

	Preferences datatypes.JSON `json:"preferences"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// FullName is used in outbound email greetings.
func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}
