package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EducationLevel string

const (
	LevelNursery    EducationLevel = "nursery"
	LevelPrimary    EducationLevel = "primary"
	LevelSecondary  EducationLevel = "secondary"
	LevelUniversity EducationLevel = "university"
	LevelMaster     EducationLevel = "master"
)

// School is the tenant root: it owns sections, classes, courses, users and
// invitations.
type School struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;not null;size:200" validate:"required,max=200"`
	Matricule   *string         `json:"matricule" gorm:"size:100"`
	Level       *EducationLevel `json:"level" validate:"omitempty,education_level"`
	Description *string         `json:"description" gorm:"type:text"`
	LogoURL     *string         `json:"logo_url" gorm:"size:500"`
	Member      *int            `json:"member"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`

	Users    []User    `json:"users,omitempty" gorm:"foreignKey:SchoolID"`
	Courses  []Course  `json:"courses,omitempty" gorm:"foreignKey:SchoolID"`
	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:SchoolID"`
	Classes  []Class   `json:"classes,omitempty" gorm:"foreignKey:SchoolID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (School) TableName() string {
	return "schools"
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Section struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string  `json:"name" gorm:"not null;size:200" validate:"required,max=200"`
	SchoolID string  `json:"school_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	School   *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Section) TableName() string {
	return "sections"
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Class struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string  `json:"name" gorm:"column:class;not null;size:200" validate:"required,max=200"`
	SchoolID string  `json:"school_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	School   *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Class) TableName() string {
	return "classes"
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type SchoolRequestStatus string

const (
	RequestPending    SchoolRequestStatus = "pending"
	RequestInProgress SchoolRequestStatus = "in_progress"
	RequestAccepted   SchoolRequestStatus = "accepted"
	RequestRejected   SchoolRequestStatus = "rejected"
)

// SchoolRequest is a public application to open a school on the platform,
// triaged by platform admins.
type SchoolRequest struct {
	ID     string              `json:"id" gorm:"type:uuid;primaryKey"`
	School string              `json:"school" gorm:"not null;size:200" validate:"required,max=200"`
	Email  string              `json:"email" gorm:"not null;size:255" validate:"required,email"`
	Phone  string              `json:"phone" gorm:"not null;size:50" validate:"required,max=50"`
	Status SchoolRequestStatus `json:"status" gorm:"not null;default:pending;index" validate:"omitempty,oneof=pending in_progress accepted rejected"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SchoolRequest) TableName() string {
	return "school_requests"
}

func (r *SchoolRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
