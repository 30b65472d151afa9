package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseStatus string

const (
	CourseDraft         CourseStatus = "draft"
	CoursePendingReview CourseStatus = "pending_review"
	CoursePublished     CourseStatus = "published"
	CourseArchived      CourseStatus = "archived"
)

type Course struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	SchoolID string  `json:"school_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	School   *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`

	Title         string       `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Slug          string       `json:"slug" gorm:"uniqueIndex;not null;size:200" validate:"required,max=200"`
	Description   *string      `json:"description" gorm:"type:text"`
	DurationWeeks *int         `json:"duration_weeks"`
	TotalLessons  int          `json:"total_lessons" gorm:"default:0"`
	Status        CourseStatus `json:"status" gorm:"not null;default:draft;index" validate:"omitempty,course_status"`

	CreatedByID string `json:"created_by_id" gorm:"type:uuid;not null" validate:"required,uuid"`
	CreatedBy   *User  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	// InstructorID is the primary instructor: set by the first single
	// assignment when unset, never touched by the bulk replace path.
	InstructorID *string `json:"instructor_id" gorm:"type:uuid;index"`
	Instructor   *User   `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`

	// Published and PublishedAt move in lockstep with Status: status is
	// "published" iff the flag is set, otherwise "draft".
	Published   bool       `json:"published" gorm:"default:false"`
	PublishedAt *time.Time `json:"published_at"`

	Modules     []Module           `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment       `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
	Assignments []CourseAssignment `json:"assignments,omitempty" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Module struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID string  `json:"course_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	Title       string `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Module) TableName() string {
	return "modules"
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type ContentType string

const (
	ContentVideo      ContentType = "video"
	ContentText       ContentType = "text"
	ContentQuiz       ContentType = "quiz"
	ContentAssignment ContentType = "assignment"
)

type Lesson struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	ModuleID string  `json:"module_id" gorm:"type:uuid;not null;index" validate:"required,uuid"`
	Module   *Module `json:"module,omitempty" gorm:"foreignKey:ModuleID"`

	Title           string      `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	ContentType     ContentType `json:"content_type" gorm:"not null;size:20" validate:"required,oneof=video text quiz assignment"`
	DurationMinutes *int        `json:"duration_minutes"`
	ContentURL      *string     `json:"content_url" gorm:"type:text"`
	IsPublished     bool        `json:"is_published" gorm:"default:false"`
	OrderIndex      int         `json:"order_index" gorm:"default:0"`

	CreatedByID *string `json:"created_by_id" gorm:"type:uuid"`
	CreatedBy   *User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// CourseAssignment links an instructor to a course. The (course, instructor)
// pair is unique at the database level.
type CourseAssignment struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID string  `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_course_instructor" validate:"required,uuid"`
	Course   *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`

	InstructorID string `json:"instructor_id" gorm:"type:uuid;not null;uniqueIndex:idx_course_instructor" validate:"required,uuid"`
	Instructor   *User  `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`

	AssignedByID string    `json:"assigned_by_id" gorm:"type:uuid;not null" validate:"required,uuid"`
	AssignedBy   *User     `json:"assigned_by,omitempty" gorm:"foreignKey:AssignedByID"`
	AssignedAt   time.Time `json:"assigned_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourseAssignment) TableName() string {
	return "course_assignments"
}

func (a *CourseAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	return nil
}
