package events

import (
	"time"
)

// EventType identifies a platform domain event.
type EventType string

const (
	// Invitation events
	EventInvitationSent     EventType = "invitation.sent"
	EventInvitationAccepted EventType = "invitation.accepted"

	// Enrollment events
	EventEnrollmentCreated EventType = "enrollment.created"

	// Course events
	EventCoursePublished   EventType = "course.published"
	EventCourseUnpublished EventType = "course.unpublished"
)

// PlatformEvent is the envelope shared by all published events.
type PlatformEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type InvitationSentEvent struct {
	InvitationID string    `json:"invitation_id"`
	Email        string    `json:"email"`
	SchoolID     string    `json:"school_id"`
	SchoolName   string    `json:"school_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type InvitationAcceptedEvent struct {
	InvitationID string    `json:"invitation_id"`
	Email        string    `json:"email"`
	SchoolID     string    `json:"school_id"`
	UserID       string    `json:"user_id"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

type EnrollmentCreatedEvent struct {
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

type CoursePublishedEvent struct {
	CourseID    string     `json:"course_id"`
	CourseTitle string     `json:"course_title"`
	SchoolID    string     `json:"school_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}
