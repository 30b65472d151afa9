package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation is a time-boxed, single-use credential granting the
// school-admin role on redemption. Status is a forward-only state machine:
// pending is the only non-terminal state.
//
// The partial unique index keeps at most one pending invitation per
// (email, school) pair; the database is the source of truth for that rule,
// the service-level existence check is a fast path only.
type Invitation struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string  `json:"email" gorm:"not null;size:255;index:idx_invitations_pending,unique,where:status = 'pending'" validate:"required,email"`
	Token    string  `json:"-" gorm:"uniqueIndex;not null;size:64"`
	SchoolID string  `json:"school_id" gorm:"type:uuid;not null;index:idx_invitations_pending,unique,where:status = 'pending'" validate:"required,uuid"`
	School   *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`

	Status    InvitationStatus `json:"status" gorm:"not null;default:pending;index"`
	ExpiresAt time.Time        `json:"expires_at" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsTerminal reports whether no further status transition is allowed.
func (i *Invitation) IsTerminal() bool {
	return i.Status != InvitationPending
}

// IsExpired compares the deadline against the given wall clock. Callers
// decide the clock so the check can run at transaction time.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
