package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

// InvitationTTL is how long a school-admin invitation stays redeemable.
const InvitationTTL = 7 * 24 * time.Hour

const emailSendTimeout = 10 * time.Second

type InvitationService interface {
	Send(ctx context.Context, req *SendInvitationRequest) (*InvitationResponse, error)
	Accept(ctx context.Context, req *AcceptInvitationRequest) (*AcceptInvitationResponse, error)
	GetStatus(ctx context.Context, token string) (*InvitationStatusResponse, error)
	Reject(ctx context.Context, token string) (*InvitationResponse, error)
	ListBySchool(ctx context.Context, schoolID string) ([]*InvitationResponse, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type SendInvitationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
}

type AcceptInvitationRequest struct {
	Token     string `json:"token" validate:"required"`
	Firstname string `json:"firstname" validate:"required,max=100"`
	Lastname  string `json:"lastname" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type InvitationResponse struct {
	ID         string                  `json:"id"`
	Email      string                  `json:"email"`
	SchoolID   string                  `json:"school_id"`
	SchoolName string                  `json:"school_name,omitempty"`
	Status     models.InvitationStatus `json:"status"`
	ExpiresAt  time.Time               `json:"expires_at"`
	CreatedAt  time.Time               `json:"created_at"`
}

type AcceptInvitationResponse struct {
	Invitation *InvitationResponse `json:"invitation"`
	User       *UserResponse       `json:"user"`
}

// InvitationStatusResponse is the public view returned to the landing page
// before the invitee commits to anything. Valid is true only while the
// invitation is still redeemable.
// InvitationStatusResponse deliberately carries no detail for invalid
// tokens. Missing, expired and already-used invitations all probe the
// same, so the endpoint cannot be used to enumerate tokens.
type InvitationStatusResponse struct {
	Valid      bool       `json:"valid"`
	Email      string     `json:"email,omitempty"`
	SchoolName string     `json:"school_name,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ===== SERVICE IMPLEMENTATION =====

type invitationService struct {
	repo        repositories.Repository
	logger      utils.Logger
	validator   *utils.Validator
	mailer      mailer.Mailer
	publisher   events.EventPublisher
	frontendURL string
}

func NewInvitationService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	m mailer.Mailer,
	publisher events.EventPublisher,
	frontendURL string,
) InvitationService {
	return &invitationService{
		repo:        repo,
		logger:      logger,
		validator:   validator,
		mailer:      m,
		publisher:   publisher,
		frontendURL: frontendURL,
	}
}

func (s *invitationService) Send(ctx context.Context, req *SendInvitationRequest) (*InvitationResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	school, err := s.repo.Schools().GetByID(ctx, req.SchoolID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to load school: %w", err)
	}

	token, err := utils.NewInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	var (
		invitation *models.Invitation
		outcome    error
	)

	// The partial unique index on (email, school_id) WHERE status =
	// 'pending' is the real gate; the pending lookup is a fast path.
	// A lapsed pending row still holds the index slot, so it is expired
	// here before the insert. Expiry on other paths only happens on
	// token reads, which a re-invite never performs.
	err = s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		for attempt := 0; attempt < 2; attempt++ {
			existing, txErr := tx.Invitations().GetPending(ctx, req.Email, req.SchoolID)
			if txErr == nil {
				if !existing.IsExpired(time.Now()) {
					outcome = ErrInvitationAlreadySent
					return nil
				}
				existing.Status = models.InvitationExpired
				if txErr := tx.Invitations().Update(ctx, existing); txErr != nil {
					return fmt.Errorf("failed to expire invitation: %w", txErr)
				}
			} else if !repositories.IsNotFoundError(txErr) {
				return fmt.Errorf("failed to check pending invitations: %w", txErr)
			}

			invitation = &models.Invitation{
				Email:     req.Email,
				SchoolID:  req.SchoolID,
				Token:     token,
				Status:    models.InvitationPending,
				ExpiresAt: time.Now().Add(InvitationTTL),
			}
			txErr = tx.Invitations().Create(ctx, invitation)
			if txErr == nil {
				return nil
			}
			if !repositories.IsDuplicateError(txErr) {
				return fmt.Errorf("failed to create invitation: %w", txErr)
			}
			// Lost the race against a concurrent Send for the same
			// pair. Re-read so a concurrently inserted row gets the
			// same expire-or-conflict decision.
		}
		outcome = ErrInvitationAlreadySent
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}

	s.logger.Info("Invitation created",
		"invitation_id", invitation.ID,
		"email", invitation.Email,
		"school_id", invitation.SchoolID,
		"expires_at", invitation.ExpiresAt)

	s.publishEvent(ctx, events.EventInvitationSent, events.InvitationSentEvent{
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		SchoolID:     invitation.SchoolID,
		SchoolName:   school.Name,
		ExpiresAt:    invitation.ExpiresAt,
	})

	link := fmt.Sprintf("%s/invitations/accept?token=%s", s.frontendURL, token)
	s.sendMail(mailer.NewSchoolAdminInvitation(invitation.Email, school.Name, link))

	return toInvitationResponse(invitation, school.Name), nil
}

func (s *invitationService) Accept(ctx context.Context, req *AcceptInvitationRequest) (*AcceptInvitationResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	var (
		invitation *models.Invitation
		user       *models.User
		school     *models.School
		outcome    error
	)

	// The status transition and the user upsert commit together. Lazy
	// expiry is the exception: the flip to expired must survive even
	// though the redemption fails, so it commits before outcome is
	// reported.
	err = s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		var txErr error
		invitation, txErr = tx.Invitations().GetByTokenLocked(ctx, req.Token)
		if txErr != nil {
			if repositories.IsNotFoundError(txErr) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("failed to load invitation: %w", txErr)
		}

		if invitation.Status == models.InvitationPending && invitation.IsExpired(time.Now()) {
			invitation.Status = models.InvitationExpired
			if txErr := tx.Invitations().Update(ctx, invitation); txErr != nil {
				return fmt.Errorf("failed to expire invitation: %w", txErr)
			}
			outcome = ErrInvitationExpired
			return nil
		}

		if invitation.IsTerminal() {
			outcome = terminalStatusError(invitation.Status)
			return nil
		}

		school, txErr = tx.Schools().GetByID(ctx, invitation.SchoolID)
		if txErr != nil {
			return fmt.Errorf("failed to load school: %w", txErr)
		}

		user, txErr = s.upsertSchoolAdmin(ctx, tx, invitation, req, passwordHash)
		if txErr != nil {
			return txErr
		}

		invitation.Status = models.InvitationAccepted
		if txErr := tx.Invitations().Update(ctx, invitation); txErr != nil {
			return fmt.Errorf("failed to accept invitation: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}

	s.logger.Info("Invitation accepted",
		"invitation_id", invitation.ID,
		"user_id", user.ID,
		"school_id", invitation.SchoolID)

	s.publishEvent(ctx, events.EventInvitationAccepted, events.InvitationAcceptedEvent{
		InvitationID: invitation.ID,
		Email:        invitation.Email,
		SchoolID:     invitation.SchoolID,
		UserID:       user.ID,
		AcceptedAt:   invitation.UpdatedAt,
	})

	if user.Email != nil {
		s.sendMail(mailer.NewWelcome(*user.Email, user.Firstname, user.Lastname))
	}

	return &AcceptInvitationResponse{
		Invitation: toInvitationResponse(invitation, school.Name),
		User:       toUserResponse(user),
	}, nil
}

// upsertSchoolAdmin grants the school-admin role to the invited address.
// An existing account is promoted in place, keeping its identity and
// history; otherwise a fresh account is created.
func (s *invitationService) upsertSchoolAdmin(ctx context.Context, tx repositories.Repository, invitation *models.Invitation, req *AcceptInvitationRequest, passwordHash string) (*models.User, error) {
	existing, err := tx.Users().GetByEmail(ctx, invitation.Email)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		existing.Firstname = req.Firstname
		existing.Lastname = req.Lastname
		existing.PasswordHash = &passwordHash
		existing.Role = models.RoleSchoolAdmin
		existing.SchoolID = &invitation.SchoolID
		if err := tx.Users().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to promote user: %w", err)
		}
		return existing, nil
	}

	email := invitation.Email
	user := &models.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         models.RoleSchoolAdmin,
		SchoolID:     &invitation.SchoolID,
	}
	if err := tx.Users().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *invitationService) GetStatus(ctx context.Context, token string) (*InvitationStatusResponse, error) {
	var invitation *models.Invitation

	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		var txErr error
		invitation, txErr = tx.Invitations().GetByTokenLocked(ctx, token)
		if txErr != nil {
			if repositories.IsNotFoundError(txErr) {
				invitation = nil
				return nil
			}
			return fmt.Errorf("failed to load invitation: %w", txErr)
		}

		if invitation.Status == models.InvitationPending && invitation.IsExpired(time.Now()) {
			invitation.Status = models.InvitationExpired
			if txErr := tx.Invitations().Update(ctx, invitation); txErr != nil {
				return fmt.Errorf("failed to expire invitation: %w", txErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if invitation == nil || invitation.Status != models.InvitationPending {
		return &InvitationStatusResponse{Valid: false}, nil
	}

	resp := &InvitationStatusResponse{
		Valid:     true,
		Email:     invitation.Email,
		ExpiresAt: &invitation.ExpiresAt,
	}
	if school, err := s.repo.Schools().GetByID(ctx, invitation.SchoolID); err == nil {
		resp.SchoolName = school.Name
	}
	return resp, nil
}

func (s *invitationService) Reject(ctx context.Context, token string) (*InvitationResponse, error) {
	var (
		invitation *models.Invitation
		outcome    error
	)

	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		var txErr error
		invitation, txErr = tx.Invitations().GetByTokenLocked(ctx, token)
		if txErr != nil {
			if repositories.IsNotFoundError(txErr) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("failed to load invitation: %w", txErr)
		}

		if invitation.Status == models.InvitationPending && invitation.IsExpired(time.Now()) {
			invitation.Status = models.InvitationExpired
			if txErr := tx.Invitations().Update(ctx, invitation); txErr != nil {
				return fmt.Errorf("failed to expire invitation: %w", txErr)
			}
			outcome = ErrInvitationExpired
			return nil
		}

		if invitation.IsTerminal() {
			outcome = terminalStatusError(invitation.Status)
			return nil
		}

		invitation.Status = models.InvitationRejected
		if txErr := tx.Invitations().Update(ctx, invitation); txErr != nil {
			return fmt.Errorf("failed to reject invitation: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}

	s.logger.Info("Invitation rejected", "invitation_id", invitation.ID, "email", invitation.Email)

	return toInvitationResponse(invitation, ""), nil
}

func (s *invitationService) ListBySchool(ctx context.Context, schoolID string) ([]*InvitationResponse, error) {
	school, err := s.repo.Schools().GetByID(ctx, schoolID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to load school: %w", err)
	}

	invitations, err := s.repo.Invitations().ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	responses := make([]*InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, toInvitationResponse(inv, school.Name))
	}
	return responses, nil
}

// ===== HELPERS =====

// terminalStatusError maps a settled invitation status to the conflict
// reported on any further transition attempt.
func terminalStatusError(status models.InvitationStatus) error {
	switch status {
	case models.InvitationAccepted:
		return ErrInvitationAlreadyUsed
	case models.InvitationRejected:
		return ErrInvitationRejected
	case models.InvitationExpired:
		return ErrInvitationExpired
	default:
		return ErrInvitationNotAcceptable
	}
}

func toInvitationResponse(inv *models.Invitation, schoolName string) *InvitationResponse {
	return &InvitationResponse{
		ID:         inv.ID,
		Email:      inv.Email,
		SchoolID:   inv.SchoolID,
		SchoolName: schoolName,
		Status:     inv.Status,
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
	}
}

// publishEvent reports the event on a best-effort basis. A broker outage
// never fails the originating request.
func (s *invitationService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}

// sendMail dispatches email off the request path.
func (s *invitationService) sendMail(msg *mailer.Message) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("Failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
		}
	}()
}
