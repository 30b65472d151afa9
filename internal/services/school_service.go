package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edhub-platform/school-service/internal/cache"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

const schoolCacheTTL = 5 * time.Minute

type SchoolService interface {
	Create(ctx context.Context, req *CreateSchoolRequest) (*models.School, error)
	GetByID(ctx context.Context, id string) (*models.School, error)
	GetDetails(ctx context.Context, id string) (*models.School, error)
	Update(ctx context.Context, id string, req *UpdateSchoolRequest) (*models.School, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.School, error)

	AddSection(ctx context.Context, req *CreateSectionRequest) (*models.Section, error)
	ListSections(ctx context.Context, schoolID string) ([]*models.Section, error)
	AddClass(ctx context.Context, req *CreateClassRequest) (*models.Class, error)
	ListClasses(ctx context.Context, schoolID string) ([]*models.Class, error)

	ListAdmins(ctx context.Context, schoolID string) ([]*UserResponse, error)
	AddAdmin(ctx context.Context, schoolID, userID string) (*UserResponse, error)
	RevokeAdmin(ctx context.Context, schoolID, userID string) error

	SubmitRequest(ctx context.Context, req *CreateSchoolRequestRequest) (*models.SchoolRequest, error)
	ListRequests(ctx context.Context) ([]*models.SchoolRequest, error)
	ReviewRequest(ctx context.Context, id string, status models.SchoolRequestStatus) (*models.SchoolRequest, error)
}

// ===== REQUEST TYPES =====

type CreateSchoolRequest struct {
	Name        string                 `json:"name" validate:"required,max=200"`
	Slug        string                 `json:"slug" validate:"required,max=200"`
	Matricule   *string                `json:"matricule" validate:"omitempty,max=100"`
	Level       *models.EducationLevel `json:"level" validate:"omitempty,education_level"`
	Description *string                `json:"description"`
	LogoURL     *string                `json:"logo_url" validate:"omitempty,max=500"`
}

type UpdateSchoolRequest struct {
	Name        *string                `json:"name" validate:"omitempty,max=200"`
	Matricule   *string                `json:"matricule" validate:"omitempty,max=100"`
	Level       *models.EducationLevel `json:"level" validate:"omitempty,education_level"`
	Description *string                `json:"description"`
	LogoURL     *string                `json:"logo_url" validate:"omitempty,max=500"`
	IsActive    *bool                  `json:"is_active"`
}

type CreateSectionRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
}

type CreateClassRequest struct {
	Name     string `json:"class" validate:"required,max=200"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
}

type CreateSchoolRequestRequest struct {
	School string `json:"school" validate:"required,max=200"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required,max=50"`
}

// ===== SERVICE IMPLEMENTATION =====

type schoolService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	cache     cache.CacheService
	mailer    mailer.Mailer
}

func NewSchoolService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator, cacheService cache.CacheService, m mailer.Mailer) SchoolService {
	return &schoolService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheService,
		mailer:    m,
	}
}

func (s *schoolService) Create(ctx context.Context, req *CreateSchoolRequest) (*models.School, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	school := &models.School{
		Name:        req.Name,
		Slug:        req.Slug,
		Matricule:   req.Matricule,
		Level:       req.Level,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		IsActive:    true,
	}

	if err := s.repo.Schools().Create(ctx, school); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrSchoolSlugTaken
		}
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	s.logger.Info("School created", "school_id", school.ID, "slug", school.Slug)
	return school, nil
}

func (s *schoolService) GetByID(ctx context.Context, id string) (*models.School, error) {
	school, err := s.repo.Schools().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}

// GetDetails returns the school with its sections and classes, caching the
// assembled view.
func (s *schoolService) GetDetails(ctx context.Context, id string) (*models.School, error) {
	key := schoolDetailsKey(id)

	var cached models.School
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	school, err := s.repo.Schools().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school details: %w", err)
	}

	if err := s.cache.Set(ctx, key, school, schoolCacheTTL); err != nil {
		s.logger.Warn("Failed to cache school details", "school_id", id, "error", err)
	}
	return school, nil
}

func (s *schoolService) Update(ctx context.Context, id string, req *UpdateSchoolRequest) (*models.School, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	school, err := s.repo.Schools().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Matricule != nil {
		school.Matricule = req.Matricule
	}
	if req.Level != nil {
		school.Level = req.Level
	}
	if req.Description != nil {
		school.Description = req.Description
	}
	if req.LogoURL != nil {
		school.LogoURL = req.LogoURL
	}
	if req.IsActive != nil {
		school.IsActive = *req.IsActive
	}

	if err := s.repo.Schools().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}

	s.invalidateDetails(ctx, id)
	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Schools().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check school: %w", err)
	}
	if !exists {
		return ErrSchoolNotFound
	}

	if err := s.repo.Schools().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}

	s.invalidateDetails(ctx, id)
	s.logger.Info("School deleted", "school_id", id)
	return nil
}

func (s *schoolService) List(ctx context.Context) ([]*models.School, error) {
	schools, err := s.repo.Schools().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	return schools, nil
}

// ===== SECTIONS AND CLASSES =====

func (s *schoolService) AddSection(ctx context.Context, req *CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.requireSchool(ctx, req.SchoolID); err != nil {
		return nil, err
	}

	section := &models.Section{Name: req.Name, SchoolID: req.SchoolID}
	if err := s.repo.Sections().Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	s.invalidateDetails(ctx, req.SchoolID)
	return section, nil
}

func (s *schoolService) ListSections(ctx context.Context, schoolID string) ([]*models.Section, error) {
	if schoolID == "" {
		return s.repo.Sections().List(ctx)
	}
	if err := s.requireSchool(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.repo.Sections().ListBySchool(ctx, schoolID)
}

func (s *schoolService) AddClass(ctx context.Context, req *CreateClassRequest) (*models.Class, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.requireSchool(ctx, req.SchoolID); err != nil {
		return nil, err
	}

	class := &models.Class{Name: req.Name, SchoolID: req.SchoolID}
	if err := s.repo.Classes().Create(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.invalidateDetails(ctx, req.SchoolID)
	return class, nil
}

func (s *schoolService) ListClasses(ctx context.Context, schoolID string) ([]*models.Class, error) {
	if schoolID == "" {
		return s.repo.Classes().List(ctx)
	}
	if err := s.requireSchool(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.repo.Classes().ListBySchool(ctx, schoolID)
}

// ===== SCHOOL ADMINS =====

func (s *schoolService) ListAdmins(ctx context.Context, schoolID string) ([]*UserResponse, error) {
	if err := s.requireSchool(ctx, schoolID); err != nil {
		return nil, err
	}

	admins, err := s.repo.Users().GetBySchoolAndRole(ctx, schoolID, models.RoleSchoolAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list school admins: %w", err)
	}

	responses := make([]*UserResponse, 0, len(admins))
	for _, u := range admins {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

// AddAdmin promotes an existing account to administer the school. Invited
// administrators without an account go through the invitation flow instead.
func (s *schoolService) AddAdmin(ctx context.Context, schoolID, userID string) (*UserResponse, error) {
	if err := s.requireSchool(ctx, schoolID); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = models.RoleSchoolAdmin
	user.SchoolID = &schoolID
	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to grant admin: %w", err)
	}

	s.logger.Info("School admin granted", "school_id", schoolID, "user_id", userID)
	return toUserResponse(user), nil
}

// RevokeAdmin demotes a school administrator back to student. The school
// membership is kept so the account stays usable.
func (s *schoolService) RevokeAdmin(ctx context.Context, schoolID, userID string) error {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Role != models.RoleSchoolAdmin || user.SchoolID == nil || *user.SchoolID != schoolID {
		return ErrUserNotSchoolAdmin
	}

	user.Role = models.RoleStudent
	if err := s.repo.Users().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to revoke admin: %w", err)
	}

	s.logger.Info("School admin revoked", "school_id", schoolID, "user_id", userID)
	return nil
}

// ===== SCHOOL REQUESTS =====

func (s *schoolService) SubmitRequest(ctx context.Context, req *CreateSchoolRequestRequest) (*models.SchoolRequest, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	request := &models.SchoolRequest{
		School: req.School,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: models.RequestPending,
	}
	if err := s.repo.SchoolRequests().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create school request: %w", err)
	}

	s.logger.Info("School request submitted", "request_id", request.ID, "school", request.School)
	return request, nil
}

func (s *schoolService) ListRequests(ctx context.Context) ([]*models.SchoolRequest, error) {
	requests, err := s.repo.SchoolRequests().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list school requests: %w", err)
	}
	return requests, nil
}

// ReviewRequest moves an application through the triage pipeline. Accepted
// and rejected notify the applicant by email.
func (s *schoolService) ReviewRequest(ctx context.Context, id string, status models.SchoolRequestStatus) (*models.SchoolRequest, error) {
	switch status {
	case models.RequestInProgress, models.RequestAccepted, models.RequestRejected:
	default:
		return nil, fmt.Errorf("%w: invalid review status %q", ErrValidationFailed, status)
	}

	request, err := s.repo.SchoolRequests().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolRequestNotFound
		}
		return nil, fmt.Errorf("failed to get school request: %w", err)
	}

	request.Status = status
	if err := s.repo.SchoolRequests().Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update school request: %w", err)
	}

	switch status {
	case models.RequestAccepted:
		s.sendMail(mailer.NewSchoolApproval(request.Email, request.School))
	case models.RequestRejected:
		s.sendMail(mailer.NewSchoolRejection(request.Email, request.School))
	}

	s.logger.Info("School request reviewed", "request_id", request.ID, "status", request.Status)
	return request, nil
}

// ===== HELPERS =====

func (s *schoolService) requireSchool(ctx context.Context, id string) error {
	exists, err := s.repo.Schools().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check school: %w", err)
	}
	if !exists {
		return ErrSchoolNotFound
	}
	return nil
}

func schoolDetailsKey(id string) string {
	return fmt.Sprintf("school:details:%s", id)
}

func (s *schoolService) invalidateDetails(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, schoolDetailsKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate school cache", "school_id", id, "error", err)
	}
}

func (s *schoolService) sendMail(msg *mailer.Message) {
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
