package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/edhub-platform/school-service/internal/auth"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	LoginWithGoogle(ctx context.Context, req *GoogleLoginRequest) (*LoginResponse, error)
	GetByID(ctx context.Context, id string) (*UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*UserResponse, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*UserResponse, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateUserRequest struct {
	Firstname string          `json:"firstname" validate:"required,max=100"`
	Lastname  string          `json:"lastname" validate:"required,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8,max=72"`
	Role      models.UserRole `json:"role" validate:"omitempty,user_role"`
	SchoolID  *string         `json:"school_id" validate:"omitempty,uuid"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the profile fields already verified by the
// upstream identity gateway.
type GoogleLoginRequest struct {
	GoogleID  string  `json:"google_id" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Firstname string  `json:"firstname" validate:"required,max=100"`
	Lastname  string  `json:"lastname" validate:"required,max=100"`
	Avatar    *string `json:"avatar"`
}

type UpdateUserRequest struct {
	Firstname   *string        `json:"firstname" validate:"omitempty,max=100"`
	Lastname    *string        `json:"lastname" validate:"omitempty,max=100"`
	Surname     *string        `json:"surname" validate:"omitempty,max=100"`
	Age         *int           `json:"age" validate:"omitempty,min=3,max=120"`
	Sex         *string        `json:"sex" validate:"omitempty,oneof=male female"`
	Avatar      *string        `json:"avatar" validate:"omitempty,max=500"`
	Province    *string        `json:"province" validate:"omitempty,max=100"`
	Location    *string        `json:"location" validate:"omitempty,max=100"`
	Section     *string        `json:"section" validate:"omitempty,max=100"`
	Class       *string        `json:"class" validate:"omitempty,max=100"`
	Preferences datatypes.JSON `json:"preferences"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Firstname string          `json:"firstname"`
	Lastname  string          `json:"lastname"`
	Surname   *string         `json:"surname,omitempty"`
	Email     *string         `json:"email,omitempty"`
	Avatar    *string         `json:"avatar,omitempty"`
	Role      models.UserRole `json:"role"`
	SchoolID  *string         `json:"school_id,omitempty"`
	Province  *string         `json:"province,omitempty"`
	Location  *string         `json:"location,omitempty"`
	Section   *string         `json:"section,omitempty"`
	Class     *string         `json:"class,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type UserListResponse struct {
	Users  []*UserResponse `json:"users"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ===== SERVICE IMPLEMENTATION =====

type userService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	tokens    *auth.JWTManager
}

func NewUserService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator, tokens *auth.JWTManager) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		tokens:    tokens,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	email := req.Email
	user := &models.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         role,
		SchoolID:     req.SchoolID,
	}

	if err := s.repo.Users().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == nil {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// LoginWithGoogle finds or creates the account for a verified Google
// profile. An account previously created by email gets its google id and
// avatar backfilled on first Google sign-in.
func (s *userService) LoginWithGoogle(ctx context.Context, req *GoogleLoginRequest) (*LoginResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByGoogleID(ctx, req.GoogleID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		user, err = s.repo.Users().GetByEmail(ctx, req.Email)
		if err != nil && !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user != nil {
			googleID := req.GoogleID
			user.GoogleID = &googleID
			if user.Avatar == nil && req.Avatar != nil {
				user.Avatar = req.Avatar
			}
			if err := s.repo.Users().Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to link google account: %w", err)
			}
		}
	}

	if user == nil {
		email := req.Email
		googleID := req.GoogleID
		user = &models.User{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     &email,
			GoogleID:  &googleID,
			Avatar:    req.Avatar,
			Role:      models.RoleStudent,
		}
		if err := s.repo.Users().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("User created from google profile", "user_id", user.ID)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Firstname != nil {
		user.Firstname = *req.Firstname
	}
	if req.Lastname != nil {
		user.Lastname = *req.Lastname
	}
	if req.Surname != nil {
		user.Surname = req.Surname
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Sex != nil {
		user.Sex = req.Sex
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Province != nil {
		user.Province = req.Province
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Section != nil {
		user.Section = req.Section
	}
	if req.Class != nil {
		user.Class = req.Class
	}
	if req.Preferences != nil {
		user.Preferences = req.Preferences
	}

	if err := s.repo.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	users, total, err := s.repo.Users().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return &UserListResponse{
		Users:  responses,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Surname:   u.Surname,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		SchoolID:  u.SchoolID,
		Province:  u.Province,
		Location:  u.Location,
		Section:   u.Section,
		Class:     u.Class,
		CreatedAt: u.CreatedAt,
	}
}
