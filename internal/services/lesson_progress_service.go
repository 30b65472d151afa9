package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

type LessonProgressService interface {
	Start(ctx context.Context, req *StartProgressRequest) (*models.LessonProgress, error)
	Update(ctx context.Context, id string, req *UpdateProgressRequest) (*models.LessonProgress, error)
	Get(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error)
	ListByUser(ctx context.Context, userID string) ([]*models.LessonProgress, error)
	ListByLesson(ctx context.Context, lessonID string) ([]*models.LessonProgress, error)
}

type StartProgressRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid"`
	LessonID       string `json:"lesson_id" validate:"required,uuid"`
	Completed      bool   `json:"completed"`
	WatchedSeconds int    `json:"watched_seconds" validate:"min=0"`
}

type UpdateProgressRequest struct {
	Completed      *bool `json:"completed"`
	WatchedSeconds *int  `json:"watched_seconds" validate:"omitempty,min=0"`
}

type lessonProgressService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewLessonProgressService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) LessonProgressService {
	return &lessonProgressService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Start creates the progress row for the (user, lesson) pair. A second
// create for the same pair is a conflict; callers that want to accumulate
// progress use Update.
func (s *lessonProgressService) Start(ctx context.Context, req *StartProgressRequest) (*models.LessonProgress, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Lessons().ExistsByID(ctx, req.LessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if !exists {
		return nil, ErrLessonNotFound
	}

	userExists, err := s.repo.Users().ExistsByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	progress := &models.LessonProgress{
		UserID:         req.UserID,
		LessonID:       req.LessonID,
		Completed:      req.Completed,
		WatchedSeconds: req.WatchedSeconds,
	}
	if req.Completed {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.repo.LessonProgress().Create(ctx, progress); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrProgressExists
		}
		return nil, fmt.Errorf("failed to create lesson progress: %w", err)
	}

	return progress, nil
}

// Update applies new progress to an existing row. CompletedAt is a ratchet:
// it is stamped the first time completed flips to true and then frozen,
// surviving later updates including completed flipping back to false.
func (s *lessonProgressService) Update(ctx context.Context, id string, req *UpdateProgressRequest) (*models.LessonProgress, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	progress, err := s.repo.LessonProgress().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}

	if req.WatchedSeconds != nil {
		progress.WatchedSeconds = *req.WatchedSeconds
	}
	if req.Completed != nil {
		progress.Completed = *req.Completed
		if *req.Completed && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
	}

	if err := s.repo.LessonProgress().Update(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to update lesson progress: %w", err)
	}
	return progress, nil
}

func (s *lessonProgressService) Get(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error) {
	progress, err := s.repo.LessonProgress().GetByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get lesson progress: %w", err)
	}
	return progress, nil
}

func (s *lessonProgressService) ListByUser(ctx context.Context, userID string) ([]*models.LessonProgress, error) {
	progress, err := s.repo.LessonProgress().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	return progress, nil
}

func (s *lessonProgressService) ListByLesson(ctx context.Context, lessonID string) ([]*models.LessonProgress, error) {
	exists, err := s.repo.Lessons().ExistsByID(ctx, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if !exists {
		return nil, ErrLessonNotFound
	}
	return s.repo.LessonProgress().ListByLesson(ctx, lessonID)
}
