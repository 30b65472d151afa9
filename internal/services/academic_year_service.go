package services

import (
	"context"
	"fmt"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

type AcademicYearService interface {
	Create(ctx context.Context, req *AcademicYearRequest) (*models.AcademicYear, error)
	GetByID(ctx context.Context, id string) (*models.AcademicYear, error)
	Update(ctx context.Context, id string, req *AcademicYearRequest) (*models.AcademicYear, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.AcademicYear, error)
}

type AcademicYearRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Link     *string `json:"link" validate:"omitempty,max=500"`
	Province *string `json:"province" validate:"omitempty,max=100"`
}

type academicYearService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewAcademicYearService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) AcademicYearService {
	return &academicYearService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *academicYearService) Create(ctx context.Context, req *AcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	year := &models.AcademicYear{
		Name:     req.Name,
		Link:     req.Link,
		Province: req.Province,
	}
	if err := s.repo.AcademicYears().Create(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to create academic year: %w", err)
	}
	return year, nil
}

func (s *academicYearService) GetByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	year, err := s.repo.AcademicYears().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("failed to get academic year: %w", err)
	}
	return year, nil
}

func (s *academicYearService) Update(ctx context.Context, id string, req *AcademicYearRequest) (*models.AcademicYear, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	year, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	year.Name = req.Name
	year.Link = req.Link
	year.Province = req.Province

	if err := s.repo.AcademicYears().Update(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to update academic year: %w", err)
	}
	return year, nil
}

func (s *academicYearService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.AcademicYears().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete academic year: %w", err)
	}
	return nil
}

func (s *academicYearService) List(ctx context.Context) ([]*models.AcademicYear, error) {
	years, err := s.repo.AcademicYears().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list academic years: %w", err)
	}
	return years, nil
}
