package postgres

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
	"gorm.io/gorm"
)

type SchoolPostgreSQL struct {
	db *gorm.DB
}

func (r *SchoolPostgreSQL) Create(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *SchoolPostgreSQL) GetByID(ctx context.Context, id string) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).First(&school, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolPostgreSQL) GetByIDWithDetails(ctx context.Context, id string) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).
		Preload("Sections").
		Preload("Classes").
		First(&school, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolPostgreSQL) Update(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *SchoolPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.School{}, "id = ?", id).Error
}

func (r *SchoolPostgreSQL) List(ctx context.Context) ([]*models.School, error) {
	var schools []*models.School
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&schools).Error
	return schools, err
}

func (r *SchoolPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type SectionPostgreSQL struct {
	db *gorm.DB
}

func (r *SectionPostgreSQL) Create(ctx context.Context, section *models.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *SectionPostgreSQL) List(ctx context.Context) ([]*models.Section, error) {
	var sections []*models.Section
	err := r.db.WithContext(ctx).Find(&sections).Error
	return sections, err
}

func (r *SectionPostgreSQL) ListBySchool(ctx context.Context, schoolID string) ([]*models.Section, error) {
	var sections []*models.Section
	err := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Find(&sections).Error
	return sections, err
}

type ClassPostgreSQL struct {
	db *gorm.DB
}

func (r *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *ClassPostgreSQL) List(ctx context.Context) ([]*models.Class, error) {
	var classes []*models.Class
	err := r.db.WithContext(ctx).Find(&classes).Error
	return classes, err
}

func (r *ClassPostgreSQL) ListBySchool(ctx context.Context, schoolID string) ([]*models.Class, error) {
	var classes []*models.Class
	err := r.db.WithContext(ctx).Where("school_id = ?", schoolID).Find(&classes).Error
	return classes, err
}

type SchoolRequestPostgreSQL struct {
	db *gorm.DB
}

func (r *SchoolRequestPostgreSQL) Create(ctx context.Context, request *models.SchoolRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *SchoolRequestPostgreSQL) GetByID(ctx context.Context, id string) (*models.SchoolRequest, error) {
	var request models.SchoolRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *SchoolRequestPostgreSQL) Update(ctx context.Context, request *models.SchoolRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *SchoolRequestPostgreSQL) List(ctx context.Context) ([]*models.SchoolRequest, error) {
	var requests []*models.SchoolRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

type AcademicYearPostgreSQL struct {
	db *gorm.DB
}

func (r *AcademicYearPostgreSQL) Create(ctx context.Context, year *models.AcademicYear) error {
	return r.db.WithContext(ctx).Create(year).Error
}

func (r *AcademicYearPostgreSQL) GetByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *AcademicYearPostgreSQL) Update(ctx context.Context, year *models.AcademicYear) error {
	return r.db.WithContext(ctx).Save(year).Error
}

func (r *AcademicYearPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.AcademicYear{}, "id = ?", id).Error
}

func (r *AcademicYearPostgreSQL) List(ctx context.Context) ([]*models.AcademicYear, error) {
	var years []*models.AcademicYear
	err := r.db.WithContext(ctx).Order("name ASC").Find(&years).Error
	return years, err
}
