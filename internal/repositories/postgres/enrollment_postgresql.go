package postgres

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
	"gorm.io/gorm"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func (r *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *EnrollmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		First(&enrollment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentPostgreSQL) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *EnrollmentPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Enrollment{}, "id = ?", id).Error
}

func (r *EnrollmentPostgreSQL) List(ctx context.Context) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentPostgreSQL) ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentPostgreSQL) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("enrolled_at ASC").
		Find(&enrollments).Error
	return enrollments, err
}

type LessonProgressPostgreSQL struct {
	db *gorm.DB
}

func (r *LessonProgressPostgreSQL) Create(ctx context.Context, progress *models.LessonProgress) error {
	return r.db.WithContext(ctx).Create(progress).Error
}

func (r *LessonProgressPostgreSQL) GetByID(ctx context.Context, id string) (*models.LessonProgress, error) {
	var progress models.LessonProgress
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Lesson").
		First(&progress, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LessonProgressPostgreSQL) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error) {
	var progress models.LessonProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *LessonProgressPostgreSQL) Update(ctx context.Context, progress *models.LessonProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

func (r *LessonProgressPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.LessonProgress{}, "id = ?", id).Error
}

func (r *LessonProgressPostgreSQL) ListByUser(ctx context.Context, userID string) ([]*models.LessonProgress, error) {
	var progress []*models.LessonProgress
	err := r.db.WithContext(ctx).
		Preload("Lesson").
		Where("user_id = ?", userID).
		Find(&progress).Error
	return progress, err
}

func (r *LessonProgressPostgreSQL) ListByLesson(ctx context.Context, lessonID string) ([]*models.LessonProgress, error) {
	var progress []*models.LessonProgress
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("lesson_id = ?", lessonID).
		Find(&progress).Error
	return progress, err
}
