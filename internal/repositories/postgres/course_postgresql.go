package postgres

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"gorm.io/gorm"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func (r *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Instructor").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("School").
		Preload("Instructor").
		Preload("CreatedBy").
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id).Error
}

func (r *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var courses []*models.Course
	err := query.Preload("Instructor").Order("created_at DESC").Find(&courses).Error
	return courses, total, err
}

func (r *CoursePostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type CourseAssignmentPostgreSQL struct {
	db *gorm.DB
}

func (r *CourseAssignmentPostgreSQL) Create(ctx context.Context, assignment *models.CourseAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *CourseAssignmentPostgreSQL) CreateBatch(ctx context.Context, assignments []*models.CourseAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(assignments).Error
}

func (r *CourseAssignmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.CourseAssignment, error) {
	var assignment models.CourseAssignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Preload("AssignedBy").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *CourseAssignmentPostgreSQL) GetByCourseAndInstructor(ctx context.Context, courseID, instructorID string) (*models.CourseAssignment, error) {
	var assignment models.CourseAssignment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND instructor_id = ?", courseID, instructorID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *CourseAssignmentPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.CourseAssignment{}, "id = ?", id).Error
}

func (r *CourseAssignmentPostgreSQL) DeleteByCourse(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&models.CourseAssignment{}).Error
}

func (r *CourseAssignmentPostgreSQL) ListByCourse(ctx context.Context, courseID string) ([]*models.CourseAssignment, error) {
	var assignments []*models.CourseAssignment
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("AssignedBy").
		Where("course_id = ?", courseID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *CourseAssignmentPostgreSQL) ListByInstructor(ctx context.Context, instructorID string) ([]*models.CourseAssignment, error) {
	var assignments []*models.CourseAssignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("AssignedBy").
		Where("instructor_id = ?", instructorID).
		Order("assigned_at ASC").
		Find(&assignments).Error
	return assignments, err
}

type ModulePostgreSQL struct {
	db *gorm.DB
}

func (r *ModulePostgreSQL) Create(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *ModulePostgreSQL) GetByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&module, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModulePostgreSQL) Update(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *ModulePostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Module{}, "id = ?", id).Error
}

func (r *ModulePostgreSQL) List(ctx context.Context) ([]*models.Module, error) {
	var modules []*models.Module
	err := r.db.WithContext(ctx).Find(&modules).Error
	return modules, err
}

func (r *ModulePostgreSQL) ListByCourse(ctx context.Context, courseID string) ([]*models.Module, error) {
	var modules []*models.Module
	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&modules).Error
	return modules, err
}

type LessonPostgreSQL struct {
	db *gorm.DB
}

func (r *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *LessonPostgreSQL) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).
		Preload("Module").
		First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *LessonPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Lesson{}, "id = ?", id).Error
}

func (r *LessonPostgreSQL) List(ctx context.Context) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := r.db.WithContext(ctx).Find(&lessons).Error
	return lessons, err
}

func (r *LessonPostgreSQL) ListByModule(ctx context.Context, moduleID string) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("order_index ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lesson{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
