package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRepo is an in-memory Repository. It enforces the same uniqueness
// rules as the real schema and reports violations with the gorm sentinel
// errors the services classify.
type fakeRepo struct {
	users          map[string]*models.User
	schools        map[string]*models.School
	sections       map[string]*models.Section
	classes        map[string]*models.Class
	schoolRequests map[string]*models.SchoolRequest
	invitations    map[string]*models.Invitation
	courses        map[string]*models.Course
	assignments    map[string]*models.CourseAssignment
	modules        map[string]*models.Module
	lessons        map[string]*models.Lesson
	enrollments    map[string]*models.Enrollment
	progress       map[string]*models.LessonProgress
	years          map[string]*models.AcademicYear
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:          make(map[string]*models.User),
		schools:        make(map[string]*models.School),
		sections:       make(map[string]*models.Section),
		classes:        make(map[string]*models.Class),
		schoolRequests: make(map[string]*models.SchoolRequest),
		invitations:    make(map[string]*models.Invitation),
		courses:        make(map[string]*models.Course),
		assignments:    make(map[string]*models.CourseAssignment),
		modules:        make(map[string]*models.Module),
		lessons:        make(map[string]*models.Lesson),
		enrollments:    make(map[string]*models.Enrollment),
		progress:       make(map[string]*models.LessonProgress),
		years:          make(map[string]*models.AcademicYear),
	}
}

func (f *fakeRepo) Users() repositories.UserRepository                  { return fakeUsers{f} }
func (f *fakeRepo) Schools() repositories.SchoolRepository              { return fakeSchools{f} }
func (f *fakeRepo) Sections() repositories.SectionRepository            { return fakeSections{f} }
func (f *fakeRepo) Classes() repositories.ClassRepository               { return fakeClasses{f} }
func (f *fakeRepo) SchoolRequests() repositories.SchoolRequestRepository {
	return fakeSchoolRequests{f}
}
func (f *fakeRepo) Invitations() repositories.InvitationRepository { return fakeInvitations{f} }
func (f *fakeRepo) Courses() repositories.CourseRepository         { return fakeCourses{f} }
func (f *fakeRepo) CourseAssignments() repositories.CourseAssignmentRepository {
	return fakeAssignments{f}
}
func (f *fakeRepo) Modules() repositories.ModuleRepository { return fakeModules{f} }
func (f *fakeRepo) Lessons() repositories.LessonRepository { return fakeLessons{f} }
func (f *fakeRepo) Enrollments() repositories.EnrollmentRepository {
	return fakeEnrollments{f}
}
func (f *fakeRepo) LessonProgress() repositories.LessonProgressRepository {
	return fakeProgress{f}
}
func (f *fakeRepo) AcademicYears() repositories.AcademicYearRepository {
	return fakeYears{f}
}

// Transaction runs fn against the same store. Tests are single threaded so
// lock semantics collapse to plain reads.
func (f *fakeRepo) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func listAllUsers() repositories.UserFilters {
	return repositories.UserFilters{Limit: 100}
}

// Seed helpers.

func (f *fakeRepo) addSchool(name string) *models.School {
	school := &models.School{ID: uuid.NewString(), Name: name, Slug: name, IsActive: true}
	f.schools[school.ID] = school
	return school
}

func (f *fakeRepo) addUser(role models.UserRole, email string) *models.User {
	user := &models.User{ID: uuid.NewString(), Firstname: "Test", Lastname: "User", Role: role}
	if email != "" {
		user.Email = &email
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeRepo) addCourse(schoolID, slug string) *models.Course {
	course := &models.Course{
		ID:          uuid.NewString(),
		SchoolID:    schoolID,
		Title:       slug,
		Slug:        slug,
		Status:      models.CourseDraft,
		CreatedByID: uuid.NewString(),
	}
	f.courses[course.ID] = course
	return course
}

func (f *fakeRepo) addLesson() *models.Lesson {
	lesson := &models.Lesson{
		ID:          uuid.NewString(),
		ModuleID:    uuid.NewString(),
		Title:       "Lesson",
		ContentType: models.ContentVideo,
	}
	f.lessons[lesson.ID] = lesson
	return lesson
}

// ===== USERS =====

type fakeUsers struct{ f *fakeRepo }

func (r fakeUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Email != nil {
		for _, u := range r.f.users {
			if u.Email != nil && *u.Email == *user.Email {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	user.CreatedAt = time.Now()
	r.f.users[user.ID] = user
	return nil
}

func (r fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUsers) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUsers) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r fakeUsers) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.users[user.ID] = user
	return nil
}

func (r fakeUsers) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.f.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.SchoolID != nil && (u.SchoolID == nil || *u.SchoolID != *filters.SchoolID) {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r fakeUsers) GetBySchoolAndRole(ctx context.Context, schoolID string, role models.UserRole) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.f.users {
		if u.Role == role && u.SchoolID != nil && *u.SchoolID == schoolID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r fakeUsers) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.f.users[id]
	return ok, nil
}

// ===== SCHOOLS =====

type fakeSchools struct{ f *fakeRepo }

func (r fakeSchools) Create(ctx context.Context, school *models.School) error {
	if school.ID == "" {
		school.ID = uuid.NewString()
	}
	for _, s := range r.f.schools {
		if s.Slug == school.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.f.schools[school.ID] = school
	return nil
}

func (r fakeSchools) GetByID(ctx context.Context, id string) (*models.School, error) {
	if s, ok := r.f.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeSchools) GetByIDWithDetails(ctx context.Context, id string) (*models.School, error) {
	return r.GetByID(ctx, id)
}

func (r fakeSchools) Update(ctx context.Context, school *models.School) error {
	if _, ok := r.f.schools[school.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.schools[school.ID] = school
	return nil
}

func (r fakeSchools) Delete(ctx context.Context, id string) error {
	delete(r.f.schools, id)
	return nil
}

func (r fakeSchools) List(ctx context.Context) ([]*models.School, error) {
	var out []*models.School
	for _, s := range r.f.schools {
		out = append(out, s)
	}
	return out, nil
}

func (r fakeSchools) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.f.schools[id]
	return ok, nil
}

// ===== SECTIONS / CLASSES =====

type fakeSections struct{ f *fakeRepo }

func (r fakeSections) Create(ctx context.Context, section *models.Section) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	r.f.sections[section.ID] = section
	return nil
}

func (r fakeSections) List(ctx context.Context) ([]*models.Section, error) {
	var out []*models.Section
	for _, s := range r.f.sections {
		out = append(out, s)
	}
	return out, nil
}

func (r fakeSections) ListBySchool(ctx context.Context, schoolID string) ([]*models.Section, error) {
	var out []*models.Section
	for _, s := range r.f.sections {
		if s.SchoolID == schoolID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeClasses struct{ f *fakeRepo }

func (r fakeClasses) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	r.f.classes[class.ID] = class
	return nil
}

func (r fakeClasses) List(ctx context.Context) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range r.f.classes {
		out = append(out, c)
	}
	return out, nil
}

func (r fakeClasses) ListBySchool(ctx context.Context, schoolID string) ([]*models.Class, error) {
	var out []*models.Class
	for _, c := range r.f.classes {
		if c.SchoolID == schoolID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ===== SCHOOL REQUESTS =====

type fakeSchoolRequests struct{ f *fakeRepo }

func (r fakeSchoolRequests) Create(ctx context.Context, request *models.SchoolRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	r.f.schoolRequests[request.ID] = request
	return nil
}

func (r fakeSchoolRequests) GetByID(ctx context.Context, id string) (*models.SchoolRequest, error) {
	if req, ok := r.f.schoolRequests[id]; ok {
		return req, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeSchoolRequests) Update(ctx context.Context, request *models.SchoolRequest) error {
	if _, ok := r.f.schoolRequests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.schoolRequests[request.ID] = request
	return nil
}

func (r fakeSchoolRequests) List(ctx context.Context) ([]*models.SchoolRequest, error) {
	var out []*models.SchoolRequest
	for _, req := range r.f.schoolRequests {
		out = append(out, req)
	}
	return out, nil
}

// ===== INVITATIONS =====

type fakeInvitations struct{ f *fakeRepo }

func (r fakeInvitations) Create(ctx context.Context, invitation *models.Invitation) error {
	if invitation.ID == "" {
		invitation.ID = uuid.NewString()
	}
	for _, inv := range r.f.invitations {
		if inv.Token == invitation.Token {
			return gorm.ErrDuplicatedKey
		}
		if inv.Status == models.InvitationPending &&
			invitation.Status == models.InvitationPending &&
			inv.Email == invitation.Email && inv.SchoolID == invitation.SchoolID {
			return gorm.ErrDuplicatedKey
		}
	}
	invitation.CreatedAt = time.Now()
	r.f.invitations[invitation.ID] = invitation
	return nil
}

func (r fakeInvitations) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	if inv, ok := r.f.invitations[id]; ok {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeInvitations) GetByToken(ctx context.Context, token string) (*models.Invitation, error) {
	for _, inv := range r.f.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeInvitations) GetByTokenLocked(ctx context.Context, token string) (*models.Invitation, error) {
	return r.GetByToken(ctx, token)
}

func (r fakeInvitations) GetPending(ctx context.Context, email, schoolID string) (*models.Invitation, error) {
	for _, inv := range r.f.invitations {
		if inv.Status == models.InvitationPending && inv.Email == email && inv.SchoolID == schoolID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeInvitations) Update(ctx context.Context, invitation *models.Invitation) error {
	if _, ok := r.f.invitations[invitation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	invitation.UpdatedAt = time.Now()
	r.f.invitations[invitation.ID] = invitation
	return nil
}

func (r fakeInvitations) ListBySchool(ctx context.Context, schoolID string) ([]*models.Invitation, error) {
	var out []*models.Invitation
	for _, inv := range r.f.invitations {
		if inv.SchoolID == schoolID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ===== COURSES =====

type fakeCourses struct{ f *fakeRepo }

func (r fakeCourses) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	for _, c := range r.f.courses {
		if c.Slug == course.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	r.f.courses[course.ID] = course
	return nil
}

func (r fakeCourses) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if c, ok := r.f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeCourses) GetByIDWithDetails(ctx context.Context, id string) (*models.Course, error) {
	return r.GetByID(ctx, id)
}

func (r fakeCourses) Update(ctx context.Context, course *models.Course) error {
	if _, ok := r.f.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.courses[course.ID] = course
	return nil
}

func (r fakeCourses) Delete(ctx context.Context, id string) error {
	delete(r.f.courses, id)
	return nil
}

func (r fakeCourses) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, c := range r.f.courses {
		if filters.SchoolID != nil && c.SchoolID != *filters.SchoolID {
			continue
		}
		if filters.Status != nil && c.Status != *filters.Status {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r fakeCourses) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.f.courses[id]
	return ok, nil
}

// ===== COURSE ASSIGNMENTS =====

type fakeAssignments struct{ f *fakeRepo }

func (r fakeAssignments) Create(ctx context.Context, assignment *models.CourseAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	for _, a := range r.f.assignments {
		if a.CourseID == assignment.CourseID && a.InstructorID == assignment.InstructorID {
			return gorm.ErrDuplicatedKey
		}
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now()
	}
	r.f.assignments[assignment.ID] = assignment
	return nil
}

func (r fakeAssignments) CreateBatch(ctx context.Context, assignments []*models.CourseAssignment) error {
	for _, a := range assignments {
		if err := r.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeAssignments) GetByID(ctx context.Context, id string) (*models.CourseAssignment, error) {
	if a, ok := r.f.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeAssignments) GetByCourseAndInstructor(ctx context.Context, courseID, instructorID string) (*models.CourseAssignment, error) {
	for _, a := range r.f.assignments {
		if a.CourseID == courseID && a.InstructorID == instructorID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeAssignments) Delete(ctx context.Context, id string) error {
	delete(r.f.assignments, id)
	return nil
}

func (r fakeAssignments) DeleteByCourse(ctx context.Context, courseID string) error {
	for id, a := range r.f.assignments {
		if a.CourseID == courseID {
			delete(r.f.assignments, id)
		}
	}
	return nil
}

func (r fakeAssignments) ListByCourse(ctx context.Context, courseID string) ([]*models.CourseAssignment, error) {
	var out []*models.CourseAssignment
	for _, a := range r.f.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r fakeAssignments) ListByInstructor(ctx context.Context, instructorID string) ([]*models.CourseAssignment, error) {
	var out []*models.CourseAssignment
	for _, a := range r.f.assignments {
		if a.InstructorID == instructorID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ===== MODULES / LESSONS =====

type fakeModules struct{ f *fakeRepo }

func (r fakeModules) Create(ctx context.Context, module *models.Module) error {
	if module.ID == "" {
		module.ID = uuid.NewString()
	}
	r.f.modules[module.ID] = module
	return nil
}

func (r fakeModules) GetByID(ctx context.Context, id string) (*models.Module, error) {
	if m, ok := r.f.modules[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeModules) Update(ctx context.Context, module *models.Module) error {
	if _, ok := r.f.modules[module.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.modules[module.ID] = module
	return nil
}

func (r fakeModules) Delete(ctx context.Context, id string) error {
	delete(r.f.modules, id)
	return nil
}

func (r fakeModules) List(ctx context.Context) ([]*models.Module, error) {
	var out []*models.Module
	for _, m := range r.f.modules {
		out = append(out, m)
	}
	return out, nil
}

func (r fakeModules) ListByCourse(ctx context.Context, courseID string) ([]*models.Module, error) {
	var out []*models.Module
	for _, m := range r.f.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeLessons struct{ f *fakeRepo }

func (r fakeLessons) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}
	r.f.lessons[lesson.ID] = lesson
	return nil
}

func (r fakeLessons) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	if l, ok := r.f.lessons[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeLessons) Update(ctx context.Context, lesson *models.Lesson) error {
	if _, ok := r.f.lessons[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.lessons[lesson.ID] = lesson
	return nil
}

func (r fakeLessons) Delete(ctx context.Context, id string) error {
	delete(r.f.lessons, id)
	return nil
}

func (r fakeLessons) List(ctx context.Context) ([]*models.Lesson, error) {
	var out []*models.Lesson
	for _, l := range r.f.lessons {
		out = append(out, l)
	}
	return out, nil
}

func (r fakeLessons) ListByModule(ctx context.Context, moduleID string) ([]*models.Lesson, error) {
	var out []*models.Lesson
	for _, l := range r.f.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r fakeLessons) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.f.lessons[id]
	return ok, nil
}

// ===== ENROLLMENTS / PROGRESS =====

type fakeEnrollments struct{ f *fakeRepo }

func (r fakeEnrollments) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	for _, e := range r.f.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	r.f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r fakeEnrollments) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	if e, ok := r.f.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeEnrollments) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	for _, e := range r.f.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeEnrollments) Update(ctx context.Context, enrollment *models.Enrollment) error {
	if _, ok := r.f.enrollments[enrollment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (r fakeEnrollments) Delete(ctx context.Context, id string) error {
	delete(r.f.enrollments, id)
	return nil
}

func (r fakeEnrollments) List(ctx context.Context) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.f.enrollments {
		out = append(out, e)
	}
	return out, nil
}

func (r fakeEnrollments) ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.f.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakeEnrollments) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.f.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProgress struct{ f *fakeRepo }

func (r fakeProgress) Create(ctx context.Context, progress *models.LessonProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	for _, p := range r.f.progress {
		if p.UserID == progress.UserID && p.LessonID == progress.LessonID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.f.progress[progress.ID] = progress
	return nil
}

func (r fakeProgress) GetByID(ctx context.Context, id string) (*models.LessonProgress, error) {
	if p, ok := r.f.progress[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeProgress) GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error) {
	for _, p := range r.f.progress {
		if p.UserID == userID && p.LessonID == lessonID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeProgress) Update(ctx context.Context, progress *models.LessonProgress) error {
	if _, ok := r.f.progress[progress.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.progress[progress.ID] = progress
	return nil
}

func (r fakeProgress) Delete(ctx context.Context, id string) error {
	delete(r.f.progress, id)
	return nil
}

func (r fakeProgress) ListByUser(ctx context.Context, userID string) ([]*models.LessonProgress, error) {
	var out []*models.LessonProgress
	for _, p := range r.f.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakeProgress) ListByLesson(ctx context.Context, lessonID string) ([]*models.LessonProgress, error) {
	var out []*models.LessonProgress
	for _, p := range r.f.progress {
		if p.LessonID == lessonID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ===== ACADEMIC YEARS =====

type fakeYears struct{ f *fakeRepo }

func (r fakeYears) Create(ctx context.Context, year *models.AcademicYear) error {
	if year.ID == "" {
		year.ID = uuid.NewString()
	}
	r.f.years[year.ID] = year
	return nil
}

func (r fakeYears) GetByID(ctx context.Context, id string) (*models.AcademicYear, error) {
	if y, ok := r.f.years[id]; ok {
		return y, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeYears) Update(ctx context.Context, year *models.AcademicYear) error {
	if _, ok := r.f.years[year.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.f.years[year.ID] = year
	return nil
}

func (r fakeYears) Delete(ctx context.Context, id string) error {
	delete(r.f.years, id)
	return nil
}

func (r fakeYears) List(ctx context.Context) ([]*models.AcademicYear, error) {
	var out []*models.AcademicYear
	for _, y := range r.f.years {
		out = append(out, y)
	}
	return out, nil
}
