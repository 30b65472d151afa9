package services

import (
	"github.com/edhub-platform/school-service/internal/auth"
	"github.com/edhub-platform/school-service/internal/cache"
	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

// ServiceManager bundles every domain service behind one constructor so the
// composition root wires dependencies exactly once.
type ServiceManager interface {
	Users() UserService
	Schools() SchoolService
	Invitations() InvitationService
	Courses() CourseService
	Enrollments() EnrollmentService
	LessonProgress() LessonProgressService
	AcademicYears() AcademicYearService
}

type serviceManager struct {
	users          UserService
	schools        SchoolService
	invitations    InvitationService
	courses        CourseService
	enrollments    EnrollmentService
	lessonProgress LessonProgressService
	academicYears  AcademicYearService
}

type ManagerDeps struct {
	Repo        repositories.Repository
	Logger      utils.Logger
	Validator   *utils.Validator
	Cache       cache.CacheService
	Mailer      mailer.Mailer
	Publisher   events.EventPublisher
	Tokens      *auth.JWTManager
	FrontendURL string
}

func NewServiceManager(d ManagerDeps) ServiceManager {
	return &serviceManager{
		users:          NewUserService(d.Repo, d.Logger, d.Validator, d.Tokens),
		schools:        NewSchoolService(d.Repo, d.Logger, d.Validator, d.Cache, d.Mailer),
		invitations:    NewInvitationService(d.Repo, d.Logger, d.Validator, d.Mailer, d.Publisher, d.FrontendURL),
		courses:        NewCourseService(d.Repo, d.Logger, d.Validator, d.Publisher),
		enrollments:    NewEnrollmentService(d.Repo, d.Logger, d.Validator, d.Mailer, d.Publisher),
		lessonProgress: NewLessonProgressService(d.Repo, d.Logger, d.Validator),
		academicYears:  NewAcademicYearService(d.Repo, d.Logger, d.Validator),
	}
}

func (m *serviceManager) Users() UserService                    { return m.users }
func (m *serviceManager) Schools() SchoolService                { return m.schools }
func (m *serviceManager) Invitations() InvitationService        { return m.invitations }
func (m *serviceManager) Courses() CourseService                { return m.courses }
func (m *serviceManager) Enrollments() EnrollmentService        { return m.enrollments }
func (m *serviceManager) LessonProgress() LessonProgressService { return m.lessonProgress }
func (m *serviceManager) AcademicYears() AcademicYearService    { return m.academicYears }
