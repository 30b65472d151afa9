package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/auth"
	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
)

type HandlerManager struct {
	userHandler       *UserHandler
	schoolHandler     *SchoolHandler
	invitationHandler *InvitationHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	yearHandler       *AcademicYearHandler
	tokens            *auth.JWTManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.JWTManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(serviceManager.Users(), logger),
		schoolHandler:     NewSchoolHandler(serviceManager.Schools(), logger),
		invitationHandler: NewInvitationHandler(serviceManager.Invitations(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Courses(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollments(), serviceManager.LessonProgress(), logger),
		yearHandler:       NewAcademicYearHandler(serviceManager.AcademicYears(), logger),
		tokens:            tokens,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "school-service",
		})
	})

	authn := auth.Middleware(hm.tokens)

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", hm.userHandler.Register)
			authGroup.POST("/login", hm.userHandler.Login)
			authGroup.POST("/google", hm.userHandler.LoginWithGoogle)
			authGroup.GET("/me", authn, hm.userHandler.GetMe)
		}

		// User routes
		users := v1.Group("/users", authn)
		{
			users.GET("", auth.RequireAdmin(), hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PATCH("/:id", hm.userHandler.UpdateUser)
			users.GET("/:id/enrollments", hm.enrollmentHandler.ListUserEnrollments)
			users.GET("/:id/progress", hm.enrollmentHandler.ListUserProgress)
			users.GET("/:id/assignments", hm.courseHandler.ListInstructorAssignments)
		}

		// School routes
		schools := v1.Group("/schools")
		{
			schools.GET("", hm.schoolHandler.ListSchools)
			schools.POST("", authn, auth.RequireAdmin(), hm.schoolHandler.CreateSchool)
			schools.GET("/:id", hm.schoolHandler.GetSchool)
			schools.GET("/:id/details", hm.schoolHandler.GetSchoolDetails)
			schools.PATCH("/:id", authn, auth.RequireSchoolAdmin(), hm.schoolHandler.UpdateSchool)
			schools.DELETE("/:id", authn, auth.RequireAdmin(), hm.schoolHandler.DeleteSchool)

			schools.GET("/:id/admins", authn, auth.RequireSchoolAdmin(), hm.schoolHandler.ListSchoolAdmins)
			schools.POST("/:id/admins", authn, auth.RequireAdmin(), hm.schoolHandler.AddSchoolAdmin)
			schools.DELETE("/:id/admins/:user_id", authn, auth.RequireAdmin(), hm.schoolHandler.RevokeSchoolAdmin)
			schools.GET("/:id/invitations", authn, auth.RequireSchoolAdmin(), hm.invitationHandler.ListSchoolInvitations)

			// Invitation workflow; accept and status are public since the
			// invitee has no account yet.
			schools.POST("/admin/send-invitation", authn, auth.RequireAdmin(), hm.invitationHandler.SendInvitation)
			schools.POST("/invitations/accept", hm.invitationHandler.AcceptInvitation)
			schools.GET("/invitations/:token/status", hm.invitationHandler.GetInvitationStatus)
			schools.POST("/invitations/:token/reject", hm.invitationHandler.RejectInvitation)

			// Public applications to open a school
			schools.POST("/requests", hm.schoolHandler.SubmitSchoolRequest)
			schools.GET("/requests", authn, auth.RequireAdmin(), hm.schoolHandler.ListSchoolRequests)
			schools.PATCH("/requests/:id", authn, auth.RequireAdmin(), hm.schoolHandler.ReviewSchoolRequest)
		}

		// Section and class routes
		sections := v1.Group("/sections")
		{
			sections.GET("", hm.schoolHandler.ListSections)
			sections.POST("", authn, auth.RequireSchoolAdmin(), hm.schoolHandler.AddSection)
		}
		classes := v1.Group("/classes")
		{
			classes.GET("", hm.schoolHandler.ListClasses)
			classes.POST("", authn, auth.RequireSchoolAdmin(), hm.schoolHandler.AddClass)
		}

		// Course routes
		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.POST("", authn, auth.RequireSchoolAdmin(), hm.courseHandler.CreateCourse)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.GET("/:id/details", hm.courseHandler.GetCourseDetails)
			courses.PATCH("/:id", authn, auth.RequireSchoolAdmin(), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", authn, auth.RequireSchoolAdmin(), hm.courseHandler.DeleteCourse)

			courses.POST("/:id/assign-instructor", authn, auth.RequireSchoolAdmin(), hm.courseHandler.AssignInstructor)
			courses.POST("/:id/assign-instructors", authn, auth.RequireSchoolAdmin(), hm.courseHandler.ReplaceInstructors)
			courses.DELETE("/:id/instructors/:instructor_id", authn, auth.RequireSchoolAdmin(), hm.courseHandler.UnassignInstructor)
			courses.GET("/:id/instructors", hm.courseHandler.ListAssignments)

			courses.PATCH("/:id/publish", authn, auth.RequireSchoolAdmin(), hm.courseHandler.SetPublished)
			courses.GET("/:id/roster", authn, auth.RequireSchoolAdmin(), hm.courseHandler.ExportRoster)
			courses.GET("/:id/enrollments", authn, auth.RequireSchoolAdmin(), hm.enrollmentHandler.ListCourseEnrollments)
		}

		// Module and lesson routes
		modules := v1.Group("/modules", authn, auth.RequireSchoolAdmin())
		{
			modules.POST("", hm.courseHandler.AddModule)
			modules.PATCH("/:id", hm.courseHandler.UpdateModule)
			modules.DELETE("/:id", hm.courseHandler.DeleteModule)
		}
		lessons := v1.Group("/lessons", authn, auth.RequireSchoolAdmin())
		{
			lessons.POST("", hm.courseHandler.AddLesson)
			lessons.PATCH("/:id", hm.courseHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.courseHandler.DeleteLesson)
			lessons.GET("/:id/progress", hm.enrollmentHandler.ListLessonProgress)
		}

		// Enrollment routes
		enrollments := v1.Group("/enrollments", authn)
		{
			enrollments.GET("", auth.RequireAdmin(), hm.enrollmentHandler.ListEnrollments)
			enrollments.POST("", hm.enrollmentHandler.Enroll)
			enrollments.GET("/:id", hm.enrollmentHandler.GetEnrollment)
			enrollments.PATCH("/:id", hm.enrollmentHandler.UpdateEnrollment)
			enrollments.DELETE("/:id", hm.enrollmentHandler.Unenroll)
		}

		// Lesson progress routes
		progress := v1.Group("/lesson-progress", authn)
		{
			progress.POST("", hm.enrollmentHandler.StartProgress)
			progress.PATCH("/:id", hm.enrollmentHandler.UpdateProgress)
			progress.GET("/:user_id/:lesson_id", hm.enrollmentHandler.GetProgress)
		}

		// Academic year routes
		years := v1.Group("/academic-years")
		{
			years.GET("", hm.yearHandler.ListAcademicYears)
			years.GET("/:id", hm.yearHandler.GetAcademicYear)
			years.POST("", authn, auth.RequireAdmin(), hm.yearHandler.CreateAcademicYear)
			years.PATCH("/:id", authn, auth.RequireAdmin(), hm.yearHandler.UpdateAcademicYear)
			years.DELETE("/:id", authn, auth.RequireAdmin(), hm.yearHandler.DeleteAcademicYear)
		}
	}
}
