package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfuentes/escolar/internal/app/controllers"
	"github.com/mfuentes/escolar/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public; mutations
// require a bearer token. The /estudiantes group is a legacy alias kept for
// clients that predate the /alumnos naming.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	institutionController *controllers.InstitutionController,
	periodController *controllers.PeriodController,
	gradeController *controllers.GradeController,
	teacherController *controllers.TeacherController,
	subjectController *controllers.SubjectController,
	studentController *controllers.StudentController,
	scoreController *controllers.ScoreController,
	staffController *controllers.StaffController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)

		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.JWTAuth())
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/me", authController.Me)
		}
	}

	// --- Public read routes ---
	v1.GET("/instituciones", institutionController.ListInstitutions)
	v1.GET("/instituciones/:id", institutionController.GetInstitution)

	v1.GET("/periodos", periodController.ListPeriods)
	v1.GET("/periodos/:id", periodController.GetPeriod)

	v1.GET("/grados", gradeController.ListGrades)
	v1.GET("/grados/:id", gradeController.GetGrade)

	v1.GET("/profesores", teacherController.ListTeachers)
	v1.GET("/profesores/:id", teacherController.GetTeacher)

	v1.GET("/materias", subjectController.ListSubjects)
	v1.GET("/materias/:id", subjectController.GetSubject)

	v1.GET("/alumnos", studentController.ListStudents)
	v1.GET("/alumnos/:id", studentController.GetStudent)
	v1.GET("/estudiantes", studentController.ListStudents)
	v1.GET("/estudiantes/:id", studentController.GetStudent)

	v1.GET("/calificaciones", scoreController.ListScores)
	v1.GET("/calificaciones/:id", scoreController.GetScore)

	v1.GET("/personal", staffController.ListStaff)
	v1.GET("/personal/:id", staffController.GetStaff)

	// --- Protected mutation routes ---
	protected := v1.Group("")
	protected.Use(authMiddleware.JWTAuth())
	{
		protected.POST("/instituciones", institutionController.CreateInstitution)
		protected.PUT("/instituciones/:id", institutionController.UpdateInstitution)
		protected.DELETE("/instituciones/:id", institutionController.DeleteInstitution)

		protected.POST("/periodos", periodController.CreatePeriod)
		protected.PUT("/periodos/:id", periodController.UpdatePeriod)
		protected.DELETE("/periodos/:id", periodController.DeletePeriod)

		protected.POST("/grados", gradeController.CreateGrade)
		protected.PUT("/grados/:id", gradeController.UpdateGrade)
		protected.DELETE("/grados/:id", gradeController.DeleteGrade)

		protected.POST("/profesores", teacherController.CreateTeacher)
		protected.PUT("/profesores/:id", teacherController.UpdateTeacher)
		protected.DELETE("/profesores/:id", teacherController.DeleteTeacher)

		protected.POST("/materias", subjectController.CreateSubject)
		protected.PUT("/materias/:id", subjectController.UpdateSubject)
		protected.DELETE("/materias/:id", subjectController.DeleteSubject)

		protected.POST("/alumnos", studentController.CreateStudent)
		protected.PUT("/alumnos/:id", studentController.UpdateStudent)
		protected.DELETE("/alumnos/:id", studentController.DeleteStudent)
		protected.POST("/estudiantes", studentController.CreateStudent)
		protected.PUT("/estudiantes/:id", studentController.UpdateStudent)
		protected.DELETE("/estudiantes/:id", studentController.DeleteStudent)

		protected.POST("/calificaciones", scoreController.CreateScore)
		protected.PUT("/calificaciones/:id", scoreController.UpdateScore)
		protected.DELETE("/calificaciones/:id", scoreController.DeleteScore)

		protected.POST("/personal", staffController.CreateStaff)
		protected.PUT("/personal/:id", staffController.UpdateStaff)
		protected.DELETE("/personal/:id", staffController.DeleteStaff)
	}
}
