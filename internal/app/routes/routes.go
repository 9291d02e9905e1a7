package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/studybuddy/backend/internal/app/controllers"
	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/middleware"
)

// SetupRouter configures all application routes. The paths mirror a
// browser-facing app: form routes are public, everything else sits behind
// the auth middleware and redirects to /login when the token is missing.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	courseController *controllers.CourseController,
	sessionController *controllers.SessionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.GET("/", authController.Home)
	router.GET("/register", authController.ShowRegisterForm)
	router.POST("/register", authController.Register)
	router.GET("/login", authController.ShowLoginForm)
	router.POST("/login", authController.Login)
	router.POST("/refresh", authController.RefreshToken)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/logout", authController.Logout)
		authenticated.GET("/dashboard", dashboardController.GetDashboard)

		authenticated.GET("/courses", courseController.ListCourses)
		authenticated.GET("/enroll_course/:id", courseController.Enroll)
		authenticated.GET("/drop_course/:id", courseController.Drop)

		authenticated.GET("/sessions", sessionController.ListSessions)
		authenticated.GET("/create_session", sessionController.ShowCreateForm)
		authenticated.POST("/create_session", sessionController.CreateSession)
		authenticated.GET("/join_session/:id", sessionController.JoinSession)
		authenticated.GET("/leave_session/:id", sessionController.LeaveSession)
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
