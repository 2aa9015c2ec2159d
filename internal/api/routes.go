package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	programService service.ProgramService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	programHandler := NewProgramHandler(programService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
		})

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/image", exerciseHandler.RequestImageUpload)
			exerciseGroup.POST("/:id/image/confirm", exerciseHandler.ConfirmImageUpload)
		}

		// --- Program Routes ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.PUT("/:id/sessions", programHandler.UpdateProgramSessions)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
			programGroup.POST("/:id/clone", programHandler.CloneProgram)
			programGroup.GET("/:id/schedule", programHandler.GetSchedule)
			programGroup.GET("/:id/volume", programHandler.GetVolume)
			programGroup.GET("/:id/volume/warnings", programHandler.GetVolumeWarnings)
		}

		// Template browsing is open to every authenticated user; template
		// authoring goes through the same program endpoints, gated by role
		// inside the service layer.
		protected.GET("/templates", programHandler.ListTemplates)

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.GET("/organizations/:id/members", authHandler.ListOrganizationMembers)
		}
	}
}
