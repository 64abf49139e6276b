package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/framecart/eyewear-api/auth"
	"github.com/framecart/eyewear-api/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints. Login endpoints are
// rate limited per client IP to blunt token-guessing and signup abuse.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	limiter := middleware.NewRateLimiter(5, 10)

	authGroup := r.Group("/auth")
	authGroup.Use(limiter.Middleware())
	{
		// Regular user Google login
		authGroup.POST("/google-user", func(c *gin.Context) {
			auth.GoogleUserLoginHandler(c.Writer, c.Request, db)
		})

		// Google Admin login (wrapped as a Gin handler)
		authGroup.POST("/google-admin", func(c *gin.Context) {
			auth.GoogleAdminLoginHandler(c.Writer, c.Request, db)
		})

		authGroup.POST("/guest", auth.CreateGuestUser())
	}
}
