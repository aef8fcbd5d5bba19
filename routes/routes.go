package routes

import (
	"net/http"
	"time"

	"adminpanel/handlers"
	"adminpanel/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login and OTP endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignupHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/admin-login", hb.Auth.AdminLoginHandler)
		api.POST("/resend-otp", hb.Auth.ResendOTPHandler)
		api.POST("/verify-otp", hb.Auth.VerifyOTPHandler)

		api.GET("/profile", requireAuth(hb), hb.Auth.ProfileHandler)
	}
}

// RegisterUserRoutes registers managed-user and admin-account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		// Bootstrap; the service refuses once any admin exists.
		api.POST("/init-admin", hb.Users.InitAdminHandler)

		admin := api.Group("")
		admin.Use(requireAuth(hb), middleware.RequireAdmin())
		admin.POST("", hb.Users.CreateUserHandler)
		admin.GET("", hb.Users.ListUsersHandler)
		admin.POST("/admin", hb.Users.CreateAdminHandler)
		admin.GET("/:id", hb.Users.GetUserByIDHandler)
		admin.PUT("/:id", hb.Users.UpdateUserHandler)
		admin.DELETE("/:id", hb.Users.DeleteUserHandler)
	}
}

// RegisterVersionRoutes registers app version endpoints.
func RegisterVersionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/versions")
	{
		api.Use(requireAuth(hb), middleware.RequireAdmin())
		api.POST("", hb.Versions.CreateVersionHandler)
		api.GET("", hb.Versions.ListVersionsHandler)
		api.GET("/:id", hb.Versions.GetVersionHandler)
		api.PUT("/:id", hb.Versions.UpdateVersionHandler)
		api.DELETE("/:id", hb.Versions.DeleteVersionHandler)
	}
}

// RegisterWallpaperRoutes registers wallpaper endpoints.
func RegisterWallpaperRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wallpapers")
	{
		api.Use(requireAuth(hb), middleware.RequireAdmin())
		api.POST("", hb.Wallpapers.CreateWallpaperHandler)
		api.GET("", hb.Wallpapers.ListWallpapersHandler)
		api.GET("/:id", hb.Wallpapers.GetWallpaperHandler)
		api.PUT("/:id", hb.Wallpapers.UpdateWallpaperHandler)
		api.DELETE("/:id", hb.Wallpapers.DeleteWallpaperHandler)
	}
}

// RegisterHealthRoute registers the root banner and the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})
	if hb.Health != nil {
		r.GET("/health", handlers.HealthHandler(hb.Health))
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// uploadDir is served read-only under /uploads.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, uploadDir string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.SanitizeBody())

	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterVersionRoutes(r, hb)
	RegisterWallpaperRoutes(r, hb)
}

func requireAuth(hb *handlers.HandlerBundle) gin.HandlerFunc {
	return middleware.RequireAuth(hb.Tokens, hb.UserRepo, hb.AdminRepo)
}
