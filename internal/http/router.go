package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/devconnect/devconnect-backend/internal/http/handlers"
	httpMW "github.com/devconnect/devconnect-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	PostHandler    *httpH.PostHandler
	ProfileHandler *httpH.ProfileHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Public
		api.POST("/users", cfg.AuthHandler.Register)
		api.POST("/auth", cfg.AuthHandler.Login)
		api.GET("/profile", cfg.ProfileHandler.List)
		api.GET("/profile/user/:user_id", cfg.ProfileHandler.GetByUser)
		api.GET("/profile/github/:username", cfg.ProfileHandler.GithubRepos)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/auth", cfg.AuthHandler.Me)

		protected.POST("/posts", cfg.PostHandler.Create)
		protected.GET("/posts", cfg.PostHandler.List)
		protected.GET("/posts/:id", cfg.PostHandler.Get)
		protected.DELETE("/posts/:id", cfg.PostHandler.Delete)
		protected.PUT("/posts/:id/like", cfg.PostHandler.Like)
		protected.PUT("/posts/:id/unlike", cfg.PostHandler.Unlike)
		protected.POST("/posts/:id/comments", cfg.PostHandler.AddComment)
		protected.DELETE("/posts/:id/comments/:comment_id", cfg.PostHandler.DeleteComment)

		protected.GET("/profile/me", cfg.ProfileHandler.Me)
		protected.POST("/profile", cfg.ProfileHandler.Upsert)
		protected.DELETE("/profile", cfg.ProfileHandler.Delete)
		protected.PUT("/profile/experience", cfg.ProfileHandler.AddExperience)
		protected.DELETE("/profile/experience/:exp_id", cfg.ProfileHandler.DeleteExperience)
		protected.PUT("/profile/education", cfg.ProfileHandler.AddEducation)
		protected.DELETE("/profile/education/:edu_id", cfg.ProfileHandler.DeleteEducation)
	}

	return r
}
