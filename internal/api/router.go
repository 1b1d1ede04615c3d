package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/auth"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

func SetupRouter(resolver *store.Resolver, handler *Handler, authHandler *AuthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), Recovery())
	router.Use(cors.Default())
	router.Use(auth.Identity(resolver))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", handler.ListProjects)
			projects.POST("", handler.CreateProject)
			projects.GET("/:id", handler.GetProject)
			projects.PUT("/:id", handler.UpdateProject)
			projects.DELETE("/:id", handler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", handler.ListTasks)
			tasks.POST("", handler.CreateTask)
			tasks.GET("/:id", handler.GetTask)
			tasks.PUT("/:id", handler.UpdateTask)
			tasks.DELETE("/:id", handler.DeleteTask)
		}

		requirements := api.Group("/requirements")
		{
			requirements.GET("", handler.ListRequirements)
			requirements.POST("", handler.CreateRequirement)
			requirements.GET("/:id", handler.GetRequirement)
			requirements.PUT("/:id", handler.UpdateRequirement)
			requirements.DELETE("/:id", handler.DeleteRequirement)
		}

		defects := api.Group("/defects")
		{
			defects.GET("", handler.ListDefects)
			defects.POST("", handler.CreateDefect)
			defects.GET("/:id", handler.GetDefect)
			defects.PUT("/:id", handler.UpdateDefect)
			defects.DELETE("/:id", handler.DeleteDefect)
		}

		users := api.Group("/users")
		{
			users.GET("", handler.ListUsers)
			users.GET("/:id", handler.GetUser)
		}

		preference := api.Group("/user/preference")
		{
			preference.GET("", handler.GetPreference)
			preference.POST("", handler.SavePreference)
		}

		api.GET("/init-db", handler.InitDB)
		api.POST("/init-db", handler.InitDB)
		api.GET("/seed", handler.SeedData)
		api.POST("/seed", handler.SeedData)
	}

	// The dashboard pages themselves are served elsewhere; this gate is the
	// server-side equivalent of the edge redirect in front of them.
	dashboard := router.Group("/dashboard", auth.DashboardGuard())
	dashboard.GET("/*page", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	router.GET("/health", handler.Health)

	return router
}
