package main

import (
	"github.com/enigmahq/taskboard/internal/config"
	"github.com/enigmahq/taskboard/internal/database"
	"github.com/enigmahq/taskboard/internal/handlers"
	"github.com/enigmahq/taskboard/internal/logging"
	"github.com/enigmahq/taskboard/internal/middleware"
	"github.com/enigmahq/taskboard/internal/repository"
	"github.com/enigmahq/taskboard/internal/services"
	"github.com/enigmahq/taskboard/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	logging.Init(cfg.GinMode)
	log := logging.Logger

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions("taskboard_session", store))

	fileStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, cfg.AllowedEmailDomains)
	teamService := services.NewTeamService(teamRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)
	uploadHandler := handlers.NewUploadHandler(fileStore)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.Static(cfg.UploadBaseURL, cfg.UploadDir)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.POST("/join", teamHandler.JoinTeam)
			teams.GET("/me", teamHandler.GetMyTeam)
			teams.DELETE("/me", teamHandler.LeaveTeam)
			teams.GET("", middleware.RequireAdmin(), teamHandler.ListTeams)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/accept", taskHandler.AcceptTask)
			tasks.POST("/:id/start", taskHandler.StartTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.POST("/:id/submit", taskHandler.SubmitWork)
			tasks.POST("/:id/close", middleware.RequireAdmin(), taskHandler.CloseTask)
			tasks.POST("/:id/reopen", middleware.RequireAdmin(), taskHandler.ReopenTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.POST("/:id/comments", taskHandler.AddComment)
			tasks.GET("/:id/comments", taskHandler.ListComments)
			tasks.GET("/:id/activity", taskHandler.ListActivity)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			users.GET("", authHandler.ListUsers)
		}

		api.POST("/upload", middleware.RequireAuth(), uploadHandler.Upload)
	}

	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
