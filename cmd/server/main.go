package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/webplanner/webplanner-api/internal/config"
	"github.com/webplanner/webplanner-api/internal/database"
	"github.com/webplanner/webplanner-api/internal/handlers"
	"github.com/webplanner/webplanner-api/internal/middleware"
	"github.com/webplanner/webplanner-api/internal/repository"
	"github.com/webplanner/webplanner-api/internal/services"
	"github.com/webplanner/webplanner-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize blob storage
	blobs, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo)
	taskService := services.NewTaskService(taskRepo)
	subtaskService := services.NewSubtaskService(subtaskRepo)
	attachmentService := services.NewAttachmentService(fileRepo, taskRepo, blobs)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	fileHandler := handlers.NewFileHandler(attachmentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Webplanner API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(authService), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(authService), authHandler.GetCurrentUser)
			auth.DELETE("/me", middleware.RequireAuth(authService), authHandler.DeleteAccount)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(authService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/subtasks", subtaskHandler.AddSubtask)
			tasks.PATCH("/:id/subtasks/:subtask_id", subtaskHandler.UpdateSubtask)
			tasks.DELETE("/:id/subtasks/:subtask_id", subtaskHandler.DeleteSubtask)
		}

		// File routes (protected)
		files := api.Group("/files")
		files.Use(middleware.RequireAuth(authService))
		{
			files.POST("", fileHandler.Upload)
			files.GET("/:id", fileHandler.Fetch)
			files.GET("/:id/download", fileHandler.Download)
			files.DELETE("/:id", fileHandler.Delete)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
