// main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"teamboard/backend"
	"teamboard/database"
	"teamboard/handlers"
	"teamboard/middleware"
	"teamboard/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Durable key-value storage: session token, session user, theme.
	kv := database.MustOpen(getEnv("KV_PATH", "teamboard.db"))
	defer kv.Close()

	st := store.New(store.Options{
		Backend:  backend.New(),
		Verifier: backend.DefaultAllowList(),
		KV:       kv,
		Secret:   store.SecretFromEnv(),
		Seed:     true,
	})

	// Restore a persisted session, if any. A missing session is the normal
	// cold-start case.
	if err := st.Session.Restore(); err == nil {
		log.Printf("Restored session for %s", st.Session.User().Email)
	}

	h := handlers.New(st)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// API routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	authGroup.Post("/login", h.Login)
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/logout", middleware.Auth, h.Logout)
	authGroup.Get("/session", h.Session)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.Auth)
	userGroup.Get("/me", h.Me)
	userGroup.Put("/me", h.UpdateMe)

	// Team routes
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.Auth)
	teamGroup.Get("/", h.ListTeams)
	teamGroup.Post("/", h.CreateTeam)
	teamGroup.Get("/invitations", h.ListInvitations)
	teamGroup.Get("/:id", h.GetTeam)
	teamGroup.Put("/:id/select", h.SelectTeam)
	teamGroup.Post("/:id/invitations", h.InviteMember)
	teamGroup.Put("/:id/members/:userId/role", h.UpdateMemberRole)
	teamGroup.Delete("/:id/members/:userId", h.RemoveMember)

	// Project routes
	projectGroup := api.Group("/projects")
	projectGroup.Use(middleware.Auth)
	projectGroup.Get("/", h.ListProjects)
	projectGroup.Post("/", h.CreateProject)
	projectGroup.Get("/:id", h.GetProject)
	projectGroup.Put("/:id", h.UpdateProject)
	projectGroup.Delete("/:id", h.DeleteProject)
	projectGroup.Put("/:id/select", h.SelectProject)
	projectGroup.Post("/:id/members", h.AddProjectMember)
	projectGroup.Delete("/:id/members/:userId", h.RemoveProjectMember)

	// Task routes
	taskGroup := api.Group("/tasks")
	taskGroup.Use(middleware.Auth)
	taskGroup.Get("/", h.ListTasks)
	taskGroup.Post("/", h.CreateTask)
	taskGroup.Get("/board", h.Board)
	taskGroup.Delete("/filters", h.ClearTaskFilters)
	taskGroup.Put("/:id", h.UpdateTask)
	taskGroup.Put("/:id/move", h.MoveTask)
	taskGroup.Delete("/:id", h.DeleteTask)
	taskGroup.Post("/:id/comments", h.AddComment)

	// Chat routes
	chatGroup := api.Group("/chat")
	chatGroup.Use(middleware.Auth)
	chatGroup.Get("/conversations", h.ListConversations)
	chatGroup.Post("/conversations", h.CreateConversation)
	chatGroup.Get("/conversations/:id/messages", h.ConversationMessages)
	chatGroup.Put("/conversations/:id/read", h.MarkConversationRead)
	chatGroup.Put("/conversations/:id/select", h.SelectConversation)
	chatGroup.Post("/messages", h.SendMessage)
	chatGroup.Post("/typing", h.Typing)

	// Notification routes
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(middleware.Auth)
	notificationGroup.Get("/", h.ListNotifications)
	notificationGroup.Post("/", h.AddNotification)
	notificationGroup.Put("/read-all", h.MarkAllNotificationsRead)
	notificationGroup.Put("/:id/read", h.MarkNotificationRead)
	notificationGroup.Delete("/:id", h.DeleteNotification)

	// Stats routes
	api.Get("/stats/dashboard", middleware.Auth, h.Dashboard)

	// UI preference routes
	prefGroup := api.Group("/preferences")
	prefGroup.Use(middleware.Auth)
	prefGroup.Get("/", h.GetPreferences)
	prefGroup.Put("/theme", h.SetTheme)
	prefGroup.Put("/sidebar", h.SetSidebar)
	prefGroup.Put("/view", h.SetView)
	prefGroup.Put("/modals", h.SetModal)

	// Chat websocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(h.ChatSocket))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := getEnv("PORT", "3000")
	log.Printf("HTTP server starting on port %s", port)
	log.Printf("Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("WebSocket available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if os.Getenv("APP_ENV") == "production" {
		if jwtSecret == "" {
			log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
		}
		if len(jwtSecret) < 32 {
			log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
		}
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
