package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jobtracker-app/jobtracker/internal/auth"
	"github.com/jobtracker-app/jobtracker/internal/config"
	"github.com/jobtracker-app/jobtracker/internal/database"
	"github.com/jobtracker-app/jobtracker/internal/handlers"
	"github.com/jobtracker-app/jobtracker/internal/services"
)

func main() {
	// 1. Load Environment Variables (.env is optional)
	_ = godotenv.Load()
	cfg := config.Load()

	log.Println("=== JobTracker Startup ===")
	log.Println("SQLite file:   ", cfg.DBPath)
	log.Println("Identity URL:  ", cfg.IdentityAPIURL)
	log.Println("Snapshot cron: ", cfg.SnapshotCron)
	log.Println("HTTP port:     ", cfg.Port)
	log.Println("==========================")
	if cfg.IdentityAPIKey == "" {
		log.Println("⚠️  IDENTITY_API_KEY is empty; sign-in/sign-up will fail until it is set.")
	}

	// 2. Local Persistence (SQLite-backed key-value store)
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}
	defer db.Close()

	kv := database.NewKV(db)
	if err := kv.Migrate(context.Background()); err != nil {
		log.Fatal("Failed to migrate local store:", err)
	}

	// 3. Authentication Gate
	// The gate subscribes first, then Start publishes the restored-session
	// event; the gate leaves "loading" only through that push.
	identity := auth.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey, kv)
	gate := auth.NewGate(identity)
	defer gate.Close()
	identity.Start(context.Background())

	// 4. Core Services
	recordService := services.NewRecordService(context.Background(), kv)
	formService := services.NewFormService(recordService)
	recordService.SetDraftNotifier(formService)

	snapshotService := services.NewSnapshotService(kv, cfg.SnapshotCron)
	if err := snapshotService.Start(); err != nil {
		log.Fatal("Failed to start snapshot scheduler:", err)
	}
	defer snapshotService.Stop()

	// 5. Handlers
	authHandler := handlers.NewAuthHandler(identity, gate)
	appHandler := handlers.NewApplicationHandler(recordService)
	draftHandler := handlers.NewDraftHandler(formService)

	// 6. Router & CORS (the browser form runs on another origin)
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 7. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/signin", authHandler.SignIn)
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signout", authHandler.SignOut)
		api.GET("/auth/session", authHandler.Session)

		// Everything below is suppressed until the gate is authenticated.
		app := api.Group("", gate.Middleware())
		{
			app.GET("/applications", appHandler.ListApplications)
			app.GET("/applications/stats", appHandler.GetStats)
			app.POST("/applications", appHandler.CreateApplication)
			app.PUT("/applications/:id", appHandler.UpdateApplication)
			app.DELETE("/applications/:id", appHandler.DeleteApplication)
			app.DELETE("/applications", appHandler.ClearApplications)

			app.GET("/draft", draftHandler.GetDraft)
			app.PUT("/draft", draftHandler.PutDraft)
			app.POST("/draft/edit/:id", draftHandler.StartEdit)
			app.POST("/draft/reset", draftHandler.ResetDraft)
			app.POST("/draft/submit", draftHandler.SubmitDraft)
		}
	}

	log.Println("🚀 Server starting on port " + cfg.Port + "...")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
