package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "draftweaver/configs"
	"draftweaver/internal/api/handlers"
	"draftweaver/internal/api/middleware"
	job "draftweaver/internal/jobs"
	"draftweaver/internal/queue"
	"draftweaver/internal/repository"
	"draftweaver/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Signature",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	integrationRepo := repository.NewIntegrationRepository(db)

	llmClient := service.NewOpenAIClient(*cfg)
	r2Service := service.NewR2Service(*cfg)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	draftService := service.NewDraftService(draftRepo, *r2Service)
	captionService := service.NewCaptionService(draftRepo, profileRepo, eventRepo, llmClient)
	editService := service.NewEditService(*cfg, draftRepo, eventRepo)
	scheduleService := service.NewScheduleService(*cfg, db, draftRepo, scheduledPostRepo, eventRepo)
	styleService := service.NewStyleService(profileRepo, eventRepo, llmClient)
	settingsService := service.NewSettingsService(settingsRepo, integrationRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	// automation webhooks, authenticated by HMAC signature
	webhook := handlers.NewWebhookHandler(*cfg, captionService, editService, scheduleService, styleService, client)
	hooks := app.Group("/webhooks")
	hooks.Post("/generate-caption", webhook.GenerateCaption)
	hooks.Post("/request-edit", webhook.RequestEdit)
	hooks.Post("/schedule-post", webhook.SchedulePost)
	hooks.Post("/mark-posted", webhook.MarkPosted)
	hooks.Post("/process-scheduled-posts", webhook.ProcessScheduledPosts)
	hooks.Post("/analyze-style", webhook.AnalyzeStyle)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	draft := handlers.NewDraftHandler(draftService)
	api.Post("/drafts/create", draft.CreateDraft)
	api.Get("/drafts", draft.ListDrafts)
	api.Patch("/drafts/update", draft.UpdateDraft)
	api.Post("/drafts/remove", draft.RemoveDraft)

	activity := handlers.NewActivityHandler(eventRepo, scheduleService)
	api.Get("/events", activity.ListEvents)
	api.Get("/posts/upcoming", activity.UpcomingPosts)

	style := handlers.NewStyleHandler(styleService)
	api.Post("/style/build", style.BuildStyle)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)
	api.Get("/integrations", settings.GetIntegrations)

	// cron jobs
	sweepJob := job.NewSweepJob(scheduleService)

	// queue
	queueW := queue.NewQueue(editService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", sweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeEditRender, queueW.HandleEditRenderTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
