package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Pawandasila/ai-image-editor/internal/api"
	"github.com/Pawandasila/ai-image-editor/internal/events"
	"github.com/Pawandasila/ai-image-editor/internal/repository"
	"github.com/Pawandasila/ai-image-editor/internal/s3"
	"github.com/Pawandasila/ai-image-editor/internal/service"
	"github.com/Pawandasila/ai-image-editor/internal/tracing"
	_ "github.com/Pawandasila/ai-image-editor/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("editor-api")

	shutdownTracer, err := tracing.InitTracerProvider("editor-api")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	presigner, err := s3.NewImagePresigner()
	if err != nil {
		log.Fatalf("Failed to configure S3 presigner: %v", err)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	folderRepo := repository.NewPostgresFolderRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)

	userService := service.NewUserService(userRepo, eventPublisher)
	folderService := service.NewFolderService(folderRepo)
	projectService := service.NewProjectService(projectRepo, eventPublisher)

	userHandler := api.NewUserHandler(userService)
	folderHandler := api.NewFolderHandler(folderService)
	projectHandler := api.NewProjectHandler(projectService)
	uploadHandler := api.NewUploadHandler(presigner)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "editor-api"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")
	v1.Use(api.AuthMiddleware())

	requireUser := api.RequireUser(userService)

	userRoutes := v1.Group("/users")
	userRoutes.Post("/sync", userHandler.Sync)
	userRoutes.Get("/me", requireUser, userHandler.Me)
	userRoutes.Get("/me/plan", requireUser, userHandler.GetPlan)
	userRoutes.Patch("/me/plan", requireUser, userHandler.UpdatePlan)
	userRoutes.Post("/me/exports", requireUser, userHandler.RecordExport)

	adminRoutes := v1.Group("/admin", requireUser)
	adminRoutes.Patch("/users/:id/plan", userHandler.AdminUpdatePlan)

	folderRoutes := v1.Group("/folders", requireUser)
	folderRoutes.Get("/", folderHandler.List)
	folderRoutes.Post("/", folderHandler.Create)
	folderRoutes.Patch("/:id", folderHandler.Rename)
	folderRoutes.Delete("/:id", folderHandler.Delete)

	projectRoutes := v1.Group("/projects", requireUser)
	projectRoutes.Get("/", projectHandler.List)
	projectRoutes.Post("/", projectHandler.Create)
	projectRoutes.Get("/:id", projectHandler.Get)
	projectRoutes.Patch("/:id", projectHandler.Update)
	projectRoutes.Put("/:id/folder", projectHandler.MoveToFolder)
	projectRoutes.Delete("/:id", projectHandler.Delete)

	uploadRoutes := v1.Group("/uploads", requireUser)
	uploadRoutes.Post("/", uploadHandler.PresignUpload)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8001"
	}

	log.Printf("Listening editor-api on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
