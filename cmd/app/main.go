package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"tracking/cmd"
	"tracking/internal/adapters/out/storage/kvrepo"
	"tracking/internal/adapters/out/storage/memkv"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	clearPolicy, err := commands.ParseClearPolicy(configs.ClearPolicy)
	if err != nil {
		log.Fatalf("Invalid CLEAR_POLICY: %v", err)
	}

	kv, err := createKeyValueStore(configs)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := cmd.NewCompositionRoot(configs, kv, clearPolicy, logger)

	if err := app.Tracker().Start(context.Background()); err != nil {
		// The resume job retries; a failed first load is not fatal.
		logger.Warn("initial tracking start failed", "error", err)
	}
	defer app.Tracker().Stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		StorageDriver:         envOrDefault("STORAGE_DRIVER", "postgres"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		ClearPolicy:           os.Getenv("CLEAR_POLICY"),
		ResumeIntervalSeconds: envIntOrDefault("RESUME_INTERVAL_SECONDS", 5),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func createKeyValueStore(configs cmd.Config) (ports.KeyValueStore, error) {
	switch configs.StorageDriver {
	case "memory":
		return memkv.NewStore(), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			configs.DBHost, configs.DBPort, configs.DBUser,
			configs.DBPassword, configs.DBName, configs.DBSslMode)
		db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&kvrepo.KVRecordDTO{}); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		return kvrepo.NewGormKeyValueStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", configs.StorageDriver)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
