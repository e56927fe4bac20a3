package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"routeplan/cmd"
	"routeplan/internal/adapters/out/notify"
	"routeplan/internal/adapters/out/optimizer"
	"routeplan/internal/adapters/out/postgres/orderrepo"
	"routeplan/internal/adapters/out/postgres/routerepo"
	"routeplan/internal/adapters/out/proofstore"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	ctx := context.Background()
	proofStore, err := proofstore.NewS3Store(ctx, configs.AWSRegion, configs.ProofBucket)
	if err != nil {
		log.Fatalf("Error creating proof store: %v", err)
	}

	notifier, err := notify.NewSESNotifier(
		ctx, configs.AWSRegion, configs.SESSender, configs.DispatchEmail, configs.AppBaseURL)
	if err != nil {
		log.Fatalf("Error creating driver notifier: %v", err)
	}

	optimizerClient := optimizer.NewClient(configs.OptimizerURL, configs.OptimizerTimeout, logger)

	app := cmd.NewCompositionRoot(
		configs, gormDB, redisClient, optimizerClient, proofStore, notifier, logger)

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer app.JobManager().StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:         envOrDefault("HTTP_PORT", "8080"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           envOrDefault("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        envOrDefault("DB_SSLMODE", "disable"),
		OptimizerURL:     os.Getenv("OPTIMIZER_URL"),
		OptimizerTimeout: durationOrDefault("OPTIMIZER_TIMEOUT", 30*time.Second),
		RedisAddr:        envOrDefault("REDIS_ADDR", "localhost:6379"),
		AWSRegion:        envOrDefault("AWS_REGION", "eu-west-1"),
		ProofBucket:      os.Getenv("PROOF_BUCKET"),
		SESSender:        os.Getenv("SES_SENDER"),
		DispatchEmail:    os.Getenv("DISPATCH_EMAIL"),
		AppBaseURL:       os.Getenv("APP_BASE_URL"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &routerepo.RouteDTO{}, &routerepo.StopDTO{})
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
