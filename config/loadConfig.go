package config

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"
)

// Default values for testing.
const (
	defaultTimeoutSeconds = 30
	defaultMongoURI       = "mongodb://localhost:27017/financewise"
	defaultMongoHost      = "localhost"
	defaultMongoPort      = "27017"
	defaultDatabase       = "financewise"
	defaultCollection     = "appState"
	defaultJWTSecret      = "dev-secret"
	defaultCronSchedule   = "@daily"
	defaultStatementDir   = "./statements"
	envMongoURI           = "MONGO_URI"
	envMongoHost          = "MONGO_HOST"
	envMongoUser          = "MONGO_USER"
	envMongoPassword      = "MONGO_PASSWORD"
	envDatabase           = "FINANCE_DB"
	envCollection         = "FINANCE_COLLECTION"
	envJWTSecret          = "JWT_SECRET"
	envCronSchedule       = "LOAN_REVIEW_SCHEDULE"
	envStatementDir       = "STATEMENT_DIR"
)

// LoadConfig loads the application configuration from environment variables or uses default values.
func LoadConfig(ctx context.Context, logger *slog.Logger) *Config {
	mongoURI := os.Getenv(envMongoURI)
	mongoURI = formatMongoURI(ctx, mongoURI, logger)

	return &Config{
		MongoURI:     mongoURI,
		Database:     getEnv(ctx, envDatabase, defaultDatabase, logger),
		Collection:   getEnv(ctx, envCollection, defaultCollection, logger),
		JWTSecret:    getEnv(ctx, envJWTSecret, defaultJWTSecret, logger),
		CronSchedule: getEnv(ctx, envCronSchedule, defaultCronSchedule, logger),
		StatementDir: getEnv(ctx, envStatementDir, defaultStatementDir, logger),
		Timeout:      defaultTimeoutSeconds * time.Second,
	}
}

// Fetch an env var or fall back to a default value.
func getEnv(ctx context.Context, key, fallback string, logger *slog.Logger) string {
	value := os.Getenv(key)
	if value == "" {
		logger.DebugContext(ctx, "Using default value", "key", key, "value", fallback)
		return fallback
	}

	logger.DebugContext(ctx, "Using value from environment variable", "key", key, "value", value)
	return value
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(
	ctx context.Context,
	mongoURI string,
	logger *slog.Logger,
) string {
	if mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from environment variable", "uri", mongoURI)
		return mongoURI
	}

	mongoHost := os.Getenv(envMongoHost)
	if mongoHost == "" {
		mongoHost = defaultMongoHost
		logger.DebugContext(ctx, "Using default MongoDB host", "host", mongoHost)
	} else {
		logger.DebugContext(ctx, "Using MongoDB host from environment variable", "host", mongoHost)
	}

	mongoUser := os.Getenv(envMongoUser)
	mongoPassword := os.Getenv(envMongoPassword)

	if mongoUser != "" && mongoPassword != "" {
		hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)
		mongoURI = fmt.Sprintf(
			"mongodb://%s:%s@%s/financewise?authSource=admin",
			mongoUser,
			mongoPassword,
			hostPort,
		)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "uri", mongoURI)
	} else {
		mongoURI = defaultMongoURI
		logger.DebugContext(ctx, "Using default MongoDB URI", "uri", mongoURI)
	}
	return mongoURI
}
