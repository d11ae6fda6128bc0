package config

import (
	"time"
)

// Config holds the application configuration.
type Config struct {
	MongoURI     string
	Database     string
	Collection   string
	JWTSecret    string
	CronSchedule string
	StatementDir string
	Timeout      time.Duration
}
