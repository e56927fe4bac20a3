package cmd

import "time"

// Config carries all runtime settings of the application.
// Values come from the environment; see cmd/app/main.go for the mapping.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	OptimizerURL     string
	OptimizerTimeout time.Duration

	RedisAddr string

	AWSRegion     string
	ProofBucket   string
	SESSender     string
	DispatchEmail string

	AppBaseURL string
}
