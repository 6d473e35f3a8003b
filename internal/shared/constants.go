package shared

import "time"

const (
	DefaultPort            = "5001"
	DefaultShutdownTimeout = 10 * time.Second

	// Origins the dashboard dev servers are served from.
	DefaultCORSOrigins = "http://localhost:8080,http://127.0.0.1:8080,http://localhost:5173,http://localhost:3000"

	RequestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	RequestIDLength   = 28

	// Number of in-flight model calls a bulk request may hold at once.
	DefaultBulkWorkers = 4

	DefaultSMTPPort    = 587
	DefaultSMTPTimeout = 30 * time.Second
)
