package constants

import "time"

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeout        = 5 * time.Second

	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
	HeaderRequestID  = "X-Request-ID"

	ScopeBookingComplete = "booking:complete"

	// Redis key prefixes
	RedisKeyActivityFeed = "activity:feed:"
	RedisKeyCache        = "cache:"

	// Queue names
	QueueDefault  = "default"
	QueueCritical = "critical"

	ActivityDefaultLimit = 50
	ActivityMaxLimit     = 200
	LeaderboardLimit     = 20
)
