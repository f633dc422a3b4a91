package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 5000
	defaultEnv        = "development"

	defaultDBDriver   = DriverMongoDB
	defaultDBHost     = "127.0.0.1"
	defaultMySQLPort  = 3306
	defaultPGPort     = 5432
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "studyaid"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultSQLitePath = "studyaid.db"
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultCollection = "files"

	defaultRedisHost = "localhost"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultRateLimitMax    = 50
	defaultRateLimitWindow = time.Second

	defaultAIProvider = "openrouter"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongoDB  = "mongodb"
)

// Environment variables that override the YAML file.
const (
	EnvAIKey       = "AI_KEY"
	EnvPort        = "PORT"
	EnvAppEnv      = "APP_ENV"
	EnvDatabaseURL = "DATABASE_URL"
	EnvMongoURI    = "MONGODB_URI"
	EnvRedisURL    = "REDIS_URL"
)
