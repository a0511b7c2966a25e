package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server config
const DEFAULT_ENV = "prod"
const DEFAULT_PORT = "8080"
const DEFAULT_CORS_ORIGIN = "*"
const DEFAULT_REQUEST_TIMEOUT = 10 * time.Second
const SHUTDOWN_TIMEOUT = 5 * time.Second

// Document store config
const STORE_BACKEND_REDIS = "redis"
const STORE_BACKEND_MONGO = "mongo"
const STORE_BACKEND_MEMORY = "memory"
const DEFAULT_STORE_BACKEND = STORE_BACKEND_REDIS

// Course documents live in this database; each program is a collection.
const DEFAULT_DATABASE_NAME = "courseData"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Mongo Config
const MONGODB_URI = "mongodb://mongo:27017"

type Config struct {
	Env                 string
	Port                string
	StoreBackend        string
	RedisAddress        string
	RedisPassword       string
	RedisDB             int
	MongoURI            string
	DatabaseName        string
	CorsOrigin          string
	RequestTimeout      time.Duration
	SeedFile            string
	// zero disables periodic reloads of SeedFile
	SeedRefreshInterval time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] failed to load .env file: %v", err)
	}

	return Config{
		Env:            getEnv("APP_ENV", DEFAULT_ENV),
		Port:           getEnv("PORT", DEFAULT_PORT),
		StoreBackend:   getEnv("STORE_BACKEND", DEFAULT_STORE_BACKEND),
		RedisAddress:   getEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword:  getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:        getEnvInt("REDIS_DB", REDIS_DB),
		MongoURI:       getEnv("MONGODB_URI", MONGODB_URI),
		DatabaseName:   getEnv("DATABASE_NAME", DEFAULT_DATABASE_NAME),
		CorsOrigin:     getEnv("CORS_ORIGIN", DEFAULT_CORS_ORIGIN),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", DEFAULT_REQUEST_TIMEOUT),
		SeedFile:       os.Getenv("SEED_FILE"),

		SeedRefreshInterval: getEnvDuration("SEED_REFRESH_INTERVAL", 0),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Config] invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go duration strings ("15s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[Config] invalid duration for %s=%q, using %v", key, value, defaultValue)
	return defaultValue
}
