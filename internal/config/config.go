package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI         string `json:"mongo_uri"`
	MongoDatabase    string `json:"mongo_database"`
	ChecksCollection string `json:"mongo_checks_collection"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Redis cluster configuration
	RedisClusterEnabled bool     `json:"redis_cluster_enabled"`
	RedisClusterAddrs   []string `json:"redis_cluster_addrs"`

	// Rate limiting
	RateLimitRequests int           `json:"rate_limit_requests"`
	RateLimitWindow   time.Duration `json:"rate_limit_window"`

	// Check history
	HistoryEnabled       bool          `json:"history_enabled"`
	HistoryWorkerCount   int           `json:"history_worker_count"`
	HistoryBufferSize    int           `json:"history_buffer_size"`
	HistoryBatchSize     int           `json:"history_batch_size"`
	HistoryFlushInterval time.Duration `json:"history_flush_interval"`

	// Email risk scoring
	DNSLookupTimeout time.Duration `json:"dns_lookup_timeout"`

	// Tracing
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
	ServiceName     string `json:"service_name"`
	ServiceVersion  string `json:"service_version"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := getEnvAsIntOrDefault("PORT", 8080)
	if err != nil {
		return err
	}

	redisDB, err := getEnvAsIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return err
	}

	redisClusterEnabled, err := getEnvAsBoolOrDefault("REDIS_CLUSTER_ENABLED", false)
	if err != nil {
		return err
	}
	redisClusterAddrs := splitAddrs(os.Getenv("REDIS_CLUSTER_ADDRS"))
	if redisClusterEnabled && len(redisClusterAddrs) == 0 {
		return fmt.Errorf("REDIS_CLUSTER_ADDRS is required when REDIS_CLUSTER_ENABLED=true")
	}

	rateLimitRequests, err := getEnvAsIntOrDefault("RATE_LIMIT_REQUESTS", 60)
	if err != nil {
		return err
	}
	if rateLimitRequests <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_REQUESTS: must be positive, got %d", rateLimitRequests)
	}

	rateLimitWindow, err := getEnvAsDurationOrDefault("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return err
	}
	if rateLimitWindow < time.Second {
		return fmt.Errorf("invalid RATE_LIMIT_WINDOW: must be at least 1s, got %s", rateLimitWindow)
	}
	if rateLimitWindow/time.Duration(rateLimitRequests) <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %d requests do not fit in a %s window", rateLimitRequests, rateLimitWindow)
	}

	historyEnabled, err := getEnvAsBoolOrDefault("HISTORY_ENABLED", true)
	if err != nil {
		return err
	}

	historyWorkers, err := getEnvAsIntOrDefault("HISTORY_WORKER_COUNT", 2)
	if err != nil {
		return err
	}

	historyBuffer, err := getEnvAsIntOrDefault("HISTORY_BUFFER_SIZE", 1000)
	if err != nil {
		return err
	}

	historyBatch, err := getEnvAsIntOrDefault("HISTORY_BATCH_SIZE", 50)
	if err != nil {
		return err
	}

	historyFlush, err := getEnvAsDurationOrDefault("HISTORY_FLUSH_INTERVAL", 2*time.Second)
	if err != nil {
		return err
	}

	dnsTimeout, err := getEnvAsDurationOrDefault("DNS_LOOKUP_TIMEOUT", 3*time.Second)
	if err != nil {
		return err
	}

	tracingEnabled, err := getEnvAsBoolOrDefault("TRACING_ENABLED", false)
	if err != nil {
		return err
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:         getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:    getEnvOrDefault("MONGODB_DATABASE", "checkitsa"),
		ChecksCollection: getEnvOrDefault("MONGODB_CHECKS_COLLECTION", "checks"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		RedisClusterEnabled: redisClusterEnabled,
		RedisClusterAddrs:   redisClusterAddrs,

		RateLimitRequests: rateLimitRequests,
		RateLimitWindow:   rateLimitWindow,

		HistoryEnabled:       historyEnabled,
		HistoryWorkerCount:   historyWorkers,
		HistoryBufferSize:    historyBuffer,
		HistoryBatchSize:     historyBatch,
		HistoryFlushInterval: historyFlush,

		DNSLookupTimeout: dnsTimeout,

		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "app-checkit"),
		ServiceVersion:  getEnvOrDefault("SERVICE_VERSION", "dev"),
	}

	return nil
}

// splitAddrs parses a comma-separated host:port list, dropping empty entries
func splitAddrs(raw string) []string {
	var addrs []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
