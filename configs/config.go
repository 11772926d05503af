package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	DocStore DocStoreConfig
	Cache    CacheConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Push     PushConfig
	Log      LogConfig
	Status   StatusConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DocStoreConfig selects and configures the document store backend.
// Backend "memory" keeps everything in process and suits local runs;
// "dynamodb" is the hosted backend.
type DocStoreConfig struct {
	Backend      string
	TableName    string
	Region       string
	Endpoint     string
	PollInterval time.Duration
}

// CacheConfig selects the cache backend and the per-entity freshness
// windows. Entries never auto-expire; a window only decides when a read
// goes back to the document store.
type CacheConfig struct {
	Backend    string // memory or redis
	KeyPrefix  string
	UserMaxAge time.Duration
	PostMaxAge time.Duration
	ReelMaxAge time.Duration
	ChatMaxAge time.Duration
	ListMaxAge time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	SupabaseURL string
	ServiceKey  string
	Bucket      string
}

type PushConfig struct {
	Endpoint  string
	ServerKey string
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

// StatusConfig controls the expired-status cleanup loop.
type StatusConfig struct {
	CleanupInterval time.Duration
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		DocStore: DocStoreConfig{
			Backend:      getEnv("DOCSTORE_BACKEND", "memory"),
			TableName:    getEnv("DOCSTORE_TABLE", "marketplace"),
			Region:       getEnv("AWS_REGION", "eu-central-1"),
			Endpoint:     getEnv("DOCSTORE_ENDPOINT", ""),
			PollInterval: getDurationEnv("DOCSTORE_POLL_INTERVAL", 2*time.Second),
		},
		Cache: CacheConfig{
			Backend:    getEnv("CACHE_BACKEND", "memory"),
			KeyPrefix:  getEnv("CACHE_KEY_PREFIX", "mp"),
			UserMaxAge: getDurationEnv("CACHE_USER_MAX_AGE", 10*time.Minute),
			PostMaxAge: getDurationEnv("CACHE_POST_MAX_AGE", 5*time.Minute),
			ReelMaxAge: getDurationEnv("CACHE_REEL_MAX_AGE", 5*time.Minute),
			ChatMaxAge: getDurationEnv("CACHE_CHAT_MAX_AGE", time.Minute),
			ListMaxAge: getDurationEnv("CACHE_LIST_MAX_AGE", 2*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret: getEnvRequired("JWT_SECRET"),
		},
		Storage: StorageConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			ServiceKey:  getEnv("SUPABASE_SERVICE_KEY", ""),
			Bucket:      getEnv("SUPABASE_BUCKET", "media"),
		},
		Push: PushConfig{
			Endpoint:  getEnv("PUSH_ENDPOINT", "https://fcm.googleapis.com/fcm/send"),
			ServerKey: getEnv("PUSH_SERVER_KEY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Status: StatusConfig{
			CleanupInterval: getDurationEnv("STATUS_CLEANUP_INTERVAL", time.Hour),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
