package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings holds every value read from the environment.
type Settings struct {
	MongoURI          string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDatabaseName string        `env:"MONGO_DATABASE_NAME" env-default:"staybook"`
	MongoConnTimeout  time.Duration `env:"MONGO_CONN_TIMEOUT" env-default:"10s"`

	RedisAddr       string        `env:"REDIS_ADDR" env-default:""`
	RedisPassword   string        `env:"REDIS_PASSWORD" env-default:""`
	RedisDB         int           `env:"REDIS_DB" env-default:"0"`
	ListingCacheTTL time.Duration `env:"LISTINGS_CACHE_TTL" env-default:"30s"`

	Port      string `env:"PORT" env-default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" env-default:"10"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"30s"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
	MaxRequestSize int           `env:"MAX_REQUEST_SIZE" env-default:"1048576"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`

	BookingLockEnabled  bool          `env:"BOOKING_LOCK_ENABLED" env-default:"false"`
	BookingLockTTL      time.Duration `env:"BOOKING_LOCK_TTL" env-default:"10s"`
	SuccessDismissAfter time.Duration `env:"BOOKING_SUCCESS_DISMISS_AFTER" env-default:"5s"`

	EventsEnabled      bool   `env:"EVENTS_ENABLED" env-default:"false"`
	BookingTopic       string `env:"KAFKA_BOOKING_TOPIC" env-default:"booking.created"`
	BookingDLQTopic    string `env:"KAFKA_BOOKING_DLQ_TOPIC" env-default:"booking.created.dlq"`
	NotifierGroupID    string `env:"KAFKA_NOTIFIER_GROUP" env-default:"staybook-notifier"`
	NotifierMaxRetries int    `env:"NOTIFIER_MAX_RETRIES" env-default:"3"`
}

func LoadSettings() (Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to read environment variables: %w", err)
	}
	return s, nil
}
