package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"lastmile/internal/adapters/out/geocoding"
	"lastmile/internal/adapters/out/kafka"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel string

	GeofenceRadiusMeters float64
	DeliveryETAOffset    time.Duration
	DeliveryMaxWindow    time.Duration

	GeocoderURL         string
	GeocoderUserAgent   string
	GeocoderTimeout     time.Duration
	GeocoderMaxAttempts int

	UploadDir          string
	UploadPublicPrefix string
	PublicBaseURL      string

	TelegramBotToken string
	TelegramAPIURL   string

	KafkaBrokers             []string
	KafkaDeliveryEventsTopic string

	NotificationBatchSize   int
	NotificationMaxAttempts int
}

// DefaultConfig holds the values used when neither the environment nor a
// flag sets a key.
func DefaultConfig() Config {
	return Config{
		HTTPPort:                 "8080",
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "postgres",
		DBName:                   "lastmile",
		DBSslMode:                "disable",
		LogLevel:                 "info",
		GeofenceRadiusMeters:     services.DefaultGeofenceRadiusMeters,
		DeliveryETAOffset:        delivery.DefaultETAOffset,
		DeliveryMaxWindow:        delivery.DefaultMaxDuration,
		GeocoderURL:              geocoding.DefaultBaseURL,
		GeocoderUserAgent:        geocoding.DefaultUserAgent,
		GeocoderTimeout:          geocoding.DefaultTimeout,
		GeocoderMaxAttempts:      1,
		UploadDir:                "./public/uploads",
		UploadPublicPrefix:       "/uploads",
		KafkaDeliveryEventsTopic: kafka.DefaultTopic,
		NotificationBatchSize:    commands.DefaultDispatchBatchSize,
		NotificationMaxAttempts:  commands.DefaultDispatchMaxAttempts,
	}
}

// LoadEnv reads .env when present; a missing file is not an error.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// BindFlags registers one flag per key on flags. Defaults come from cfg, which
// is expected to already carry the environment overrides, so a parsed flag
// wins over both.
func BindFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port")
	flags.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "PostgreSQL host")
	flags.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "PostgreSQL port")
	flags.StringVar(&cfg.DBUser, "db-user", cfg.DBUser, "PostgreSQL user")
	flags.StringVar(&cfg.DBPassword, "db-password", cfg.DBPassword, "PostgreSQL password")
	flags.StringVar(&cfg.DBName, "db-name", cfg.DBName, "PostgreSQL database")
	flags.StringVar(&cfg.DBSslMode, "db-sslmode", cfg.DBSslMode, "PostgreSQL sslmode")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	flags.Float64Var(&cfg.GeofenceRadiusMeters, "geofence-radius", cfg.GeofenceRadiusMeters,
		"maximum distance in meters between a hiding spot and the delivery address")
	flags.DurationVar(&cfg.DeliveryETAOffset, "delivery-eta-offset", cfg.DeliveryETAOffset,
		"estimated delivery time after creation")
	flags.DurationVar(&cfg.DeliveryMaxWindow, "delivery-max-window", cfg.DeliveryMaxWindow,
		"time after creation at which an active delivery is overdue")

	flags.StringVar(&cfg.GeocoderURL, "geocoder-url", cfg.GeocoderURL, "Nominatim base URL")
	flags.StringVar(&cfg.GeocoderUserAgent, "geocoder-user-agent", cfg.GeocoderUserAgent, "User-Agent sent to Nominatim")
	flags.DurationVar(&cfg.GeocoderTimeout, "geocoder-timeout", cfg.GeocoderTimeout, "timeout of one geocoding request")
	flags.IntVar(&cfg.GeocoderMaxAttempts, "geocoder-max-attempts", cfg.GeocoderMaxAttempts,
		"attempts per address when the geocoder is unavailable")

	flags.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "directory for hiding-spot photos")
	flags.StringVar(&cfg.UploadPublicPrefix, "upload-prefix", cfg.UploadPublicPrefix, "URL path the upload dir is served under")
	flags.StringVar(&cfg.PublicBaseURL, "public-base-url", cfg.PublicBaseURL,
		"external base URL of this service, lets Telegram fetch photos directly")

	flags.StringVar(&cfg.TelegramBotToken, "telegram-token", cfg.TelegramBotToken, "Telegram bot token, empty disables Telegram")
	flags.StringVar(&cfg.TelegramAPIURL, "telegram-api-url", cfg.TelegramAPIURL, "Telegram Bot API base URL")

	flags.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", cfg.KafkaBrokers, "Kafka brokers, empty disables publishing")
	flags.StringVar(&cfg.KafkaDeliveryEventsTopic, "kafka-topic", cfg.KafkaDeliveryEventsTopic, "topic for delivery events")

	flags.IntVar(&cfg.NotificationBatchSize, "notification-batch-size", cfg.NotificationBatchSize,
		"outbox messages handled per dispatch run")
	flags.IntVar(&cfg.NotificationMaxAttempts, "notification-max-attempts", cfg.NotificationMaxAttempts,
		"failed attempts after which an outbox message is left alone")
}

// ApplyEnv overrides cfg with the environment variables that are set.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	var errs []error
	parse := func(key string, set func(string) error) {
		if v, ok := lookup(key); ok && v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}
	duration := func(key string, dst *time.Duration) {
		parse(key, func(v string) (err error) {
			*dst, err = time.ParseDuration(v)
			return err
		})
	}
	integer := func(key string, dst *int) {
		parse(key, func(v string) (err error) {
			*dst, err = strconv.Atoi(v)
			return err
		})
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("DB_HOST", &cfg.DBHost)
	str("DB_PORT", &cfg.DBPort)
	str("DB_USER", &cfg.DBUser)
	str("DB_PASSWORD", &cfg.DBPassword)
	str("DB_NAME", &cfg.DBName)
	str("DB_SSLMODE", &cfg.DBSslMode)
	str("LOG_LEVEL", &cfg.LogLevel)

	parse("GEOFENCE_RADIUS_METERS", func(v string) (err error) {
		cfg.GeofenceRadiusMeters, err = strconv.ParseFloat(v, 64)
		return err
	})
	duration("DELIVERY_ETA_OFFSET", &cfg.DeliveryETAOffset)
	duration("DELIVERY_MAX_WINDOW", &cfg.DeliveryMaxWindow)

	str("GEOCODER_URL", &cfg.GeocoderURL)
	str("GEOCODER_USER_AGENT", &cfg.GeocoderUserAgent)
	duration("GEOCODER_TIMEOUT", &cfg.GeocoderTimeout)
	integer("GEOCODER_MAX_ATTEMPTS", &cfg.GeocoderMaxAttempts)

	str("UPLOAD_DIR", &cfg.UploadDir)
	str("UPLOAD_PUBLIC_PREFIX", &cfg.UploadPublicPrefix)
	str("PUBLIC_BASE_URL", &cfg.PublicBaseURL)

	str("TELEGRAM_BOT_TOKEN", &cfg.TelegramBotToken)
	str("TELEGRAM_API_URL", &cfg.TelegramAPIURL)

	if v, ok := lookup("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(v)
	}
	str("KAFKA_DELIVERY_EVENTS_TOPIC", &cfg.KafkaDeliveryEventsTopic)

	integer("NOTIFICATION_BATCH_SIZE", &cfg.NotificationBatchSize)
	integer("NOTIFICATION_MAX_ATTEMPTS", &cfg.NotificationMaxAttempts)

	return errors.Join(errs...)
}

// Validate checks the values the composition root cannot default.
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid http port: %q", c.HTTPPort))
	}
	if c.DBHost == "" || c.DBName == "" {
		errs = append(errs, errors.New("database host and name are required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.GeocoderMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("geocoder max attempts must be at least 1, got %d", c.GeocoderMaxAttempts))
	}
	if c.UploadDir == "" {
		errs = append(errs, errors.New("upload dir is required"))
	}
	if !strings.HasPrefix(c.UploadPublicPrefix, "/") {
		errs = append(errs, fmt.Errorf("upload prefix must start with /, got %q", c.UploadPublicPrefix))
	}
	return errors.Join(errs...)
}

// DSN builds the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
