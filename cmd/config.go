package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/geocoding"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	GeocoderOffline  = "offline"
	GeocoderOpenCage = "opencage"
)

// Config holds every setting of the service. Keys are the lower-cased names
// of the environment variables (HTTP_PORT -> http_port), so the same key can
// be set in the YAML file or the environment.
type Config struct {
	HTTPPort string `koanf:"http_port"`
	LogLevel string `koanf:"log_level"`

	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSslMode  string `koanf:"db_sslmode"`

	GeocoderProvider    string        `koanf:"geocoder_provider"`
	GeocoderURL         string        `koanf:"geocoder_url"`
	GeocoderAPIKey      string        `koanf:"geocoder_api_key"`
	GeocoderCountry     string        `koanf:"geocoder_country"`
	GeocoderTimeout     time.Duration `koanf:"geocoder_timeout"`
	GeocoderConcurrency int           `koanf:"geocoder_concurrency"`

	MaxOrdersPerBatch   int     `koanf:"max_orders_per_batch"`
	MaxWeightPerBatch   float64 `koanf:"max_weight_per_batch"`
	KMeansMaxIterations int     `koanf:"kmeans_max_iterations"`
	KMeansEpsilon       float64 `koanf:"kmeans_epsilon"`

	GenerationSchedule string        `koanf:"generation_schedule"`
	GenerationTimeout  time.Duration `koanf:"generation_timeout"`
	CompletionSchedule string        `koanf:"completion_schedule"`

	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

// DefaultConfig returns the settings used for keys that are not configured.
// Batch generation is triggered through the API unless a schedule is set.
func DefaultConfig() Config {
	limits := services.DefaultLimits()
	return Config{
		HTTPPort:            "8080",
		LogLevel:            "info",
		DBHost:              "localhost",
		DBPort:              "5432",
		DBUser:              "postgres",
		DBName:              "dispatch",
		DBSslMode:           "disable",
		GeocoderProvider:    GeocoderOffline,
		GeocoderCountry:     geocoding.DefaultCountry,
		GeocoderTimeout:     geocoding.DefaultTimeout,
		GeocoderConcurrency: 8,
		MaxOrdersPerBatch:   limits.MaxOrders,
		MaxWeightPerBatch:   limits.MaxWeight,
		KMeansMaxIterations: services.DefaultMaxIterations,
		GenerationTimeout:   2 * time.Minute,
		CompletionSchedule:  "0 */5 * * * *",
		KafkaTopic:          eventbus.DefaultTopic,
	}
}

// LoadConfig reads .env into the environment when present, then layers the
// optional YAML file at path and the environment over the defaults.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
		default:
			return Config{}, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	known := configKeys()
	if err := k.Load(env.ProviderWithValue("", ".", func(s, v string) (string, interface{}) {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return "", nil
		}
		if key == "kafka_brokers" {
			return key, splitList(v)
		}
		return key, v
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func configKeys() map[string]struct{} {
	t := reflect.TypeOf(Config{})
	keys := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		if tag := t.Field(i).Tag.Get("koanf"); tag != "" {
			keys[tag] = struct{}{}
		}
	}
	return keys
}

func (c Config) Validate() error {
	var errProvider, errKey, errLevel error
	switch c.GeocoderProvider {
	case GeocoderOffline:
	case GeocoderOpenCage:
		if strings.TrimSpace(c.GeocoderAPIKey) == "" {
			errKey = errs.NewValueIsRequiredError("geocoder_api_key")
		}
	default:
		errProvider = errs.NewValueIsInvalidError("geocoder_provider")
	}
	if _, err := c.SlogLevel(); err != nil {
		errLevel = err
	}
	return errors.Join(errProvider, errKey, errLevel, c.Limits().Validate())
}

func (c Config) Limits() services.Limits {
	return services.Limits{MaxOrders: c.MaxOrdersPerBatch, MaxWeight: c.MaxWeightPerBatch}
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("log_level", err)
	}
	return level, nil
}
