// Package config loads restaurantcore settings from an optional config file,
// an optional .env file and RESTAURANTCORE_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"restaurantcore/internal/analytics"
	"restaurantcore/internal/blob"
	"restaurantcore/internal/core"
	"restaurantcore/internal/seed"
)

// EnvPrefix prefixes every environment override, e.g.
// RESTAURANTCORE_STORAGE_DRIVER or RESTAURANTCORE_BLOB_S3_BUCKET.
const EnvPrefix = "RESTAURANTCORE"

// Publisher names accepted in events.publisher.
const (
	PublisherNone   = "none"
	PublisherMemory = "memory"
	PublisherKafka  = "kafka"
	PublisherAMQP   = "amqp"
)

// Config is the complete runtime configuration.
type Config struct {
	Storage core.StorageConfig      `mapstructure:"storage"`
	Costing analytics.CostingPolicy `mapstructure:"costing"`
	Blob    blob.Config             `mapstructure:"blob"`
	Export  ExportConfig            `mapstructure:"export"`
	Events  EventsConfig            `mapstructure:"events"`
	Log     LogConfig               `mapstructure:"log"`
	Metrics MetricsConfig           `mapstructure:"metrics"`
	Seed    SeedConfig              `mapstructure:"seed"`
}

// ExportConfig controls where report artifacts land.
type ExportConfig struct {
	Prefix    string        `mapstructure:"prefix"`
	Format    string        `mapstructure:"format"`
	URLExpiry time.Duration `mapstructure:"url_expiry"`
}

// EventsConfig selects the change-event publisher.
type EventsConfig struct {
	Publisher string      `mapstructure:"publisher"`
	Kafka     KafkaConfig `mapstructure:"kafka"`
	AMQP      AMQPConfig  `mapstructure:"amqp"`
}

// KafkaConfig addresses the Kafka cluster.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// AMQPConfig addresses the RabbitMQ exchange.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls metrics output. An empty textfile disables the
// Prometheus textfile dump.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// SeedConfig controls the demo dataset.
type SeedConfig struct {
	Value      int64  `mapstructure:"value"`
	ActiveUser string `mapstructure:"active_user"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", string(core.StorageSQLite))
	v.SetDefault("storage.sqlite_path", "restaurantcore.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.redis_url", "")

	v.SetDefault("costing.labor_cost", analytics.DefaultLaborCost)
	v.SetDefault("costing.overhead_rate", analytics.DefaultOverheadRate)

	v.SetDefault("blob.driver", "fs")
	v.SetDefault("blob.fs_root", "./blobdata")
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.region", "")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.access_key_id", "")
	v.SetDefault("blob.s3.secret_access_key", "")
	v.SetDefault("blob.s3.session_token", "")
	v.SetDefault("blob.s3.path_style", false)
	v.SetDefault("blob.s3.prefix", "")

	v.SetDefault("export.prefix", "exports")
	v.SetDefault("export.format", "json")
	v.SetDefault("export.url_expiry", "15m")

	v.SetDefault("events.publisher", PublisherNone)
	v.SetDefault("events.kafka.brokers", []string{})
	v.SetDefault("events.kafka.topic", "")
	v.SetDefault("events.amqp.url", "")
	v.SetDefault("events.amqp.exchange", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("seed.value", seed.DefaultSeed)
	v.SetDefault("seed.active_user", "")
}

// Load reads the configuration. path may be empty. envFiles are loaded with
// godotenv before the environment is consulted; without any, a .env in the
// working directory is loaded when present. Variables already set in the
// process environment win over .env entries.
func Load(path string, envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work regardless of the environment.
func (c Config) Validate() error {
	var errs []error
	if c.Costing.LaborCost < 0 || c.Costing.OverheadRate < 0 {
		errs = append(errs, fmt.Errorf("costing: labor_cost and overhead_rate must be non-negative"))
	}
	switch c.Events.Publisher {
	case "", PublisherNone, PublisherMemory:
	case PublisherKafka:
		if len(c.Events.Kafka.Brokers) == 0 {
			errs = append(errs, fmt.Errorf("events: kafka publisher requires brokers"))
		}
	case PublisherAMQP:
		if c.Events.AMQP.URL == "" {
			errs = append(errs, fmt.Errorf("events: amqp publisher requires url"))
		}
	default:
		errs = append(errs, fmt.Errorf("events: unknown publisher %q", c.Events.Publisher))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log: %w", err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
