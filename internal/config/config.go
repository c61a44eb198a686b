// Package config loads gateway settings from configs/config.yml, an explicit
// --config file and GATEWAY_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"irrigation_gateway/internal/device/simulator"
	"irrigation_gateway/internal/models"
	"irrigation_gateway/internal/notify"
	"irrigation_gateway/internal/retry"
	"irrigation_gateway/internal/server"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "GATEWAY"

// DriverSimulator is the only controller driver shipped with the gateway.
const DriverSimulator = "simulator"

type Config struct {
	Port       string     `mapstructure:"port" validate:"required"`
	LogLevel   string     `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat  string     `mapstructure:"log_format" validate:"oneof=console json"`
	Controller Controller `mapstructure:"controller"`
	Retry      Retry      `mapstructure:"retry"`
	Simulator  Simulator  `mapstructure:"simulator"`
	DB         DB         `mapstructure:"db"`
	MQTT       MQTT       `mapstructure:"mqtt"`
	Stream     Stream     `mapstructure:"stream"`
	Server     Server     `mapstructure:"server"`
	Zones      []Zone     `mapstructure:"zones" validate:"dive"`
}

// Controller holds the device credentials. Empty values are allowed: the
// session then fails to open and the gateway runs degraded.
type Controller struct {
	Driver  string `mapstructure:"driver" validate:"oneof=simulator"`
	Address string `mapstructure:"address"`
	PIN     string `mapstructure:"pin"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1"`
	Delay       time.Duration `mapstructure:"delay" validate:"gte=0"`
}

type Simulator struct {
	Zones       int           `mapstructure:"zones" validate:"min=1,max=64"`
	Model       string        `mapstructure:"model"`
	Latency     time.Duration `mapstructure:"latency" validate:"gte=0"`
	FailureRate float64       `mapstructure:"failure_rate" validate:"gte=0,lte=1"`
	Tick        time.Duration `mapstructure:"tick" validate:"gt=0"`
}

type DB struct {
	Path string `mapstructure:"path" validate:"required"`
}

type MQTT struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker" validate:"required_if=Enabled true"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic" validate:"required_if=Enabled true"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	QoS      int    `mapstructure:"qos" validate:"gte=0,lte=2"`
}

// Stream bounds the push interval of the /ws status stream.
type Stream struct {
	DefaultInterval time.Duration `mapstructure:"default_interval" validate:"gt=0"`
	MaxInterval     time.Duration `mapstructure:"max_interval" validate:"gtefield=DefaultInterval"`
}

type Server struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
}

// Zone seeds one catalog entry.
type Zone struct {
	ID             int    `mapstructure:"id" validate:"min=1"`
	Name           string `mapstructure:"name" validate:"required"`
	DefaultMinutes int    `mapstructure:"default_minutes" validate:"min=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("controller.driver", DriverSimulator)
	v.SetDefault("controller.address", "")
	v.SetDefault("controller.pin", "")

	v.SetDefault("retry.max_attempts", retry.DefaultMaxAttempts)
	v.SetDefault("retry.delay", retry.DefaultDelay)

	v.SetDefault("simulator.zones", simulator.DefaultZones)
	v.SetDefault("simulator.model", simulator.DefaultModel)
	v.SetDefault("simulator.latency", 50*time.Millisecond)
	v.SetDefault("simulator.failure_rate", 0.0)
	v.SetDefault("simulator.tick", time.Second)

	v.SetDefault("db.path", "gateway.db")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "irrigation-gateway")
	v.SetDefault("mqtt.topic", "irrigation/events")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.qos", 1)

	v.SetDefault("stream.default_interval", 2*time.Second)
	v.SetDefault("stream.max_interval", time.Minute)

	v.SetDefault("server.read_header_timeout", server.DefaultReadHeaderTimeout)
	v.SetDefault("server.write_timeout", server.DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", server.DefaultIdleTimeout)
}

// Load reads the configuration. With an empty path it looks for config.yml in
// ./configs and . and falls back to defaults when there is none; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: c.Retry.MaxAttempts, Delay: c.Retry.Delay}
}

func (c *Config) SimulatorConfig() simulator.Config {
	return simulator.Config{
		Zones:       c.Simulator.Zones,
		Model:       c.Simulator.Model,
		Latency:     c.Simulator.Latency,
		FailureRate: c.Simulator.FailureRate,
	}
}

func (c *Config) NotifyConfig() notify.Config {
	return notify.Config{
		Broker:   c.MQTT.Broker,
		ClientID: c.MQTT.ClientID,
		Topic:    c.MQTT.Topic,
		Username: c.MQTT.Username,
		Password: c.MQTT.Password,
		QoS:      byte(c.MQTT.QoS),
	}
}

func (c *Config) ServerConfig() server.Config {
	return server.Config{
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout,
		WriteTimeout:      c.Server.WriteTimeout,
		IdleTimeout:       c.Server.IdleTimeout,
	}
}

// CatalogSeed converts the configured zones to catalog entries.
func (c *Config) CatalogSeed() []models.Zone {
	out := make([]models.Zone, 0, len(c.Zones))
	for _, z := range c.Zones {
		out = append(out, models.Zone{ID: z.ID, Name: z.Name, DefaultMinutes: z.DefaultMinutes})
	}
	return out
}
