package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML overlay. Zero values leave the
// environment setting untouched.
type fileConfig struct {
	Server struct {
		Port            string `yaml:"port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Booking struct {
		DefaultTimezone     string `yaml:"default_timezone"`
		MaxAvailabilityDays int    `yaml:"max_availability_days"`
	} `yaml:"booking"`

	RateLimit struct {
		RedisURL  string `yaml:"redis_url"`
		PerMinute int    `yaml:"per_minute"`
	} `yaml:"rate_limit"`

	Kafka struct {
		Brokers     string `yaml:"brokers"`
		OrdersTopic string `yaml:"orders_topic"`
	} `yaml:"kafka"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// ${ENV_VAR} placeholders are expanded before parsing.
	data = []byte(os.ExpandEnv(string(data)))

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Server.Port != "" {
		c.ServerPort = fc.Server.Port
	}
	if fc.Server.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.Server.ShutdownTimeout)
		if err != nil {
			return err
		}
		c.ShutdownTimeout = d
	}
	if fc.Booking.DefaultTimezone != "" {
		c.DefaultTimezone = fc.Booking.DefaultTimezone
	}
	if fc.Booking.MaxAvailabilityDays != 0 {
		c.MaxAvailabilityDays = fc.Booking.MaxAvailabilityDays
	}
	if fc.RateLimit.RedisURL != "" {
		c.RedisURL = fc.RateLimit.RedisURL
	}
	if fc.RateLimit.PerMinute != 0 {
		c.RateLimitPerMinute = fc.RateLimit.PerMinute
	}
	if fc.Kafka.Brokers != "" {
		c.KafkaBrokers = fc.Kafka.Brokers
	}
	if fc.Kafka.OrdersTopic != "" {
		c.KafkaOrdersTopic = fc.Kafka.OrdersTopic
	}
	if len(fc.CORS.AllowedOrigins) > 0 {
		c.CORSAllowedOrigins = fc.CORS.AllowedOrigins
	}
	return nil
}
