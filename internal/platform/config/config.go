package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Server captures process-level configuration. Every field is read from
// the environment with the DEVPORTAL_ prefix, e.g. DEVPORTAL_ADDR.
type Server struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`

	JWTSigningKey string `envconfig:"JWT_SIGNING_KEY" default:"dev-secret-key-change-in-production"`
	JWTAudience   string `envconfig:"JWT_AUDIENCE" default:"devportal"`

	// EnvironmentsFile points to a YAML environment registry. Built-in defaults apply when empty.
	EnvironmentsFile string `envconfig:"ENVIRONMENTS_FILE"`

	// FixConcurrency bounds how many credentials a scope fix reconciles at once.
	FixConcurrency int `envconfig:"FIX_CONCURRENCY" default:"4"`
	// DeploymentEnv labels this process in health output ("local", "staging", ...).
	DeploymentEnv string `envconfig:"DEPLOYMENT_ENV" default:"local"`

	// Embedded so their keys are read without a nested prefix.
	Mongo
	Kafka
	IDM
}

type Mongo struct {
	URL      string `envconfig:"MONGO_URL"`
	Database string `envconfig:"MONGO_DATABASE" default:"devportal"`
}

type Kafka struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_TOPIC" default:"devportal.events"`
	Acks    string `envconfig:"KAFKA_ACKS" default:"all"`

	// Partitions applies only when the topic is created at startup.
	Partitions int32 `envconfig:"KAFKA_PARTITIONS" default:"3"`
}

// IDM holds identity gateway call settings shared by every environment.
// Per-environment coordinates come from the environment registry.
type IDM struct {
	// InMemory runs an in-process identity gateway, for local development.
	InMemory         bool          `envconfig:"IDM_IN_MEMORY" default:"true"`
	Timeout          time.Duration `envconfig:"IDM_TIMEOUT" default:"10s"`
	MaxRetries       uint          `envconfig:"IDM_MAX_RETRIES" default:"3"`
	BreakerThreshold int           `envconfig:"IDM_BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"IDM_BREAKER_COOLDOWN" default:"30s"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := envconfig.Process("devportal", &cfg); err != nil {
		return Server{}, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}
