package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
//
// The database, object storage and speech backends are all optional: an
// empty DSN, endpoint or API key selects the corresponding in-process
// fallback at startup.
type Config struct {
	LogLevel int      `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP     `envPrefix:"HTTP_"`
	Database Database `envPrefix:"DATABASE_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Storage  Storage  `envPrefix:"MINIO_"`
	Speech   Speech   `envPrefix:"SPEECH_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	MaxUploadBytes     int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Database contains database connection parameters.
type Database struct {
	DSN string `env:"DSN" envDefault:""`
}

// JWT contains JWT-related parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
}

// Storage contains object storage parameters.
type Storage struct {
	Endpoint  string `env:"ENDPOINT" envDefault:""`
	AccessKey string `env:"ACCESS_KEY" envDefault:""`
	SecretKey string `env:"SECRET_KEY" envDefault:""`
	Bucket    string `env:"BUCKET_NAME" envDefault:"field-inspector"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Speech contains speech-to-text backend parameters.
type Speech struct {
	APIKey   string `env:"API_KEY" envDefault:""`
	BaseURL  string `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	Model    string `env:"MODEL" envDefault:"whisper-1"`
	Language string `env:"LANGUAGE" envDefault:"es"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
