package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config -.
	Config struct {
		App    `yaml:"app"`
		Log    `yaml:"logger"`
		Export `yaml:"export"`
		S3     `yaml:"s3"`
		RMQ    `yaml:"rabbitmq"`
		OTEL   `yaml:"otel"`
	}

	// App -.
	App struct {
		Name    string `env-required:"true" yaml:"name"    env:"APP_NAME"`
		Version string `env-required:"true" yaml:"version" env:"APP_VERSION"`
	}

	// Log -.
	Log struct {
		Level string `env-required:"true" yaml:"log_level"   env:"LOG_LEVEL"`
	}

	// Export holds the batch defaults; the CLI flags override them per run.
	Export struct {
		RemoveOriginals bool   `yaml:"remove_originals" env:"EXPORT_REMOVE_ORIGINALS"`
		UploadBucket    string `yaml:"upload_bucket"    env:"EXPORT_UPLOAD_BUCKET"`
	}

	// S3 -. An empty endpoint means the default AWS resolver chain.
	S3 struct {
		Region    string `yaml:"region"     env:"S3_REGION"`
		Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
		AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
		SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	}

	// RMQ -.
	RMQ struct {
		Exchange string `env-required:"true" yaml:"exchange" env:"RMQ_EXCHANGE"`
		URL      string `env-required:"false" yaml:"url" env:"RMQ_URL"`
	}

	OTEL struct {
		OTLPEndpoint   string `env-required:"true" yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
		PrometheusPort string `env-required:"true" yaml:"prometheus_port" env:"PROMETHEUS_PORT"`
	}
)

// NewConfig returns app config.
func NewConfig() (*Config, error) {
	cfg := &Config{}

	err := cleanenv.ReadConfig("./config/config.yml", cfg)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
