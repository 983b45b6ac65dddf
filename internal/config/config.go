package config

import "time"

const (
	StoreMemory   = "memory"
	StoreNATS     = "nats"
	StorePostgres = "postgres"
)

type Config struct {
	LogLevel string `flag:"log-level"`

	Store      string `flag:"store"`
	NATSURL    string `flag:"nats-url"`
	NATSInit   bool   `flag:"nats-init"`
	NATSBucket string `flag:"nats-bucket"`

	DatabaseURL string `flag:"database-url"`

	APIAddr     string `flag:"api-addr"`
	MetricsAddr string `flag:"metrics-addr"`

	PipelineURL     string        `flag:"pipeline-url"`
	PipelineTimeout time.Duration `flag:"pipeline-timeout"`
	PipelineRetries int           `flag:"pipeline-retries"`
}
