package config

import (
	"time"
)

const envPrefix = ""

// Environment holds the deployment environment.
type Environment struct {
	Env string `envconfig:"ENV" default:"development" validate:"oneof=development staging production test"`
}

// TLS holds mutual TLS file locations.
type TLS struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	CAFile   string `envconfig:"CA_FILE" default:""`
	CertFile string `envconfig:"CERT_FILE" default:""`
	KeyFile  string `envconfig:"KEY_FILE" default:""`
}

// Redis holds the redis configuration.
type Redis struct {
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         int           `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
	TLS          TLS           `envconfig:"REDIS_TLS"`
}

// MeiliSearch holds the meilisearch configuration.
type MeiliSearch struct {
	URI       string `envconfig:"MEILISEARCH_URI" default:"http://localhost:7700"`
	MasterKey string `envconfig:"MEILISEARCH_MASTER_KEY" default:""`
	TLS       TLS    `envconfig:"MEILISEARCH_TLS"`
}

// Riak holds the riak cluster configuration.
type Riak struct {
	Nodes          []string      `envconfig:"RIAK_NODES" default:"127.0.0.1:8087"`
	MinConnections uint16        `envconfig:"RIAK_MIN_CONNECTIONS" default:"1"`
	MaxConnections uint16        `envconfig:"RIAK_MAX_CONNECTIONS" default:"64"`
	ConnectTimeout time.Duration `envconfig:"RIAK_CONNECT_TIMEOUT" default:"5s"`
	RequestTimeout time.Duration `envconfig:"RIAK_REQUEST_TIMEOUT" default:"30s"`
}
