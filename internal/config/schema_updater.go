package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	// SearchEngineRiak selects Riak Search (Solr) as the search engine.
	SearchEngineRiak = "riak"
	// SearchEngineMeiliSearch selects MeiliSearch as the search engine.
	SearchEngineMeiliSearch = "meilisearch"

	// StorageRiak keeps bucket properties in Riak KV.
	StorageRiak = "riak"
	// StorageRedis keeps bucket properties in Redis.
	StorageRedis = "redis"
)

// SchemaUpdater holds the schema updater job configuration.
type SchemaUpdater struct {
	Environment

	Riak
	Redis
	MeiliSearch
	SchemaUpdaterConfig
}

// SchemaUpdaterConfig holds the configuration of the schema synchronization itself.
type SchemaUpdaterConfig struct {
	SearchEngine       string `envconfig:"SEARCH_ENGINE" default:"riak" validate:"oneof=riak meilisearch"`
	StorageBackend     string `envconfig:"STORAGE_BACKEND" default:"riak" validate:"oneof=riak redis"`
	DefaultBucketType  string `envconfig:"DEFAULT_BUCKET_TYPE" default:"models" validate:"required"`
	DefaultNVal        uint32 `envconfig:"DEFAULT_N_VAL" default:"3" validate:"gte=1"`
	SchemaTemplatePath string `envconfig:"SCHEMA_TEMPLATE_PATH" default:""`
	ParallelismLimit   int    `envconfig:"PARALLELISM_LIMIT" default:"0" validate:"gte=0"`
	SchemaNameAttempts int    `envconfig:"SCHEMA_NAME_ATTEMPTS" default:"3" validate:"gte=1"`
	IndexRegistryKey   string `envconfig:"INDEX_REGISTRY_KEY" default:"search_indexes" validate:"required"`
	IndexRegistry      bool   `envconfig:"INDEX_REGISTRY_ENABLED" default:"true"`
}

// InitSchemaUpdaterConfig initializes the schema updater configuration.
func InitSchemaUpdaterConfig() (*SchemaUpdater, error) {
	var cfg SchemaUpdater
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(validator.New()); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and the backend combination.
func (c *SchemaUpdater) Validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return err
	}

	// Riak buckets can only point at Riak Search indexes.
	if c.SearchEngine == SearchEngineMeiliSearch && c.StorageBackend == StorageRiak {
		return &InvalidCombinationError{SearchEngine: c.SearchEngine, StorageBackend: c.StorageBackend}
	}

	return nil
}

// InvalidCombinationError is returned for a search engine the storage backend cannot bind to.
type InvalidCombinationError struct {
	SearchEngine   string
	StorageBackend string
}

func (e *InvalidCombinationError) Error() string {
	return "search engine " + e.SearchEngine + " cannot be used with storage backend " + e.StorageBackend
}
