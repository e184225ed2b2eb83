package config_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hitesh22rana/searchsync/internal/config"
)

func TestInitSchemaUpdaterConfig(t *testing.T) {
	t.Setenv("RIAK_NODES", "10.0.0.1:8087,10.0.0.2:8087")
	t.Setenv("PARALLELISM_LIMIT", "4")

	cfg, err := config.InitSchemaUpdaterConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"10.0.0.1:8087", "10.0.0.2:8087"}, cfg.Riak.Nodes)
	assert.Equal(t, config.SearchEngineRiak, cfg.SearchEngine)
	assert.Equal(t, config.StorageRiak, cfg.StorageBackend)
	assert.Equal(t, "models", cfg.DefaultBucketType)
	assert.Equal(t, uint32(3), cfg.DefaultNVal)
	assert.Equal(t, 4, cfg.ParallelismLimit)
	assert.Equal(t, 3, cfg.SchemaNameAttempts)
	assert.True(t, cfg.IndexRegistry)
}

func TestSchemaUpdater_Validate(t *testing.T) {
	valid := func() *config.SchemaUpdater {
		return &config.SchemaUpdater{
			Environment: config.Environment{Env: "production"},
			SchemaUpdaterConfig: config.SchemaUpdaterConfig{
				SearchEngine:       config.SearchEngineRiak,
				StorageBackend:     config.StorageRiak,
				DefaultBucketType:  "models",
				DefaultNVal:        3,
				SchemaNameAttempts: 3,
				IndexRegistryKey:   "search_indexes",
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *config.SchemaUpdater)
		wantErr     bool
		combination bool
	}{
		{
			name:   "success",
			mutate: func(*config.SchemaUpdater) {},
		},
		{
			name: "success: meilisearch with redis storage",
			mutate: func(c *config.SchemaUpdater) {
				c.SearchEngine = config.SearchEngineMeiliSearch
				c.StorageBackend = config.StorageRedis
			},
		},
		{
			name: "error: unknown search engine",
			mutate: func(c *config.SchemaUpdater) {
				c.SearchEngine = "elastic"
			},
			wantErr: true,
		},
		{
			name: "error: zero attempts",
			mutate: func(c *config.SchemaUpdater) {
				c.SchemaNameAttempts = 0
			},
			wantErr: true,
		},
		{
			name: "error: meilisearch cannot bind riak buckets",
			mutate: func(c *config.SchemaUpdater) {
				c.SearchEngine = config.SearchEngineMeiliSearch
			},
			wantErr:     true,
			combination: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate(validator.New())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var combErr *config.InvalidCombinationError
			assert.Equal(t, tt.combination, errors.As(err, &combErr))
		})
	}
}
