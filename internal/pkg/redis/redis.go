package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MaxHealthCheckRetries is the maximum number of retries for the health check
	MaxHealthCheckRetries = 3

	bucketTypeKeyPrefix  = "bucket_types:"
	bucketPropsKeyPrefix = "bucket_props:"
	fieldNVal            = "n_val"
	fieldSearchIndex     = "search_index"
)

// Config is the configuration for the Redis store
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TLS          *tls.Config

	// DefaultNVal is reported for bucket types without an explicit n_val.
	DefaultNVal uint32
	// IndexRegistryKey is the hash mapping buckets to their search index.
	IndexRegistryKey string
}

// IndexUpdate is published whenever a bucket is bound to a new search index.
type IndexUpdate struct {
	Bucket string    `json:"bucket"`
	Index  string    `json:"index"`
	At     time.Time `json:"at"`
}

// RedisStore is a Redis store
type RedisStore struct {
	client      *redis.Client
	defaultNVal uint32
	registryKey string
	now         func() time.Time
}

// healthCheck is used to check the health of the Redis connection
func healthCheck(ctx context.Context, client *redis.Client) error {
	var err error

	backoff := 100 * time.Millisecond
	for i := 1; i <= MaxHealthCheckRetries; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			break
		}
		if i < MaxHealthCheckRetries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	return err
}

// New creates a new Redis store instance
func New(ctx context.Context, cfg *Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		TLSConfig:    cfg.TLS,
	})

	if err := instrument(client, otel.GetTracerProvider(), otel.GetMeterProvider()); err != nil {
		//nolint:errcheck // The instrumentation error is more useful than the close error
		client.Close()
		return nil, err
	}

	if err := healthCheck(ctx, client); err != nil {
		//nolint:errcheck // The connection error is more useful than the close error
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return NewWithClient(client, cfg), nil
}

// instrument traces every command and records connection pool metrics.
func instrument(client *redis.Client, tp trace.TracerProvider, mp metric.MeterProvider) error {
	if err := redisotel.InstrumentTracing(client, redisotel.WithTracerProvider(tp)); err != nil {
		return fmt.Errorf("failed to instrument redis tracing: %v", err)
	}

	if err := redisotel.InstrumentMetrics(client, redisotel.WithMeterProvider(mp)); err != nil {
		return fmt.Errorf("failed to instrument redis metrics: %v", err)
	}

	return nil
}

// NewWithClient creates a Redis store on top of an existing client.
func NewWithClient(client *redis.Client, cfg *Config) *RedisStore {
	return &RedisStore{
		client:      client,
		defaultNVal: cfg.DefaultNVal,
		registryKey: cfg.IndexRegistryKey,
		now:         time.Now,
	}
}

// Close closes the Redis store
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// BucketTypeNVal returns the n_val of a bucket type, or the default when none is set.
func (rs *RedisStore) BucketTypeNVal(ctx context.Context, bucketType string) (uint32, error) {
	val, err := rs.client.HGet(ctx, bucketTypeKeyPrefix+bucketType, fieldNVal).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rs.defaultNVal, nil
		}
		return 0, fmt.Errorf("failed to get n_val of bucket type %s: %w", bucketType, err)
	}

	nVal, err := strconv.ParseUint(val, 10, 32)
	if err != nil || nVal == 0 {
		return 0, fmt.Errorf("malformed n_val %q for bucket type %s", val, bucketType)
	}

	return uint32(nVal), nil
}

// SetBucketSearchIndex binds a bucket to a search index.
func (rs *RedisStore) SetBucketSearchIndex(ctx context.Context, bucketType, bucket, index string) error {
	if err := rs.client.HSet(ctx, bucketPropsKey(bucketType, bucket), fieldSearchIndex, index).Err(); err != nil {
		return fmt.Errorf("failed to set search index of bucket %s: %w", bucket, err)
	}

	return nil
}

// BucketSearchIndex returns the search index a bucket is bound to, or "" when unbound.
func (rs *RedisStore) BucketSearchIndex(ctx context.Context, bucketType, bucket string) (string, error) {
	index, err := rs.client.HGet(ctx, bucketPropsKey(bucketType, bucket), fieldSearchIndex).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get search index of bucket %s: %w", bucket, err)
	}

	return index, nil
}

// UpdateIndex records the search index of a bucket and announces it on the bucket's channel.
func (rs *RedisStore) UpdateIndex(ctx context.Context, bucket, index string) error {
	data, err := json.Marshal(&IndexUpdate{Bucket: bucket, Index: index, At: rs.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal index update: %v", err)
	}

	if _, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, rs.registryKey, bucket, index)
		pipe.Publish(ctx, GetIndexUpdatesChannel(bucket), string(data))
		return nil
	}); err != nil {
		return fmt.Errorf("failed to update index registry: %w", err)
	}

	return nil
}

// Index returns the registered search index of a bucket, or "" when none is registered.
func (rs *RedisStore) Index(ctx context.Context, bucket string) (string, error) {
	index, err := rs.client.HGet(ctx, rs.registryKey, bucket).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get registered index of bucket %s: %w", bucket, err)
	}

	return index, nil
}

// Indexes returns every registered bucket to search index binding.
func (rs *RedisStore) Indexes(ctx context.Context) (map[string]string, error) {
	indexes, err := rs.client.HGetAll(ctx, rs.registryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list registered indexes: %w", err)
	}

	return indexes, nil
}

func bucketPropsKey(bucketType, bucket string) string {
	return bucketPropsKeyPrefix + bucketType + ":" + bucket
}

// NewTLSConfig creates a new TLS config for the Redis client.
func NewTLSConfig(certFile, keyFile, caFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client key pair: %v", err)
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %v", err)
	}

	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCertPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
