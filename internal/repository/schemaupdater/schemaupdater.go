//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package schemaupdater

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/searchsync/internal/model"
	loggerpkg "github.com/hitesh22rana/searchsync/internal/pkg/logger"
	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
	svcpkg "github.com/hitesh22rana/searchsync/internal/pkg/svc"
)

// Storage gives access to the bucket types of the key-value store.
type Storage interface {
	BucketType(name string) BucketType
}

// BucketType is a handle to a bucket type of the key-value store.
type BucketType interface {
	NVal(ctx context.Context) (uint32, error)
	Bucket(name string) Bucket
}

// Bucket is a handle to a bucket of the key-value store.
type Bucket interface {
	SetSearchIndex(ctx context.Context, index string) error
	SearchIndex(ctx context.Context) (string, error)
}

// SearchEngine creates schemas and indexes in the search engine.
type SearchEngine interface {
	// CreateSearchSchema stores schema under name. Storing the same content twice is a no-op,
	// storing different content under an existing name fails with codes.AlreadyExists.
	CreateSearchSchema(ctx context.Context, name string, schema []byte) error
	CreateSearchIndex(ctx context.Context, name, schemaName string, nVal uint32) error
}

// IndexRegistry records which search index every bucket is bound to.
type IndexRegistry interface {
	UpdateIndex(ctx context.Context, bucket, index string) error
}

// Config represents the repository configuration.
type Config struct {
	// BucketType is the bucket type holding the model buckets.
	BucketType string
	// SchemaNameAttempts is how many fresh names are tried when a schema name is taken.
	SchemaNameAttempts int
	// Retry configures retries of transient backend failures.
	Retry RetryConfig
}

// Repository swaps the search index of model buckets.
type Repository struct {
	tp       trace.Tracer
	swaps    metric.Int64Counter
	duration metric.Float64Histogram
	cfg      *Config
	storage  Storage
	engine   SearchEngine
	registry IndexRegistry
	namer    *searchschema.Namer
}

// New creates a new schema updater repository.
func New(cfg *Config, storage Storage, engine SearchEngine, registry IndexRegistry, namer *searchschema.Namer) *Repository {
	meter := otel.Meter(svcpkg.Info().GetName())

	//nolint:errcheck // A no-op instrument is returned alongside any error
	swaps, _ := meter.Int64Counter(
		"schemaupdater.swaps",
		metric.WithDescription("Number of index swaps by outcome."),
	)
	//nolint:errcheck // A no-op instrument is returned alongside any error
	duration, _ := meter.Float64Histogram(
		"schemaupdater.swap.duration",
		metric.WithDescription("Duration of a single index swap."),
		metric.WithUnit("s"),
	)

	c := *cfg
	if c.SchemaNameAttempts < 1 {
		c.SchemaNameAttempts = 1
	}

	return &Repository{
		tp:       otel.Tracer(svcpkg.Info().GetName()),
		swaps:    swaps,
		duration: duration,
		cfg:      &c,
		storage:  storage,
		engine:   engine,
		registry: registry,
		namer:    namer,
	}
}

// ApplySchema creates a new search index for the model from schema and binds the model's
// bucket to it. The previously bound index is left in place.
//
// If binding fails after the new index was created, the new index is left unbound and
// the bucket keeps its old index; the returned error has codes.Aborted.
func (r *Repository) ApplySchema(ctx context.Context, def *model.Definition, schema []byte) (index string, err error) {
	bucketName := def.BucketName()
	ctx, span := r.tp.Start(ctx, "Repository.ApplySchema", trace.WithAttributes(
		attribute.String("model", def.Name),
		attribute.String("bucket", bucketName),
	))
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		attrs := metric.WithAttributes(attribute.String("outcome", outcome))
		r.swaps.Add(ctx, 1, attrs)
		r.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		span.End()
	}()

	logger := loggerpkg.FromContext(ctx).With(
		zap.String("model", def.Name),
		zap.String("bucket", bucketName),
	)

	bucketType := r.storage.BucketType(r.cfg.BucketType)

	// The new index must be replicated like the bucket type, or queries use the wrong quorum.
	var nVal uint32
	if err = r.withRetry(ctx, "fetch n_val", func(ctx context.Context) error {
		var _err error
		nVal, _err = bucketType.NVal(ctx)
		return _err
	}); err != nil {
		err = status.Errorf(codes.Internal, "failed to fetch n_val of bucket type %s: %v", r.cfg.BucketType, err)
		return "", err
	}

	index, err = r.createSchema(ctx, logger, bucketName, schema)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("index", index))

	attempt := 0
	if err = r.withRetry(ctx, "create search index", func(ctx context.Context) error {
		attempt++
		_err := r.engine.CreateSearchIndex(ctx, index, index, nVal)
		// A timed out attempt may still have created the index.
		if attempt > 1 && status.Code(_err) == codes.AlreadyExists {
			logger.Info("search index was created by an earlier attempt", zap.String("index", index))
			return nil
		}
		return _err
	}); err != nil {
		err = status.Errorf(codes.Internal, "failed to create search index %s: %v", index, err)
		return "", err
	}

	// Cutover: from here on every new operation on the bucket uses the new index.
	bucket := bucketType.Bucket(bucketName)
	if err = r.withRetry(ctx, "bind search index", func(ctx context.Context) error {
		return bucket.SetSearchIndex(ctx, index)
	}); err != nil {
		err = status.Errorf(
			codes.Aborted,
			"failed to bind bucket %s to search index %s, the index is left unbound and the previous binding is kept: %v",
			bucketName, index, err,
		)
		return "", err
	}

	if r.registry != nil {
		if err = r.withRetry(ctx, "update index registry", func(ctx context.Context) error {
			return r.registry.UpdateIndex(ctx, bucketName, index)
		}); err != nil {
			err = status.Errorf(
				codes.Aborted,
				"bucket %s is bound to search index %s but the index registry was not updated: %v",
				bucketName, index, err,
			)
			return "", err
		}
	}

	logger.Info("search index swapped",
		zap.String("index", index),
		zap.Uint32("n_val", nVal),
		zap.Duration("took", time.Since(start)),
	)
	return index, nil
}

// createSchema stores schema under a fresh index name, drawing a new name whenever
// the previous one turns out to be taken.
func (r *Repository) createSchema(ctx context.Context, logger *zap.Logger, bucketName string, schema []byte) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.SchemaNameAttempts; attempt++ {
		name, err := r.namer.Next(bucketName)
		if err != nil {
			return "", status.Errorf(codes.Internal, "failed to generate index name: %v", err)
		}

		err = r.withRetry(ctx, "create search schema", func(ctx context.Context) error {
			return r.engine.CreateSearchSchema(ctx, name, schema)
		})
		if err == nil {
			return name, nil
		}

		if status.Code(err) != codes.AlreadyExists {
			return "", status.Errorf(codes.Internal, "failed to create search schema %s: %v", name, err)
		}

		logger.Warn("search schema name already taken, retrying with a new name",
			zap.String("name", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.cfg.SchemaNameAttempts),
		)
		lastErr = err
	}

	return "", status.Errorf(
		codes.AlreadyExists,
		"failed to find a free search schema name for bucket %s after %d attempts: %v",
		bucketName, r.cfg.SchemaNameAttempts, lastErr,
	)
}
