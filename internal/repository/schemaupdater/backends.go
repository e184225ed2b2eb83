//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package schemaupdater

import (
	"bytes"
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	riakpkg "github.com/hitesh22rana/searchsync/internal/pkg/riak"
)

// BucketStore reads and writes bucket properties.
type BucketStore interface {
	BucketTypeNVal(ctx context.Context, bucketType string) (uint32, error)
	SetBucketSearchIndex(ctx context.Context, bucketType, bucket, index string) error
	BucketSearchIndex(ctx context.Context, bucketType, bucket string) (string, error)
}

// SchemaStore manages Riak Search schemas and indexes.
type SchemaStore interface {
	StoreSchema(ctx context.Context, name, content string) error
	// FetchSchema returns riak.ErrSchemaNotFound for an unknown schema.
	FetchSchema(ctx context.Context, name string) (string, error)
	StoreIndex(ctx context.Context, name, schemaName string, nVal uint32) error
}

// NewStorage returns a Storage backed by store.
func NewStorage(store BucketStore) Storage {
	return &storage{store: store}
}

type storage struct {
	store BucketStore
}

func (s *storage) BucketType(name string) BucketType {
	return &bucketType{store: s.store, name: name}
}

type bucketType struct {
	store BucketStore
	name  string
}

func (bt *bucketType) NVal(ctx context.Context) (uint32, error) {
	return bt.store.BucketTypeNVal(ctx, bt.name)
}

func (bt *bucketType) Bucket(name string) Bucket {
	return &bucket{store: bt.store, bucketType: bt.name, name: name}
}

type bucket struct {
	store      BucketStore
	bucketType string
	name       string
}

func (b *bucket) SetSearchIndex(ctx context.Context, index string) error {
	return b.store.SetBucketSearchIndex(ctx, b.bucketType, b.name, index)
}

func (b *bucket) SearchIndex(ctx context.Context) (string, error) {
	return b.store.BucketSearchIndex(ctx, b.bucketType, b.name)
}

// YokozunaEngine is the Riak Search SearchEngine.
type YokozunaEngine struct {
	store SchemaStore
}

// NewYokozunaEngine creates a Riak Search engine over store.
func NewYokozunaEngine(store SchemaStore) *YokozunaEngine {
	return &YokozunaEngine{store: store}
}

// CreateSearchSchema stores schema unless a different schema already uses the name.
// Riak overwrites schemas on store, so the name is checked first.
func (e *YokozunaEngine) CreateSearchSchema(ctx context.Context, name string, schema []byte) error {
	existing, err := e.store.FetchSchema(ctx, name)
	switch {
	case errors.Is(err, riakpkg.ErrSchemaNotFound):
	case err != nil:
		return err
	case bytes.Equal([]byte(existing), schema):
		return nil
	default:
		return status.Errorf(codes.AlreadyExists, "search schema %s already exists with different content", name)
	}

	return e.store.StoreSchema(ctx, name, string(schema))
}

// CreateSearchIndex creates an index over an existing schema.
func (e *YokozunaEngine) CreateSearchIndex(ctx context.Context, name, schemaName string, nVal uint32) error {
	if nVal == 0 {
		return status.Errorf(codes.InvalidArgument, "n_val of search index %s must be positive", name)
	}

	return e.store.StoreIndex(ctx, name, schemaName, nVal)
}
