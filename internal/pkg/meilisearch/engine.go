package meilisearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/searchsync/internal/config"
)

const (
	dialTimeout     = 10 * time.Second
	taskTimeout     = 1 * time.Minute
	pollingDuration = 2 * time.Second
	healthAvailable = "available"
)

// Client is the part of the MeiliSearch service manager used by the engine.
type Client interface {
	GetIndexWithContext(ctx context.Context, uid string) (*meilisearch.IndexResult, error)
	CreateIndexWithContext(ctx context.Context, config *meilisearch.IndexConfig) (*meilisearch.TaskInfo, error)
	GetTasksWithContext(ctx context.Context, param *meilisearch.TasksQuery) (*meilisearch.TaskResult, error)
	Index(uid string) meilisearch.IndexManager
}

type schemaEntry struct {
	content []byte
	index   *Index
}

// Engine creates MeiliSearch indexes from compiled Solr schemas.
// MeiliSearch has no schema objects, so schemas are kept by the engine until their
// index is created. The replication factor does not apply and is ignored.
type Engine struct {
	client Client

	mu      sync.Mutex
	schemas map[string]*schemaEntry

	pollInterval time.Duration
	timeout      time.Duration
}

// Dial connects to the configured MeiliSearch server and returns an engine on top of it.
// The server must report itself available.
func Dial(ctx context.Context, cfg *config.MeiliSearch) (*Engine, error) {
	if cfg.URI == "" {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize MeiliSearch client: missing uri")
	}
	if cfg.MasterKey == "" {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize MeiliSearch client: missing masterkey")
	}

	opts := []meilisearch.Option{meilisearch.WithAPIKey(cfg.MasterKey)}
	if cfg.TLS.Enabled {
		tlsConfig, err := loadTLSConfig(&cfg.TLS)
		if err != nil {
			return nil, err
		}
		opts = append(opts, meilisearch.WithCustomClientWithTLS(tlsConfig))
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	client := meilisearch.New(cfg.URI, opts...)
	health, err := client.HealthWithContext(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to reach MeiliSearch at %s: %v", cfg.URI, err)
	}
	if health.Status != healthAvailable {
		return nil, status.Errorf(codes.Unavailable, "MeiliSearch at %s is %s", cfg.URI, health.Status)
	}

	return NewEngine(client), nil
}

// loadTLSConfig builds a mutual TLS config from the configured files.
func loadTLSConfig(cfg *config.TLS) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to load MeiliSearch client key pair: %v", err)
	}

	caCert, err := os.ReadFile(cfg.CAFile)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to read MeiliSearch CA certificate: %v", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, status.Errorf(codes.InvalidArgument, "no certificates found in %s", cfg.CAFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// NewEngine creates a MeiliSearch search engine.
func NewEngine(client Client) *Engine {
	return &Engine{
		client:       client,
		schemas:      make(map[string]*schemaEntry),
		pollInterval: pollingDuration,
		timeout:      taskTimeout,
	}
}

// CreateSearchSchema records the schema under name. The name is taken when a different
// schema was recorded under it or an index with that name exists.
func (e *Engine) CreateSearchSchema(ctx context.Context, name string, schema []byte) error {
	index, err := ParseSchema(name, schema)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "%v", err)
	}

	e.mu.Lock()
	entry, ok := e.schemas[name]
	e.mu.Unlock()
	if ok {
		if bytes.Equal(entry.content, schema) {
			return nil
		}
		return status.Errorf(codes.AlreadyExists, "search schema %s already exists with different content", name)
	}

	exists, err := e.indexExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return status.Errorf(codes.AlreadyExists, "meilisearch index %s already exists", name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.schemas[name]; ok && !bytes.Equal(entry.content, schema) {
		return status.Errorf(codes.AlreadyExists, "search schema %s already exists with different content", name)
	}
	e.schemas[name] = &schemaEntry{content: bytes.Clone(schema), index: index}

	return nil
}

// CreateSearchIndex creates the index and applies the settings derived from its schema.
func (e *Engine) CreateSearchIndex(ctx context.Context, name, schemaName string, _ uint32) error {
	e.mu.Lock()
	entry, ok := e.schemas[schemaName]
	e.mu.Unlock()
	if !ok {
		return status.Errorf(codes.NotFound, "search schema %s not found", schemaName)
	}
	settings := entry.index

	createTask, err := e.client.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{
		Uid:        name,
		PrimaryKey: settings.PrimaryKey,
	})
	if err != nil {
		return status.Errorf(codes.Internal, "failed to create meilisearch index %v", err)
	}

	if err := e.waitForTaskCompletion(ctx, []int64{createTask.TaskUID}); err != nil {
		return err
	}

	index := e.client.Index(name)
	taskIDs := make([]int64, 0, 4)

	searchableTask, err := index.UpdateSearchableAttributesWithContext(ctx, &settings.Searchable)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to update searchable attributes %v", err)
	}
	taskIDs = append(taskIDs, searchableTask.TaskUID)

	filterableTask, err := index.UpdateFilterableAttributesWithContext(ctx, &settings.Filterable)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to update filterable attributes %v", err)
	}
	taskIDs = append(taskIDs, filterableTask.TaskUID)

	sortableTask, err := index.UpdateSortableAttributesWithContext(ctx, &settings.Sortable)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to update sortable attributes %v", err)
	}
	taskIDs = append(taskIDs, sortableTask.TaskUID)

	displayedTask, err := index.UpdateDisplayedAttributesWithContext(ctx, &settings.Displayed)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to update displayed attributes %v", err)
	}
	taskIDs = append(taskIDs, displayedTask.TaskUID)

	return e.waitForTaskCompletion(ctx, taskIDs)
}

func (e *Engine) indexExists(ctx context.Context, name string) (bool, error) {
	_, err := e.client.GetIndexWithContext(ctx, name)
	if err == nil {
		return true, nil
	}

	var apiErr *meilisearch.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return false, nil
	}

	return false, status.Errorf(codes.Unavailable, "failed to look up meilisearch index %s: %v", name, err)
}

func (e *Engine) waitForTaskCompletion(ctx context.Context, taskIDs []int64) error {
	if len(taskIDs) == 0 {
		return nil
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	timeout := time.After(e.timeout)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return status.Errorf(codes.DeadlineExceeded, "timeout waiting for Meilisearch tasks: %v", taskIDs)
		case <-ticker.C:
			tasks, err := e.client.GetTasksWithContext(
				ctx,
				&meilisearch.TasksQuery{
					UIDS:  taskIDs,
					Limit: int64(len(taskIDs)),
				},
			)
			if err != nil {
				return status.Errorf(codes.Unavailable, "failed to get meilisearch task info %v", err)
			}

			allDone := true
			//nolint:gocritic,exhaustive // It's how implemented in the library.
			for _, task := range tasks.Results {
				switch task.Status {
				case "succeeded":
				case "failed":
					if strings.Contains(task.Error.Code, "index_already_exists") {
						continue
					}

					return status.Errorf(codes.Internal, "meilisearch task %d failed: %v", task.UID, task.Error)
				case "canceled":
					return status.Errorf(codes.Internal, "meilisearch task %d was canceled", task.UID)
				default:
					allDone = false
				}
			}

			if allDone {
				return nil
			}
		}
	}
}
