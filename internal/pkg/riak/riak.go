// Package riak wraps the Riak KV cluster client with the bucket and search administration
// commands used by the application.
package riak

import (
	"context"
	"errors"
	"strings"
	"time"

	riak "github.com/basho/riak-go-client"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultMinConnections uint16        = 1
	defaultMaxConnections uint16        = 64
	defaultConnectTimeout time.Duration = 5 * time.Second
	defaultRequestTimeout time.Duration = 30 * time.Second
	storeIndexTimeout     time.Duration = 30 * time.Second
)

// ErrSchemaNotFound is returned when a search schema does not exist.
var ErrSchemaNotFound = errors.New("search schema not found")

// Config represents the configuration for the Riak client.
type Config struct {
	Nodes          []string
	MinConnections uint16
	MaxConnections uint16
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// Option is a functional option type that allows us to configure the Riak client.
type Option func(*Config)

// Executor runs a Riak command.
type Executor interface {
	Execute(cmd riak.Command) error
}

// Client issues bucket and search administration commands against a Riak cluster.
type Client struct {
	exec    Executor
	cluster *riak.Cluster
}

// New creates a new Riak client and starts the cluster connection pools.
func New(_ context.Context, options ...Option) (*Client, error) {
	c := &Config{
		MinConnections: defaultMinConnections,
		MaxConnections: defaultMaxConnections,
		ConnectTimeout: defaultConnectTimeout,
		RequestTimeout: defaultRequestTimeout,
	}

	for _, opt := range options {
		opt(c)
	}

	if len(c.Nodes) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Riak client: missing nodes")
	}
	if c.MinConnections > c.MaxConnections {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Riak client: min connections exceed max connections")
	}

	nodes := make([]*riak.Node, 0, len(c.Nodes))
	for _, addr := range c.Nodes {
		node, err := riak.NewNode(&riak.NodeOptions{
			RemoteAddress:  addr,
			MinConnections: c.MinConnections,
			MaxConnections: c.MaxConnections,
			ConnectTimeout: c.ConnectTimeout,
			RequestTimeout: c.RequestTimeout,
		})
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Riak node %s: %v", addr, err)
		}
		nodes = append(nodes, node)
	}

	cluster, err := riak.NewCluster(&riak.ClusterOptions{Nodes: nodes})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to initialize Riak cluster: %v", err)
	}

	if err := cluster.Start(); err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to start Riak cluster: %v", err)
	}

	return &Client{exec: cluster, cluster: cluster}, nil
}

// NewWithExecutor creates a client on top of an existing executor.
func NewWithExecutor(exec Executor) *Client {
	return &Client{exec: exec}
}

// Close stops the cluster connection pools.
func (c *Client) Close() error {
	if c.cluster == nil {
		return nil
	}

	return c.cluster.Stop()
}

// BucketTypeNVal returns the replication factor configured for a bucket type.
func (c *Client) BucketTypeNVal(ctx context.Context, bucketType string) (uint32, error) {
	cmd, err := riak.NewFetchBucketTypePropsCommandBuilder().
		WithBucketType(bucketType).
		Build()
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "failed to build fetch bucket type command: %v", err)
	}

	if err := c.execute(ctx, cmd); err != nil {
		return 0, err
	}

	fetch, ok := cmd.(*riak.FetchBucketTypePropsCommand)
	if !ok || fetch.Response == nil {
		return 0, status.Errorf(codes.Internal, "unexpected response for bucket type %s", bucketType)
	}

	return fetch.Response.NVal, nil
}

// SetBucketSearchIndex binds a bucket to a search index.
func (c *Client) SetBucketSearchIndex(ctx context.Context, bucketType, bucket, index string) error {
	cmd, err := riak.NewStoreBucketPropsCommandBuilder().
		WithBucketType(bucketType).
		WithBucket(bucket).
		WithSearchIndex(index).
		Build()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to build store bucket props command: %v", err)
	}

	return c.execute(ctx, cmd)
}

// BucketSearchIndex returns the search index a bucket is bound to.
func (c *Client) BucketSearchIndex(ctx context.Context, bucketType, bucket string) (string, error) {
	cmd, err := riak.NewFetchBucketPropsCommandBuilder().
		WithBucketType(bucketType).
		WithBucket(bucket).
		Build()
	if err != nil {
		return "", status.Errorf(codes.InvalidArgument, "failed to build fetch bucket props command: %v", err)
	}

	if err := c.execute(ctx, cmd); err != nil {
		return "", err
	}

	fetch, ok := cmd.(*riak.FetchBucketPropsCommand)
	if !ok || fetch.Response == nil {
		return "", status.Errorf(codes.Internal, "unexpected response for bucket %s", bucket)
	}

	return fetch.Response.SearchIndex, nil
}

// StoreSchema uploads a search schema.
func (c *Client) StoreSchema(ctx context.Context, name, content string) error {
	cmd, err := riak.NewStoreSchemaCommandBuilder().
		WithSchemaName(name).
		WithSchema(content).
		Build()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to build store schema command: %v", err)
	}

	return c.execute(ctx, cmd)
}

// FetchSchema returns the content of a stored search schema, or ErrSchemaNotFound.
func (c *Client) FetchSchema(ctx context.Context, name string) (string, error) {
	cmd, err := riak.NewFetchSchemaCommandBuilder().
		WithSchemaName(name).
		Build()
	if err != nil {
		return "", status.Errorf(codes.InvalidArgument, "failed to build fetch schema command: %v", err)
	}

	if err := c.execute(ctx, cmd); err != nil {
		if isNotFound(err) {
			return "", ErrSchemaNotFound
		}
		return "", err
	}

	fetch, ok := cmd.(*riak.FetchSchemaCommand)
	if !ok || fetch.Response == nil {
		return "", ErrSchemaNotFound
	}

	return fetch.Response.Content, nil
}

// StoreIndex creates a search index over a stored schema.
func (c *Client) StoreIndex(ctx context.Context, name, schemaName string, nVal uint32) error {
	cmd, err := riak.NewStoreIndexCommandBuilder().
		WithIndexName(name).
		WithSchemaName(schemaName).
		WithNVal(nVal).
		WithTimeout(storeIndexTimeout).
		Build()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to build store index command: %v", err)
	}

	return c.execute(ctx, cmd)
}

// execute runs the command, giving up early when ctx is done.
// The command itself is bounded by the node request timeout.
func (c *Client) execute(ctx context.Context, cmd riak.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- c.exec.Execute(cmd)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return classify(err)
		}
		return nil
	}
}

// classify maps Riak errors to status codes.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case isNotFound(err):
		return status.Errorf(codes.NotFound, "riak: %v", err)
	case strings.Contains(msg, "already exists"):
		return status.Errorf(codes.AlreadyExists, "riak: %v", err)
	case strings.Contains(msg, "no nodes available"), strings.Contains(msg, "connection"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return status.Errorf(codes.Unavailable, "riak: %v", err)
	default:
		return status.Errorf(codes.Internal, "riak: %v", err)
	}
}

func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "notfound") || strings.Contains(msg, "not found")
}

// WithNodes sets the addresses of the cluster nodes.
func WithNodes(nodes ...string) Option {
	return func(c *Config) {
		for _, n := range nodes {
			if n = strings.TrimSpace(n); n != "" {
				c.Nodes = append(c.Nodes, n)
			}
		}
	}
}

// WithConnections sets the per-node connection pool bounds.
func WithConnections(minConns, maxConns uint16) Option {
	return func(c *Config) {
		if minConns > 0 {
			c.MinConnections = minConns
		}
		if maxConns > 0 {
			c.MaxConnections = maxConns
		}
	}
}

// WithTimeouts sets the connect and request timeouts.
func WithTimeouts(connect, request time.Duration) Option {
	return func(c *Config) {
		if connect > 0 {
			c.ConnectTimeout = connect
		}
		if request > 0 {
			c.RequestTimeout = request
		}
	}
}
