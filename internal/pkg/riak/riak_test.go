package riak

import (
	"context"
	"errors"
	"testing"
	"time"

	riak "github.com/basho/riak-go-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type executorFunc func(cmd riak.Command) error

func (f executorFunc) Execute(cmd riak.Command) error { return f(cmd) }

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		code    codes.Code
	}{
		{
			name:    "error: missing nodes",
			options: []Option{WithNodes(" ", "")},
			code:    codes.InvalidArgument,
		},
		{
			name: "error: min connections exceed max",
			options: []Option{
				WithNodes("127.0.0.1:8087"),
				WithConnections(10, 2),
			},
			code: codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(t.Context(), tt.options...)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestOptions(t *testing.T) {
	c := &Config{
		MinConnections: defaultMinConnections,
		MaxConnections: defaultMaxConnections,
		ConnectTimeout: defaultConnectTimeout,
		RequestTimeout: defaultRequestTimeout,
	}

	for _, opt := range []Option{
		WithNodes("riak-1:8087", " riak-2:8087 "),
		WithConnections(0, 8),
		WithTimeouts(time.Second, 0),
	} {
		opt(c)
	}

	assert.Equal(t, []string{"riak-1:8087", "riak-2:8087"}, c.Nodes)
	assert.Equal(t, defaultMinConnections, c.MinConnections)
	assert.Equal(t, uint16(8), c.MaxConnections)
	assert.Equal(t, time.Second, c.ConnectTimeout)
	assert.Equal(t, defaultRequestTimeout, c.RequestTimeout)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "not found", err: errors.New("RiakError|0|notfound"), code: codes.NotFound},
		{name: "already exists", err: errors.New("schema already exists"), code: codes.AlreadyExists},
		{name: "no nodes", err: errors.New("No nodes available to execute command"), code: codes.Unavailable},
		{name: "timeout", err: errors.New("read tcp: i/o timeout"), code: codes.Unavailable},
		{name: "other", err: errors.New("bad schema"), code: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewWithExecutor(executorFunc(func(riak.Command) error { return tt.err }))
			err := c.StoreSchema(t.Context(), "user_1", "<schema/>")
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestClient_FetchSchemaNotFound(t *testing.T) {
	c := NewWithExecutor(executorFunc(func(cmd riak.Command) error {
		_, ok := cmd.(*riak.FetchSchemaCommand)
		require.True(t, ok)
		return errors.New("notfound")
	}))

	_, err := c.FetchSchema(t.Context(), "user_1")
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestClient_CommandsReachExecutor(t *testing.T) {
	var seen []string
	c := NewWithExecutor(executorFunc(func(cmd riak.Command) error {
		switch cmd.(type) {
		case *riak.StoreSchemaCommand:
			seen = append(seen, "schema")
		case *riak.StoreIndexCommand:
			seen = append(seen, "index")
		case *riak.StoreBucketPropsCommand:
			seen = append(seen, "bucket")
		}
		return nil
	}))

	ctx := t.Context()
	require.NoError(t, c.StoreSchema(ctx, "user_1", "<schema/>"))
	require.NoError(t, c.StoreIndex(ctx, "user_1", "user_1", 3))
	require.NoError(t, c.SetBucketSearchIndex(ctx, "models", "user", "user_1"))
	assert.Equal(t, []string{"schema", "index", "bucket"}, seen)
	assert.NoError(t, c.Close())
}

func TestClient_ContextCanceled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	c := NewWithExecutor(executorFunc(func(riak.Command) error {
		<-block
		return nil
	}))

	ctx, cancel := context.WithCancel(t.Context())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := c.StoreIndex(ctx, "user_1", "user_1", 3)
	assert.ErrorIs(t, err, context.Canceled)
}
