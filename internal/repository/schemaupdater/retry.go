package schemaupdater

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	loggerpkg "github.com/hitesh22rana/searchsync/internal/pkg/logger"
)

const (
	defaultMaxRetries   = 4
	defaultInitialDelay = 500 * time.Millisecond
)

var (
	// Network-related errors that are typically retryable.
	retryablePatterns = []string{
		"connection reset by peer",
		"connection refused",
		"timeout",
		"timed out",
		"temporary failure",
		"network is unreachable",
		"no route to host",
		"i/o timeout",
		"dial tcp",
		"broken pipe",
		"connection lost",
		"server closed",
		"connection aborted",
		"eof",
		"no nodes available",
		"overload",
	}

	// Errors that will not go away by retrying.
	nonRetryablePatterns = []string{
		"certificate",
		"authentication",
		"permission denied",
		"access denied",
		"invalid credentials",
		"tls",
		"ssl",
		"malformed",
		"already exists",
	}
)

// RetryConfig holds configuration for backend operation retries.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
}

// DefaultRetryConfig returns the default retry configuration for backend operations.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   defaultMaxRetries,
		InitialDelay: defaultInitialDelay,
	}
}

// errorClassifier decides whether a backend error is worth another attempt.
type errorClassifier struct{}

// Classify implements retrier.Classifier.
func (errorClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}

	if isRetryable(err) {
		return retrier.Retry
	}

	return retrier.Fail
}

// isRetryable determines if a backend error is transient.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	//nolint:exhaustive // Only some codes carry a definite answer
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted:
		return true
	case codes.AlreadyExists, codes.InvalidArgument, codes.FailedPrecondition,
		codes.PermissionDenied, codes.Unauthenticated, codes.NotFound:
		return false
	}

	errStr := strings.ToLower(err.Error())

	for _, pattern := range nonRetryablePatterns {
		if strings.Contains(errStr, pattern) {
			return false
		}
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// withRetry runs operation with exponential backoff while it fails with a transient error.
func (r *Repository) withRetry(ctx context.Context, op string, operation func(ctx context.Context) error) error {
	cfg := r.cfg.Retry
	if cfg.MaxRetries <= 0 {
		return operation(ctx)
	}

	logger := loggerpkg.FromContext(ctx)

	attempt := 0
	ret := retrier.New(retrier.ExponentialBackoff(cfg.MaxRetries, cfg.InitialDelay), errorClassifier{})
	err := ret.RunCtx(ctx, func(ctx context.Context) error {
		attempt++
		err := operation(ctx)
		if err != nil && attempt <= cfg.MaxRetries && isRetryable(err) {
			logger.Warn("backend operation failed, retrying",
				zap.String("operation", op),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", cfg.MaxRetries),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil && attempt > 1 {
		logger.Error("backend operation failed after retries",
			zap.String("operation", op),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
	}

	return err
}
