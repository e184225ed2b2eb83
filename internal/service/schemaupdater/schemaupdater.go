//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package schemaupdater

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/searchsync/internal/model"
	loggerpkg "github.com/hitesh22rana/searchsync/internal/pkg/logger"
	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
	svcpkg "github.com/hitesh22rana/searchsync/internal/pkg/svc"
)

// AllModels selects every registered model.
const AllModels = "all"

// Repository provides index swap operations.
type Repository interface {
	ApplySchema(ctx context.Context, def *model.Definition, schema []byte) (string, error)
}

// ModelRegistry lists the models known to the application.
type ModelRegistry interface {
	BaseModels() []*model.Definition
}

// Config represents the schema updater service configuration.
type Config struct {
	// ParallelismLimit caps the number of concurrent swaps, 0 means no limit.
	ParallelismLimit int
	// Notices receives the progress lines printed in verbose mode.
	Notices io.Writer
}

// Service synchronizes the search index schemas of the registered models.
type Service struct {
	validator *validator.Validate
	tp        trace.Tracer
	cfg       *Config
	models    ModelRegistry
	compiler  *searchschema.Compiler
	repo      Repository

	noticeMu sync.Mutex
}

// New creates a new schema updater service.
func New(
	validator *validator.Validate,
	cfg *Config,
	models ModelRegistry,
	compiler *searchschema.Compiler,
	repo Repository,
) *Service {
	c := *cfg
	if c.Notices == nil {
		c.Notices = io.Discard
	}

	return &Service{
		validator: validator,
		tp:        otel.Tracer(svcpkg.Info().GetName()),
		cfg:       &c,
		models:    models,
		compiler:  compiler,
		repo:      repo,
	}
}

// RunRequest holds the parameters of a synchronization run.
type RunRequest struct {
	// Filter is a comma separated list of model names, or "all".
	Filter string `validate:"required"`
	// Silent suppresses the progress lines.
	Silent bool
}

// Run swaps in a freshly compiled search index for every model selected by the filter.
// Every selected model is processed concurrently and independently of the others; the
// returned report lists the outcome of each one.
func (s *Service) Run(ctx context.Context, req *RunRequest) (report *Report, err error) {
	ctx, span := s.tp.Start(ctx, "Service.Run")
	defer func() {
		if err != nil {
			span.SetStatus(otelcodes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	if err = s.validator.Struct(req); err != nil {
		err = status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
		return nil, err
	}

	report = &Report{
		RunID:   uuid.NewString(),
		Filter:  req.Filter,
		Started: time.Now(),
	}

	logger := loggerpkg.FromContext(ctx).With(zap.String("run_id", report.RunID))
	ctx = loggerpkg.WithLogger(ctx, logger)

	targets := s.selectModels(req.Filter)
	span.SetAttributes(
		attribute.String("run_id", report.RunID),
		attribute.String("filter", req.Filter),
		attribute.Int("targets", len(targets)),
	)
	if len(targets) == 0 {
		logger.Warn("no models matched the filter", zap.String("filter", req.Filter))
		report.Elapsed = time.Since(report.Started)
		return report, nil
	}

	if !req.Silent {
		s.notice("Schema creation started for %d model(s)", len(targets))
	}

	report.Results = make([]Result, len(targets))

	var eg errgroup.Group
	if s.cfg.ParallelismLimit > 0 {
		eg.SetLimit(s.cfg.ParallelismLimit)
	}
	for i, def := range targets {
		eg.Go(func() error {
			// Failures are kept in the result slot so siblings keep running.
			report.Results[i] = s.sync(ctx, def)
			if report.Results[i].Err == nil && !req.Silent {
				s.notice("+ %s", def.Name)
			}
			return nil
		})
	}

	//nolint:errcheck // Tasks never return an error, failures are reported per model
	eg.Wait()
	report.Elapsed = time.Since(report.Started)

	failed := report.Failed()
	for _, res := range failed {
		logger.Error("failed to apply search schema",
			zap.String("model", res.Model),
			zap.String("bucket", res.Bucket),
			zap.Error(res.Err),
		)
	}
	logger.Info("schema synchronization finished",
		zap.Int("succeeded", len(report.Succeeded())),
		zap.Int("failed", len(failed)),
		zap.Duration("elapsed", report.Elapsed),
	)
	span.SetAttributes(attribute.Int("failed", len(failed)))

	return report, nil
}

// sync classifies, compiles and swaps in the schema of a single model.
func (s *Service) sync(ctx context.Context, def *model.Definition) (res Result) {
	res = Result{
		Model:  def.Name,
		Bucket: def.BucketName(),
	}

	defer func() {
		if r := recover(); r != nil {
			res.Err = status.Errorf(codes.Internal, "panic while applying schema: %v", r)
			loggerpkg.FromContext(ctx).Error("recovered from panic",
				zap.String("model", def.Name),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()

	fields, err := searchschema.Classify(def)
	if err != nil {
		res.Err = status.Errorf(codes.InvalidArgument, "failed to classify fields: %v", err)
		return res
	}

	schema, err := s.compiler.Compile(fields)
	if err != nil {
		res.Err = status.Errorf(codes.InvalidArgument, "failed to compile schema: %v", err)
		return res
	}

	res.Index, res.Err = s.repo.ApplySchema(ctx, def, schema)
	return res
}

// selectModels resolves the filter against the registered models, keeping registration order.
func (s *Service) selectModels(filter string) []*model.Definition {
	wanted := make(map[string]struct{})
	all := false
	for _, name := range strings.Split(filter, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == AllModels {
			all = true
		}
		wanted[name] = struct{}{}
	}

	var targets []*model.Definition
	for _, def := range s.models.BaseModels() {
		if all {
			targets = append(targets, def)
			continue
		}

		_, byName := wanted[strings.ToLower(def.Name)]
		_, byBucket := wanted[def.BucketName()]
		if byName || byBucket {
			targets = append(targets, def)
		}
	}

	return targets
}

func (s *Service) notice(format string, args ...any) {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()

	//nolint:errcheck // Progress output is best effort
	fmt.Fprintf(s.cfg.Notices, format+"\n", args...)
}
