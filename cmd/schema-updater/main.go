package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"syscall"
	"time"

	_ "github.com/KimMachineGun/automemlimit"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/hitesh22rana/searchsync/internal/app/schemaupdater"
	"github.com/hitesh22rana/searchsync/internal/config"
	"github.com/hitesh22rana/searchsync/internal/model"
	"github.com/hitesh22rana/searchsync/internal/model/catalog"
	loggerpkg "github.com/hitesh22rana/searchsync/internal/pkg/logger"
	meilisearchpkg "github.com/hitesh22rana/searchsync/internal/pkg/meilisearch"
	otelpkg "github.com/hitesh22rana/searchsync/internal/pkg/otel"
	redispkg "github.com/hitesh22rana/searchsync/internal/pkg/redis"
	riakpkg "github.com/hitesh22rana/searchsync/internal/pkg/riak"
	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
	svcpkg "github.com/hitesh22rana/searchsync/internal/pkg/svc"
	schemaupdaterrepo "github.com/hitesh22rana/searchsync/internal/repository/schemaupdater"
	schemaupdatersvc "github.com/hitesh22rana/searchsync/internal/service/schemaupdater"
)

const (
	// ExitOk and ExitError are the exit codes.
	ExitOk = iota
	// ExitError is the exit code for errors.
	ExitError
)

const (
	serviceName     = "schema-updater"
	shutdownTimeout = 10 * time.Second
)

// version is set at build time.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	svcpkg.SetName(serviceName)
	svcpkg.SetVersion(version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		return ExitError
	}

	return ExitOk
}

func newRootCommand() *cobra.Command {
	var silent bool

	root := &cobra.Command{
		Use:   serviceName + " [models]",
		Short: "Create and bind fresh search indexes for the registered models",
		Long: "Compiles a search schema for every selected model, creates a new search index from it " +
			"and binds the model's bucket to the new index.\n\n" +
			"models is a comma separated list of model or bucket names, or \"all\" (the default).",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := schemaupdatersvc.AllModels
			if len(args) == 1 {
				filter = args[0]
			}
			return runUpdate(cmd.Context(), filter, silent)
		},
	}
	root.Flags().BoolVarP(&silent, "silent", "s", false, "do not print progress lines")

	root.AddCommand(&cobra.Command{
		Use:           "status",
		Short:         "List the search index every bucket is bound to",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context())
		},
	})

	return root
}

// runUpdate wires the components and runs the schema updater job.
func runUpdate(ctx context.Context, filter string, silent bool) error {
	// Load the schema updater configuration
	cfg, err := config.InitSchemaUpdaterConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	// Initialize the telemetry providers and the logger
	providers, err := otelpkg.Init(ctx, svcpkg.Info().GetName(), svcpkg.Info().GetVersion())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer shutdownProviders(providers)

	// Stdout carries the progress lines and the report.
	ctx, logger := loggerpkg.Init(ctx, svcpkg.Info().GetName(), cfg.Environment.Env, os.Stderr, providers.Logger)
	//nolint:errcheck // Nothing to do about a failed flush on exit
	defer logger.Sync()

	// Register the models
	models := model.NewRegistry()
	if err := catalog.Register(models); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	compiler, err := searchschema.LoadCompiler(cfg.SchemaTemplatePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	b, err := newBackends(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer b.close(logger)

	// Initialize the schema updater components
	repo := schemaupdaterrepo.New(
		&schemaupdaterrepo.Config{
			BucketType:         cfg.DefaultBucketType,
			SchemaNameAttempts: cfg.SchemaNameAttempts,
			Retry:              schemaupdaterrepo.DefaultRetryConfig(),
		},
		b.storage,
		b.engine,
		b.registry,
		searchschema.NewNamer(),
	)
	svc := schemaupdatersvc.New(
		validator.New(),
		&schemaupdatersvc.Config{
			ParallelismLimit: cfg.ParallelismLimit,
			Notices:          os.Stdout,
		},
		models,
		compiler,
		repo,
	)
	app := schemaupdater.New(ctx, svc, os.Stdout)

	// Log the job information
	logger.Info(
		"starting job",
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.String("search_engine", cfg.SearchEngine),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.Int("models", models.Len()),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Int64("gomemlimit", debug.SetMemoryLimit(-1)),
	)

	if err := app.Run(ctx, filter, silent); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	return nil
}

// runStatus prints the index registry.
func runStatus(ctx context.Context) error {
	cfg, err := config.InitSchemaUpdaterConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	store, err := newRedisStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	//nolint:errcheck // Read-only command
	defer store.Close()

	indexes, err := store.Indexes(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	buckets := make([]string, 0, len(indexes))
	for bucket := range indexes {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	for _, bucket := range buckets {
		fmt.Fprintf(os.Stdout, "%s\t%s\n", bucket, indexes[bucket])
	}

	return nil
}

// backends holds the storage, search engine and index registry chosen by the configuration.
type backends struct {
	storage  schemaupdaterrepo.Storage
	engine   schemaupdaterrepo.SearchEngine
	registry schemaupdaterrepo.IndexRegistry
	closers  []func() error
}

func newBackends(ctx context.Context, cfg *config.SchemaUpdater) (b *backends, err error) {
	b = &backends{}
	defer func() {
		if err != nil {
			b.close(zap.NewNop())
		}
	}()

	var (
		riakClient *riakpkg.Client
		redisStore *redispkg.RedisStore
	)

	needsRiak := cfg.StorageBackend == config.StorageRiak || cfg.SearchEngine == config.SearchEngineRiak
	if needsRiak {
		riakClient, err = riakpkg.New(
			ctx,
			riakpkg.WithNodes(cfg.Riak.Nodes...),
			riakpkg.WithConnections(cfg.Riak.MinConnections, cfg.Riak.MaxConnections),
			riakpkg.WithTimeouts(cfg.Riak.ConnectTimeout, cfg.Riak.RequestTimeout),
		)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, riakClient.Close)
	}

	if cfg.StorageBackend == config.StorageRedis || cfg.IndexRegistry {
		redisStore, err = newRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, redisStore.Close)
	}

	switch cfg.StorageBackend {
	case config.StorageRiak:
		b.storage = schemaupdaterrepo.NewStorage(riakClient)
	case config.StorageRedis:
		b.storage = schemaupdaterrepo.NewStorage(redisStore)
	}

	switch cfg.SearchEngine {
	case config.SearchEngineRiak:
		b.engine = schemaupdaterrepo.NewYokozunaEngine(riakClient)
	case config.SearchEngineMeiliSearch:
		engine, err := meilisearchpkg.Dial(ctx, &cfg.MeiliSearch)
		if err != nil {
			return nil, err
		}
		b.engine = engine
	}

	if cfg.IndexRegistry {
		b.registry = redisStore
	}

	return b, nil
}

func (b *backends) close(logger *zap.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("failed to close backend", zap.Error(err))
		}
	}
}

func newRedisStore(ctx context.Context, cfg *config.SchemaUpdater) (*redispkg.RedisStore, error) {
	redisCfg := &redispkg.Config{
		Host:             cfg.Redis.Host,
		Port:             cfg.Redis.Port,
		Password:         cfg.Redis.Password,
		DB:               cfg.Redis.DB,
		PoolSize:         cfg.Redis.PoolSize,
		MinIdleConns:     cfg.Redis.MinIdleConns,
		ReadTimeout:      cfg.Redis.ReadTimeout,
		WriteTimeout:     cfg.Redis.WriteTimeout,
		DefaultNVal:      cfg.DefaultNVal,
		IndexRegistryKey: cfg.IndexRegistryKey,
	}

	if cfg.Redis.TLS.Enabled {
		tlsConfig, err := redispkg.NewTLSConfig(cfg.Redis.TLS.CertFile, cfg.Redis.TLS.KeyFile, cfg.Redis.TLS.CAFile)
		if err != nil {
			return nil, err
		}
		redisCfg.TLS = tlsConfig
	}

	return redispkg.New(ctx, redisCfg)
}

func shutdownProviders(providers *otelpkg.Providers) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := providers.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
	}
}
