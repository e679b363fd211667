package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/billphamhypertek/idoc-fontend-v3-sub011/internal/config"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/buildinfo"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/cache"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/observability"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/pipeline"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/server"
	"github.com/billphamhypertek/idoc-fontend-v3-sub011/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen, redisAddr, mongoURI string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Start the tracktree HTTP API.

Layouts and renders are cached in Redis when an address is configured, in
memory otherwise. Saved layouts go to MongoDB when a URI is configured, to
memory otherwise.`,
		Example: `  tracktree serve --listen :9000
  tracktree serve --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.Config
			if listen != "" {
				cfg.Server.Listen = listen
			}
			if redisAddr != "" {
				cfg.Cache.Redis.Addr = redisAddr
			}
			if mongoURI != "" {
				cfg.Store.Mongo.URI = mongoURI
			}
			return c.runServe(cmd.Context(), &cfg)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default "+config.DefaultListen+")")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared cache")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for saved layouts")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	logger := c.Logger.WithPrefix("server")
	logger.Info("starting tracktree", "version", buildinfo.Short())

	observability.SetPipelineHooks(observability.NewLogPipelineHooks(logger))
	observability.SetCacheHooks(observability.NewLogCacheHooks(logger))
	observability.SetHTTPHooks(observability.NewLogHTTPHooks(logger))
	defer observability.Reset()

	cc, err := serverCache(ctx, cfg.Cache, logger)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Scope)
	}
	runner := pipeline.NewRunner(cc, keyer, logger)
	defer runner.Close()

	st, err := serverStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	opts := []server.Option{
		server.WithDefaults(cfg.PipelineOptions()),
		server.WithRequestTimeout(cfg.Server.RequestTimeout),
		server.WithMaxRecords(cfg.Server.MaxRecords),
	}
	if p, ok := cc.(server.Pinger); ok {
		opts = append(opts, server.WithHealthCheck("cache", p))
	}
	if p, ok := st.(server.Pinger); ok {
		opts = append(opts, server.WithHealthCheck("store", p))
	}
	srv := server.New(runner, st, logger, opts...)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}

// serverCache picks Redis when configured. Without Redis every instance
// keeps its own in-memory cache.
func serverCache(ctx context.Context, cfg config.CacheConfig, logger *log.Logger) (cache.Cache, error) {
	switch {
	case cfg.Disabled:
		logger.Info("cache disabled")
		return cache.NewNullCache(), nil
	case cfg.Redis.Addr != "":
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		logger.Info("using redis cache", "addr", cfg.Redis.Addr)
		return rc, nil
	default:
		logger.Info("using in-memory cache")
		return cache.NewMemoryCache(), nil
	}
}

func serverStore(ctx context.Context, cfg config.StoreConfig, logger *log.Logger) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		logger.Info("using in-memory layout store")
		return store.NewMemoryStore(), nil
	}
	cfg.Mongo.SetDefaults()
	ms, err := store.NewMongoStore(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	logger.Info("using mongo layout store", "database", cfg.Mongo.Database)
	return ms, nil
}
