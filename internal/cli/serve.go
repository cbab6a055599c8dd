package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/spren9er/cactuz-sub000/internal/server"
	"github.com/spren9er/cactuz-sub000/pkg/cache"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
	"github.com/spren9er/cactuz-sub000/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string // listen address
	redis string // redis address for the shared artifact cache
	mongo string // mongodb uri for layout persistence
}

// newServeCmd creates the serve command for running the HTTP render service.
//
// Without --redis the service caches in process memory; without --mongo
// stored layouts live in memory and are lost on restart. Flags fall back to
// the CACTUZ_ADDR, CACTUZ_REDIS_ADDR, and CACTUZ_MONGO_URI environment
// variables.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", envOr("CACTUZ_ADDR", ":8080"), "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", os.Getenv("CACTUZ_REDIS_ADDR"), "redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", os.Getenv("CACTUZ_MONGO_URI"), "mongodb uri for layout persistence")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := buildCache(ctx, opts.redis)
	if err != nil {
		return err
	}

	st, err := buildStore(ctx, opts.mongo)
	if err != nil {
		_ = c.Close()
		return err
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	return server.New(runner, st, logger).ListenAndServe(ctx, opts.addr)
}

// buildCache picks the cache backend: Redis when an address is given,
// otherwise process memory.
func buildCache(ctx context.Context, redisAddr string) (cache.Cache, error) {
	if redisAddr == "" {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, redisAddr)
	if err != nil {
		return nil, err
	}
	printInfo("Using redis cache at %s", redisAddr)
	return rc, nil
}

// buildStore picks the store backend: MongoDB when a uri is given,
// otherwise process memory.
func buildStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, mongoURI)
	if err != nil {
		return nil, err
	}
	printInfo("Using mongodb store")
	return ms, nil
}
