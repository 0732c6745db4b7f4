package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mbertsch/critpath/internal/server"
	"github.com/mbertsch/critpath/pkg/cache"
	"github.com/mbertsch/critpath/pkg/pipeline"
	"github.com/mbertsch/critpath/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	mongo   string // MongoDB connection URI (empty = in-memory store)
	mongoDB string // MongoDB database name
	redis   string // Redis address (empty = file cache)
	noCache bool   // disable the result cache
}

// serveCommand creates the serve command for running the HTTP API.
//
// Persistence and caching scale with the deployment: the defaults (in-memory
// store, file cache) suit a single local instance, while --mongo and --redis
// back multi-instance deployments.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		mongoDB: appName,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for project persistence (default in-memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the result cache (default file cache)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	resultCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	projectStore, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = projectStore.Close(ctx) }()

	runner := pipeline.NewRunner(resultCache, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   opts.addr,
		Store:  projectStore,
		Runner: runner,
		Logger: c.Logger,
	})

	c.Logger.Info("starting server", "addr", opts.addr)
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.redis != "" {
		c.Logger.Info("using redis cache", "addr", opts.redis)
		return cache.NewRedisCache(ctx, opts.redis)
	}
	return newCache(opts.noCache)
}

func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongo != "" {
		c.Logger.Info("using mongodb store", "database", opts.mongoDB)
		return store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
	}
	return store.NewMemoryStore(), nil
}
