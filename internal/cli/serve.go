package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reactorsim/internal/server"
	"github.com/matzehuels/reactorsim/pkg/cache"
	"github.com/matzehuels/reactorsim/pkg/pipeline"
	"github.com/matzehuels/reactorsim/pkg/session"
)

// redisKeyPrefix namespaces server cache keys in a shared Redis.
const redisKeyPrefix = "reactorsim:"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frames and player sessions over HTTP",
		Long: `Serve frames and player sessions over HTTP.

Rendered artifacts are cached in memory, or in Redis when cache.redis_addr is
set in the config file. Player sessions live in memory and expire after 30
minutes without requests.`,
		Example: `  reactorsim serve
  reactorsim serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Serve.Addr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	runner, err := c.newServerRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	sessions := session.NewStore(session.DefaultTTL, c.Logger.WithPrefix("sessions"))
	srv := server.New(runner, sessions, c.Logger.WithPrefix("http"))

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	return srv.Run(ctx, addr, session.DefaultCleanupInterval)
}

// newServerRunner prefers a shared Redis cache and falls back to an
// in-process LRU when Redis is not configured or not reachable.
func (c *CLI) newServerRunner(ctx context.Context) (*pipeline.Runner, error) {
	if c.Config.Cache.Disabled {
		r := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
		r.TTL = c.Config.Cache.TTL
		return r, nil
	}

	if addr := c.Config.Cache.RedisAddr; addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err == nil {
			c.Logger.Info("using redis cache", "addr", addr)
			r := pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), c.Logger)
			r.TTL = c.Config.Cache.TTL
			return r, nil
		}
		c.Logger.Warn("redis unavailable, using in-memory cache", "addr", addr, "error", err)
	}

	lru, err := cache.NewLRUCache(c.Config.Serve.FrameCacheSize)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(lru, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
