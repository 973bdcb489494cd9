package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flow/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached snapshots and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cc.Close()

			if err := cache.Clear(cmd.Context(), cc); err != nil {
				if errors.Is(err, cache.ErrUnsupported) {
					printWarning(c.Out, "The %s cache cannot be cleared", c.backend())
					return nil
				}
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.Out, "Cleared %s cache", c.backend())
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail(c.Out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.backend() {
			case cache.BackendFile:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(c.Out, dir)
			case cache.BackendRedis:
				printKeyValue(c.Out, "redis", c.Config.Cache.RedisAddr)
			case cache.BackendMongo:
				opts := c.Config.CacheOptions("")
				printKeyValue(c.Out, "mongo", opts.Mongo.URI)
				printKeyValue(c.Out, "database", opts.Mongo.Database)
			default:
				printInfo(c.Out, "Caching is disabled")
			}
			return nil
		},
	}
}

// backend returns the configured backend name.
func (c *CLI) backend() string {
	if c.Config.Cache.Backend == "" {
		return cache.BackendFile
	}
	return c.Config.Cache.Backend
}
