package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prismaflow/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and export cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var cacheURL string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and export",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.openCache(cmd.Context(), cacheURL, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			clr, ok := cc.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			if err := clr.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cache cleared")
			printDetail("Location: %s", cacheLocation(cacheURL))
			return nil
		},
	}
	cmd.Flags().StringVar(&cacheURL, "cache", "", "cache location: directory, redis:// or mongodb://")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := cacheLocation("")
			if loc == "" {
				return fmt.Errorf("no cache directory available")
			}
			fmt.Println(loc)
			return nil
		},
	}
}

// cacheLocation returns the flag value, PRISMAFLOW_CACHE or the local cache
// directory, whichever is set first.
func cacheLocation(cacheURL string) string {
	if cacheURL != "" {
		return cacheURL
	}
	if env := os.Getenv(envCache); env != "" {
		return env
	}
	dir, _ := cacheDir()
	return dir
}
