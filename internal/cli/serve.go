package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prismaflow/internal/server"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/observability"
	"github.com/matzehuels/prismaflow/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheURL  string
		styleFile string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve flow diagrams over HTTP",
		Long: `Start an HTTP service that renders flow diagrams.

Routes:
  GET  /health       liveness and build info
  GET  /template     the example CSV
  POST /render       JSON body, options in the query string
  POST /render/csv   CSV body, options in the query string
  GET  /metrics      Prometheus metrics

PORT and PRISMAFLOW_CACHE are read from the environment or a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.ConfigFromEnv()
			if addr == "" {
				addr = cfg.Addr
			}
			if cacheURL == "" {
				cacheURL = cfg.CacheURL
			}

			style := flow.DefaultStyle()
			if styleFile != "" {
				s, err := resolveStyle(styleFile, flow.Style{}, func(string) bool { return false })
				if err != nil {
					return err
				}
				style = s
			}

			cc, err := c.openCache(cmd.Context(), cacheURL, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			runner := pipeline.NewRunner(cc, nil, c.Logger)
			defer runner.Close()

			opts := []server.Option{server.WithStyle(style)}
			if !noMetrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				m := observability.NewMetrics(reg)
				observability.SetPipelineHooks(m)
				observability.SetCacheHooks(m)
				observability.SetHTTPHooks(m)
				opts = append(opts, server.WithGatherer(reg))
			}

			printKeyValue("cache", cacheLocation(cacheURL))
			printKeyValue("metrics", fmt.Sprint(!noMetrics))
			return server.New(runner, c.Logger, opts...).ListenAndServe(cmd.Context(), addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", "", "listen address (default :$PORT or :"+server.DefaultPort+")")
	f.StringVar(&cacheURL, "cache", "", "cache location: directory, redis://, mongodb:// or none")
	f.StringVar(&styleFile, "style-file", "", "style applied to every render (.toml, .yaml)")
	f.BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	return cmd
}
