package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/api"
	"github.com/simonhull/audioinfo/internal/config"
	"github.com/simonhull/audioinfo/internal/logger"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis service",
		Long: `Run the HTTP analysis service.

Endpoints:
  GET  /alive/                 liveness probe
  POST /analyze-audio/         JSON body {"audio": "<base64>"}
  POST /analyze-binary-audio/  multipart form with an "audio" file
  GET  /metrics                Prometheus metrics

Configuration is read from --config (YAML) and AUDIOINFO_* environment
variables, which take precedence.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			log := logger.New(cfg.Log)
			log.Info("configuration loaded",
				"version", audioinfo.Version,
				"environment", cfg.Environment,
				"max_upload_size", cfg.MaxUploadSize)

			router := api.SetupRouter(cfg, log, prometheus.NewRegistry())
			srv := api.NewServer(cfg.Server.Address, router, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.ListenAndServe(ctx, srv, log)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&address, "address", "", "Listen address, overrides the configuration")
	return cmd
}
