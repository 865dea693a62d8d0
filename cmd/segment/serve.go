package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/drakos74/free-segment/infra/config"
	"github.com/drakos74/free-segment/internal/metrics"
	"github.com/drakos74/free-segment/internal/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve clustering requests over http",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.DefaultService()
			if err := config.Load(file, &svc); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, svc)
		},
	}
	cmd.Flags().StringVarP(&file, "config", "c", filepath.Join("infra", "config", "segment.yaml"), "service configuration file")
	return cmd
}

func serve(ctx context.Context, svc config.Service) error {
	seg := server.NewSegmentation(svc.Defaults, svc.MinSamples)
	srv := server.NewServer(svc.Name, svc.Port).
		WithTimeout(svc.Timeout).
		WithMaxBytes(svc.MaxRequestBytes)
	if svc.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		seg.Debug()
		srv.Debug()
	}
	if svc.Storage.Enabled {
		store, registry, err := persistence(svc.Storage.Dir)
		if err != nil {
			return err
		}
		seg.WithStorage(store, registry)
		log.Info().Str("dir", svc.Storage.Dir).Msg("persisting reports")
	}
	return srv.
		Add(server.Live()).
		Add(seg.Routes()...).
		Mount(server.Metrics, metrics.Handler()).
		Run(ctx)
}
