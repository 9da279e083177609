package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/api"
	"github.com/Veraticus/robux-must-flow/internal/config"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve your spending analytics as a local JSON API",
		Long: `Serve starts an HTTP API on 127.0.0.1 for a web dashboard. The history is
fetched on the first request and cached for cache.ttl; POST /api/refresh
fetches it again.`,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	_ = viper.BindPFlag(config.KeyServerPort, cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	sess, err := sessionFactory(settings, slog.Default(), nil)
	if err != nil {
		return err
	}

	server := api.NewServer(sess, api.Config{
		AllowedOrigins: settings.Server.AllowedOrigins,
		Port:           settings.Server.Port,
		ForecastMonths: settings.Forecast,
	}, slog.Default())

	return server.Run(cmd.Context())
}
