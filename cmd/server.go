package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneysupermarket/component-catalog/internal/server"
	"github.com/moneysupermarket/component-catalog/internal/web"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the catalog web app",
	Long:  `Starts the component catalog web app: component pages, the dependency graph and its live websocket view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort > 0 {
			cfg.Server.Port = serverPort
		}
		logger := newLogger(cfg)

		client, err := newCatalogClient(cfg)
		if err != nil {
			return fmt.Errorf("creating catalog client: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, logger)

		pages, err := web.New(client, web.Options{
			Selection:       selectionMode(cfg),
			Message:         cfg.Message,
			ServiceURL:      cfg.Service.ClientSideBaseURL,
			SessionLifetime: time.Duration(cfg.Server.SessionHours) * time.Hour,
			Logger:          logger,
		})
		if err != nil {
			return fmt.Errorf("creating web app: %w", err)
		}
		pages.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("catalog app starting",
			"port", cfg.Server.Port,
			"service", cfg.Service.ServerSideBaseURL,
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
