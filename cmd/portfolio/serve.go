package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/handlers"
	"mukesh.dev/internal/services"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ServerAddr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := buildSite(cfg)
		if err != nil {
			return err
		}

		store, err := contact.Open(ctx, cfg.Contact.Driver, cfg.Contact.DSN)
		if err != nil {
			return fmt.Errorf("opening contact store: %w", err)
		}
		defer store.Close()

		router := handlers.SetupRoutes(cfg, handlers.Dependencies{
			Content:    s.content,
			Contact:    services.NewContactService(store),
			Background: s.background,
			Composer:   s.composer,
		})
		defer router.Close()

		srv := &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Info("portfolio server listening", "addr", cfg.ServerAddr, "contact_driver", cfg.Contact.Driver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server_addr)")
	rootCmd.AddCommand(serveCmd)
}
