package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secure-acceptance-gateway/config"
	httpHandler "secure-acceptance-gateway/internal/adapter/http/handler"
	pgStorage "secure-acceptance-gateway/internal/adapter/storage/postgres"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server.

SIGHUP reloads the configuration file; connection settings (database, redis,
server address) keep their startup values until the next restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			log.Info().
				Str("mode", cfg.Server.Mode).
				Int("port", cfg.Server.Port).
				Str("version", Version).
				Msg("Starting Secure Acceptance gateway")

			ctx := cmd.Context()
			a, err := buildApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrate {
				if err := pgStorage.Migrate(ctx, a.pool, log); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
			}

			router := httpHandler.SetupRouter(httpHandler.RouterDeps{
				AuthSvc:        a.authSvc,
				TokenSvc:       a.tokenSvc,
				ProfileSvc:     a.profileSvc,
				LedgerSvc:      a.ledgerSvc,
				CheckoutSvc:    a.checkoutSvc,
				ReplySvc:       a.replySvc,
				DecisionSvc:    a.decisionSvc,
				PaymentStates:  a.paymentStates,
				Fingerprint:    a.fingerprint,
				RateLimitStore: a.rateLimits,
				HealthCheckers: a.health,
				AuditSvc:       a.auditSvc,
				MetricsEnabled: cfg.Metrics.Enabled,
				Mode:           cfg.Server.Mode,
				Logger:         log,
			})

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("HTTP server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
			defer signal.Stop(sig)

		loop:
			for {
				select {
				case err := <-errCh:
					return fmt.Errorf("http server: %w", err)
				case s := <-sig:
					if s != syscall.SIGHUP {
						break loop
					}
					next, err := config.Load(configPath)
					if err != nil {
						log.Error().Err(err).Msg("config reload failed, keeping current configuration")
						continue
					}
					a.cfg.Reload(next)
					log.Info().Msg("configuration reloaded")
				}
			}

			log.Info().Msg("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Server forced to shutdown")
			}
			log.Info().Msg("Server exited")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")
	return cmd
}
