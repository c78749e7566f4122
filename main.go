// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/modules/appconfig"
	"portfolio/modules/clock"
	"portfolio/modules/db"
	"portfolio/modules/db/postgres"
	"portfolio/modules/db/postgrest"
	"portfolio/modules/mailer"
	"portfolio/modules/middleware"
	"portfolio/modules/oapi"
	"portfolio/modules/server"
	"portfolio/modules/services"
	"portfolio/modules/telemetry"

	"portfolio/core/portfolio/adapters/mail"
	"portfolio/core/portfolio/adapters/persistence"
	"portfolio/core/portfolio/adapters/rest"
	"portfolio/core/portfolio/domain"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	healthcheckCmd = &cobra.Command{
		Use:   "healthcheck",
		Short: "Probe a running server's health endpoint",
		RunE:  runHealthcheck,
	}

	envFile string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment is parsed")
	rootCmd.AddCommand(serveCmd, healthcheckCmd)
	// bare invocation serves, so container images need no arguments
	rootCmd.RunE = runServe
}

func main() {
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// cancel the context when these signals occur
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.ErrorContext(ctx, "exiting", slog.Any("error", err))
		exitCode = 1
	}
}

func setupLogging(cfg *appconfig.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.IsProd() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h).With(slog.String("env", cfg.Env)))
}

// manual dependency injection, there's no need for DI frameworks like Fx or Wire
func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// --- application config ----
	appConfig, err := appconfig.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogging(appConfig)

	otelShutdown, err := telemetry.Init(ctx, appConfig.Otel)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if err := otelShutdown(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "telemetry shutdown error", slog.Any("error", err))
		}
	}()

	// --- infrastructure ---
	store, err := openStore(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() {
		if err := store.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "store shutdown error", slog.Any("error", err))
		}
	}()

	// an unreachable store at boot is logged, not fatal: /healthz reports it
	if err := store.HealthCheck(ctx); err != nil {
		slog.WarnContext(ctx, "store health check failed", slog.Any("error", err))
	}

	dispatcher, err := newDispatcher(appConfig)
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	dispatcher.Start()
	defer func() {
		dCtx, dCancel := context.WithTimeout(context.WithoutCancel(ctx), appConfig.HTTP.ShutdownTimeout)
		defer dCancel()
		if err := dispatcher.Shutdown(dCtx); err != nil {
			slog.ErrorContext(ctx, "mail dispatcher shutdown error", slog.Any("error", err))
		}
	}()

	// --- application layer ---
	app := domain.NewApp(persistence.NewStores(store), dispatcher, clock.RealClockProvider())

	portfolioSvc := services.NewPortfolioAPIService(
		rest.NewHandler(app, store),
		oapi.FS,
		oapi.PortfolioSpec,
		appConfig.APIPrefix,
	)

	httpMetrics, err := telemetry.NewHTTPMetrics(appConfig.Otel.ServiceName)
	if err != nil {
		slog.WarnContext(ctx, "failed to initialize HTTP metrics, continuing without metrics", slog.Any("error", err))
		httpMetrics = nil
	}

	globals := []func(http.Handler) http.Handler{middleware.Telemetry(httpMetrics)}
	if len(appConfig.CORSOrigins) > 0 {
		globals = append(globals, cors.New(cors.Options{
			AllowedOrigins:   appConfig.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler)
	}

	opts := []server.ServerOptions{
		server.WithReadTimeout(appConfig.HTTP.ReadTimeout),
		server.WithWriteTimeout(appConfig.HTTP.WriteTimeout),
		server.WithShutdownTimeout(appConfig.HTTP.ShutdownTimeout),
		server.WithServices(portfolioSvc),
		server.WithGlobalMiddlewares(globals...),
	}
	if !appConfig.Otel.Disabled {
		opts = append(opts, server.WithTracing(appConfig.Otel.ServiceName))
	}

	srv, err := server.New(appConfig.HTTP.Host, appConfig.HTTP.Port, opts...)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	return srv.Run(ctx)
}

func openStore(ctx context.Context, cfg *appconfig.Config) (db.Client, error) {
	switch cfg.Store.Driver {
	case appconfig.DriverPostgres:
		pool, err := postgres.New(ctx, &cfg.Postgres, postgres.PostgresOptions{
			// replicas usually sit behind Supavisor/PgBouncer in transaction mode
			ReaderOptions: []postgres.PgxConfigOption{
				postgres.WithPgBouncerSimpleProtocol(),
				postgres.WithApplicationName(cfg.Otel.ServiceName),
			},
			WriterOptions: []postgres.PgxConfigOption{
				postgres.WithApplicationName(cfg.Otel.ServiceName),
				postgres.WithStatementTimeout(cfg.Postgres.QueryTimeout),
			},
		})
		if err != nil {
			return nil, err
		}
		return pool, nil
	default:
		client, err := postgrest.New(cfg.Supabase)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func newDispatcher(cfg *appconfig.Config) (*mail.Dispatcher, error) {
	var sender mail.Sender = mailer.NewLogSender(slog.Default())
	if cfg.Mail.Enabled {
		smtp, err := mailer.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		sender = smtp
	}

	return mail.NewDispatcher(sender, mail.Config{
		QueueSize:   cfg.Mail.QueueSize,
		Workers:     cfg.Mail.Workers,
		SendTimeout: cfg.SMTP.Timeout,
		FromName:    cfg.Mail.FromName,
		FromAddress: cfg.Mail.FromAddress,
		Recipient:   cfg.Mail.Recipient,
		Live:        cfg.Mail.Enabled,
	}), nil
}

func runHealthcheck(cmd *cobra.Command, _ []string) error {
	appConfig, err := appconfig.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	host := appConfig.HTTP.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	svc := services.NewPortfolioAPIService(nil, oapi.FS, oapi.PortfolioSpec, appConfig.APIPrefix)
	url := fmt.Sprintf("http://%s:%d%s", host, appConfig.HTTP.Port, svc.HealthPath())

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: %s returned %d", url, resp.StatusCode)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
