package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/spacesync-dev/spacesync/pkg/cli/config"
	controller "github.com/spacesync-dev/spacesync/pkg/controller/http"
	"github.com/spacesync-dev/spacesync/pkg/domain/interfaces"
	"github.com/spacesync-dev/spacesync/pkg/domain/types"
	"github.com/spacesync-dev/spacesync/pkg/infra/gitrepo"
	"github.com/spacesync-dev/spacesync/pkg/infra/notify"
	"github.com/spacesync-dev/spacesync/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		mirrorsCfg config.Mirrors
		engineCfg  config.Engine
		githubCfg  config.GitHub
		hfCfg      config.HuggingFace
		slackCfg   config.Slack
		sentryCfg  config.Sentry
	)

	flags := serverCfg.Flags()
	flags = append(flags, mirrorsCfg.Flags()...)
	flags = append(flags, engineCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, githubCfg.WebhookFlags()...)
	flags = append(flags, hfCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			mirrors, err := mirrorsCfg.Load()
			if err != nil {
				return err
			}

			logger.Info("Starting spacesync server",
				slog.String("addr", serverCfg.Addr),
				slog.Int("mirrors", len(mirrors)),
				slog.Duration("sync_interval", serverCfg.SyncInterval),
			)

			engine := gitrepo.New(engineCfg.CacheDir,
				gitrepo.WithGitHubToken(githubCfg.Token),
				gitrepo.WithHubToken(hfCfg.Token),
			)
			syncUC := usecase.NewSync(engine, mirrors,
				usecase.WithNotifier(notify.NewSlack(slackCfg.WebhookURL)),
			)
			webhookUC := usecase.NewWebhook(syncUC, mirrors)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			if serverCfg.SyncInterval > 0 {
				go scheduleLoop(runCtx, syncUC, serverCfg.SyncInterval)
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// scheduleLoop re-syncs all mirrors on a fixed interval so the hub
// converges even when webhook deliveries are lost.
func scheduleLoop(ctx context.Context, syncUC interfaces.SyncUseCase, interval time.Duration) {
	logger := ctxlog.From(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := syncUC.SyncAll(ctx, types.TriggerSchedule); err != nil {
				logger.Error("scheduled sync failed", slog.Any("error", err))
			}
		}
	}
}
