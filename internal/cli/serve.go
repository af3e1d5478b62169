package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vijayhiremath01/ChatBot/internal/adapters/filewatcher"
	"github.com/vijayhiremath01/ChatBot/internal/config"
	"github.com/vijayhiremath01/ChatBot/internal/domain/ports"
	"github.com/vijayhiremath01/ChatBot/internal/domain/usecases"
	server "github.com/vijayhiremath01/ChatBot/internal/infrastructure/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runServe(cmd.Context(), cfg, logger)
	},
}

func runServe(parent context.Context, cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.cleanup()

	srv := server.NewServer(svc.resolver, svc.gemini, cfg.Server.Addr, cfg.Server.StripMarkdown, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})

	if cfg.Knowledge.Watch && svc.source != nil {
		watcher, err := filewatcher.NewFSNotifyWatcher(logger)
		if err != nil {
			return err
		}
		defer watcher.Stop()

		events, err := watcher.Watch(ctx, cfg.Knowledge.Path)
		if err != nil {
			return err
		}
		g.Go(func() error {
			reloadOnChange(ctx, events, svc, logger)
			return nil
		})
	}

	return g.Wait()
}

// reloadOnChange rebuilds the index when the knowledge file changes and
// swaps it in atomically. In-flight requests keep the index they started
// with.
func reloadOnChange(ctx context.Context, events <-chan ports.FileEvent, svc *service, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Operation == ports.FileDeleted {
				logger.Warn("knowledge file removed, keeping last index", zap.String("path", event.Path))
				continue
			}
			data, err := svc.source.Load(ctx)
			if err != nil {
				logger.Warn("knowledge reload failed", zap.Error(err))
				continue
			}
			svc.holder.Swap(usecases.BuildIndex(data))
			logger.Info("knowledge base reloaded", zap.String("path", event.Path))
		}
	}
}
