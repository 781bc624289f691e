package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"veneya/controllers"
	"veneya/routes"
	"veneya/store"
	"veneya/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the vendor HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	s, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tokens := utils.NewTokenIssuer(opts.cfg.Auth.JWTSecret, opts.cfg.TokenTTLDuration())
	h := controllers.NewHandler(s, tokens, store.GridResolver{Decimals: store.DefaultZoneDecimals}, opts.logger)
	app := routes.NewApp(opts.cfg.Server, h, tokens, opts.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts.logger.Info("listening", zap.String("addr", opts.cfg.Server.ListenAddr))
		return app.Listen(opts.cfg.Server.ListenAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		opts.logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	return g.Wait()
}
