package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Voltaic314/ShelfDB/api"
	"github.com/Voltaic314/ShelfDB/auth"
	"github.com/Voltaic314/ShelfDB/config"
	"github.com/Voltaic314/ShelfDB/directory"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/Voltaic314/ShelfDB/tenant"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newServeCommand(v *viper.Viper, load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer log.Sync()
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().String("http-address", "127.0.0.1", "address to listen on")
	cmd.Flags().Int("http-port", 5000, "port to listen on")
	cmd.Flags().String("jwt-secret", "", "HS256 signing secret for access tokens")
	mustBind(v, "http.address", cmd.Flags().Lookup("http-address"))
	mustBind(v, "http.port", cmd.Flags().Lookup("http-port"))
	mustBind(v, "auth.jwt_secret", cmd.Flags().Lookup("jwt-secret"))
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("auth: %w (set auth.jwt_secret or SHELFDB_AUTH_JWT_SECRET)", err)
	}

	dir, err := directory.Open(ctx, cfg.DirectoryPath(), log)
	if err != nil {
		return err
	}
	defer dir.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tenants, err := tenant.NewRouter(cfg.TenantsDir(), dir, log, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := tenants.Close(); err != nil {
			log.Warn("closing tenant backends", zap.Error(err))
		}
	}()

	server := api.NewShelfDBServer(api.Options{Addr: cfg.Addr(), CookieName: cfg.Auth.CookieName},
		tenants, dir, auth.NewService(dir, issuer, log), m, reg, log)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
