package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stationops/roster-service/internal/api"
	"github.com/stationops/roster-service/internal/clients/idp"
	"github.com/stationops/roster-service/internal/identity"
	"github.com/stationops/roster-service/internal/repository"
	"github.com/stationops/roster-service/internal/service"
	"github.com/stationops/roster-service/pkg/broker"
	"github.com/stationops/roster-service/pkg/config"
	"github.com/stationops/roster-service/pkg/logger"
	"github.com/stationops/roster-service/pkg/postgres"
)

const (
	readTimeout       = 20 * time.Second
	writeTimeout      = 20 * time.Second
	readHeaderTimeout = time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	pg, err := postgres.NewManager(cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("configure postgres", err)

	err = pg.Connect(ctx)
	panicOnErr("connect to postgres", err)
	defer pg.Close()

	err = pg.UpMigrations()
	panicOnErr("up migrations", err)

	employees := repository.NewEmployeeRepository(pg.Pool())
	rbac := repository.NewRBACRepository(pg.Pool())

	provider := idp.NewClient(cfg.IdentityProvider)
	resolver := identity.NewResolver(employees, rbac)

	producer := broker.NewProducer(l, cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
	defer producer.Close()

	s := service.New(employees, rbac, producer)

	handler := api.NewHandler(s, pg)
	mw := api.NewMiddleware(cfg, provider, resolver)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		slog.InfoContext(ctx, "http server started", "port", cfg.HTTPPort, "tls", cfg.TLSEnabled())

		err := listenAndServe(server, cfg)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	waitSignal(cancel, server)
}

func listenAndServe(server *http.Server, cfg config.Config) error {
	if !cfg.TLSEnabled() {
		return server.ListenAndServe()
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if cfg.MTLSEnabled {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return fmt.Errorf("load CA cert: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return errors.New("failed to append CA cert to pool")
		}

		tlsConfig.ClientCAs = caCertPool
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	} else {
		tlsConfig.ClientAuth = tls.NoClientCert
	}

	server.TLSConfig = tlsConfig

	return server.ListenAndServeTLS(cfg.ServerCert, cfg.ServerKey)
}

func waitSignal(cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	slog.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		slog.ErrorContext(shutdownCtx, "server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
