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

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpserver "synxis_pms/internal/adapters/http_server"
	"synxis_pms/internal/adapters/observability"
	redisad "synxis_pms/internal/adapters/redis"
	"synxis_pms/internal/adapters/synxis"
	"synxis_pms/internal/app"
	"synxis_pms/internal/domain"
	"synxis_pms/internal/shared"
	"synxis_pms/internal/tools"
)

const (
	appName = "synxis-pms"
	version = "0.1.0"
)

func main() {
	root := &cobra.Command{
		Use:               appName,
		Short:             "MCP server exposing SynXis PMS hotel operations",
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.AddCommand(newServeCommand(), newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	}
}

func newServeCommand() *cobra.Command {
	var (
		useHTTP bool
		listen  string
		mock    bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if cmd.Flags().Changed("mock") {
				cfg.MockMode = mock
			}
			if listen == "" {
				listen = fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
			}
			return run(cmd.Context(), cfg, useHTTP, listen)
		},
	}
	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve MCP over streamable HTTP instead of stdio")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address for HTTP mode (default from SYNXIS_PMS_HTTP_HOST/PORT)")
	cmd.Flags().BoolVar(&mock, "mock", false, "serve generated data instead of calling the SynXis API")
	return cmd
}

func run(ctx context.Context, cfg shared.Settings, useHTTP bool, listen string) error {
	// Logs go to stderr; in stdio mode stdout belongs to the MCP transport.
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	logger := log.Logger

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backend domain.Backend
	if cfg.MockMode {
		logger.Info().Msg("mock mode: no requests leave the process")
		backend = synxis.NewMock(logger)
	} else {
		logger.Info().
			Str("base_url", cfg.BaseURL).
			Str("client_id", cfg.MaskedClientID()).
			Int("max_retries", cfg.MaxRetries).
			Msg("using SynXis remote backend")
		backend = synxis.NewRemote(cfg, logger)
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer func() { _ = rc.Close() }()
		cache = rc
		logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("redis cache enabled")
	}

	svc := app.NewPMSService(backend, cache, cfg.CacheTTL, logger)
	defer func() { _ = svc.Close() }()

	mcpSrv := server.NewMCPServer(appName, version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(mcpSrv, svc, logger)

	if !useHTTP {
		observability.Serve(cfg.MetricsAddr)
		logger.Info().Msg("serving MCP over stdio")
		return server.NewStdioServer(mcpSrv).Listen(ctx, os.Stdin, os.Stdout)
	}
	return serveHTTP(ctx, logger, mcpSrv, listen)
}

func serveHTTP(ctx context.Context, logger zerolog.Logger, mcpSrv *server.MCPServer, listen string) error {
	router := httpserver.New(logger)
	router.Mount("/metrics", observability.MetricsHandler(observability.InitRegistry()))
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv))

	srv := &http.Server{
		Addr:              listen,
		Handler:           router.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", listen).Msg("serving MCP over HTTP")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}
