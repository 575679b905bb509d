package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/service"
	"github.com/Jamolkhon5/sewing-assistant/internal/config"
	"github.com/Jamolkhon5/sewing-assistant/internal/handler"
	"github.com/Jamolkhon5/sewing-assistant/internal/health"
	"github.com/Jamolkhon5/sewing-assistant/internal/llm"
	"github.com/Jamolkhon5/sewing-assistant/internal/logger"
	"github.com/Jamolkhon5/sewing-assistant/internal/repository"
)

var envFile string

func main() {
	v := viper.New()

	rootCmd, err := newRootCmd(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "sewing-assistant",
		Short:         "Sewing assistant chat API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "path to the env file")
	rootCmd.Flags().String("port", "", "HTTP listen port (overrides PORT)")
	if err := v.BindPFlag("PORT", rootCmd.Flags().Lookup("port")); err != nil {
		return nil, fmt.Errorf("error binding port flag: %w", err)
	}
	return rootCmd, nil
}

func run(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.NewConfig(envFile, v)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	var completer llm.Completer
	if cfg.FallbackMode() {
		log.Warn("Upstream API key not set, answering from canned responses. Please add your API key to the .env file",
			zap.String("provider", cfg.Provider))
	} else {
		completer, err = llm.New(ctx, cfg.Provider, llm.Options{
			ApiKey:      cfg.ApiKey(),
			Model:       cfg.ModelName,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return err
		}
	}

	// Exchange log
	var recorder handler.ExchangeRecorder
	if cfg.DatabaseURL != "" {
		db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer db.Close()

		repo := repository.NewRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		recorder = repo
	}

	h := handler.NewHandler(service.NewFallbackResponder(), completer, recorder, log)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	var grpcSrv *health.Server
	if cfg.GrpcPort != "" {
		lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
		if err != nil {
			return fmt.Errorf("error listening on grpc port: %w", err)
		}
		grpcSrv = health.NewServer()
		go func() {
			if err := grpcSrv.Serve(lis); err != nil {
				log.Error("grpc health server stopped", zap.Error(err))
			}
		}()
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.Bool("fallback_mode", completer == nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if grpcSrv != nil {
		grpcSrv.Shutdown()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server exiting")
	return nil
}
