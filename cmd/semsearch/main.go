package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/soko-cloud/semsearch/internal/config"
	dbRedis "github.com/soko-cloud/semsearch/internal/db/redis"
	"github.com/soko-cloud/semsearch/internal/encoder"
	logpkg "github.com/soko-cloud/semsearch/internal/logger"
	"github.com/soko-cloud/semsearch/internal/metrics"
	itemrepo "github.com/soko-cloud/semsearch/internal/repository/item"
	taxonomyrepo "github.com/soko-cloud/semsearch/internal/repository/taxonomy"
	vectorrepo "github.com/soko-cloud/semsearch/internal/repository/vector"
	chiTransport "github.com/soko-cloud/semsearch/internal/transport/chi"
	openaiChat "github.com/soko-cloud/semsearch/internal/transport/openai"
	assistuc "github.com/soko-cloud/semsearch/internal/usecase/assist"
	cataloguc "github.com/soko-cloud/semsearch/internal/usecase/catalog"
	healthuc "github.com/soko-cloud/semsearch/internal/usecase/health"
	recommenduc "github.com/soko-cloud/semsearch/internal/usecase/recommend"
	searchuc "github.com/soko-cloud/semsearch/internal/usecase/search"
	"github.com/soko-cloud/semsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting semsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEncoderMetrics()
	metrics.RegisterAgentMetrics()

	// Load the encoder artifact once; weights are read-only for the process
	// lifetime and safe to share across concurrent inferences.
	artifact, err := encoder.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		logger.Fatal("Failed to load model artifact", zap.String("path", cfg.Model.ArtifactPath), zap.Error(err))
	}
	model := encoder.NewModel(artifact)
	pool := encoder.NewPool(model, cfg.Model.PoolSize, logger)
	logger.Info("Encoder loaded",
		zap.String("artifact", cfg.Model.ArtifactPath),
		zap.Int("dim", pool.Dim()),
		zap.Int("pool_size", cfg.Model.PoolSize),
	)

	// Repositories
	items := itemrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix)
	vectors := vectorrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix)
	taxonomy := taxonomyrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix)

	// Reasoning service client
	chat := openaiChat.NewChat(&openaiChat.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Use case services
	catalogSvc := cataloguc.New(taxonomy, taxonomy)
	searchSvc := searchuc.New(vectors, items, pool)
	recommendSvc := recommenduc.New(vectors, items)
	assistSvc := assistuc.New(chat, catalogSvc, pool, vectors, items, logger).
		WithMaxTurns(cfg.Agent.MaxTurns).
		WithRequestTimeout(time.Duration(cfg.Agent.RequestTimeoutSec) * time.Second)
	healthSvc := healthuc.New(store, pool)

	server := chiTransport.NewServer(searchSvc, recommendSvc, assistSvc, healthSvc)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer converts handler panics into a JSON 500 so clients never
// see a plain-text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				logger.Error("panic recovered",
					zap.Any("panic", rvr),
					zap.Stack("stacktrace"),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "internal_error",
					"message": "internal error",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware logs one canonical line per request and echoes the
// request id back in X-Request-ID. The request-scoped logger is placed in
// the context for downstream handlers.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ToContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
