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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/carprompt/carsearch/internal/config"
	"github.com/carprompt/carsearch/internal/db"
	dbMemory "github.com/carprompt/carsearch/internal/db/memory"
	dbRedis "github.com/carprompt/carsearch/internal/db/redis"
	"github.com/carprompt/carsearch/internal/domain"
	logpkg "github.com/carprompt/carsearch/internal/logger"
	"github.com/carprompt/carsearch/internal/metrics"
	"github.com/carprompt/carsearch/internal/repository/embcache"
	listingrepo "github.com/carprompt/carsearch/internal/repository/listing"
	searchlogrepo "github.com/carprompt/carsearch/internal/repository/searchlog"
	chiTransport "github.com/carprompt/carsearch/internal/transport/chi"
	mockai "github.com/carprompt/carsearch/internal/transport/mock"
	openaiTransport "github.com/carprompt/carsearch/internal/transport/openai"
	healthuc "github.com/carprompt/carsearch/internal/usecase/health"
	searchuc "github.com/carprompt/carsearch/internal/usecase/search"
	"github.com/carprompt/carsearch/internal/version"
)

const embeddingCacheTTL = 24 * time.Hour

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting carsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	store := buildStore(cfg, logger)
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterSearchMetrics()
	metrics.RegisterAIMetrics()

	parser, embedder, aiHealth := buildAIProvider(cfg, store, logger)

	listingRepo := listingrepo.New(store, cfg.Storage.KeyPrefix)
	searchLog := searchlogrepo.New(store, cfg.Storage.KeyPrefix)

	searchSvc, err := searchuc.New(listingRepo, parser, embedder, logger,
		searchuc.WithRecorder(searchLog),
		searchuc.WithPoolSize(cfg.Search.PoolSize),
	)
	if err != nil {
		logger.Fatal("Failed to create search service", zap.Error(err))
	}
	defer searchSvc.Release()

	healthSvc := healthuc.New(store, aiHealth)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

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

// buildStore creates the database store for the configured driver.
func buildStore(cfg config.Config, logger *zap.Logger) db.Store {
	switch cfg.Database.Driver {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		return store
	case "memory":
		return dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
		return nil
	}
}

// buildAIProvider assembles the parser and the embedder decorator chain:
// base provider -> cache -> instruction prefix. The cache sits inside the
// instruction decorator so the cache key includes the instruction.
func buildAIProvider(cfg config.Config, store db.Store, logger *zap.Logger) (
	searchuc.Parser, domain.Embedder, healthuc.AIChecker,
) {
	switch cfg.AI.Provider {
	case "openai":
		provCfg := &openaiTransport.Config{
			APIKey:     cfg.AI.APIKey,
			BaseURL:    cfg.AI.BaseURL,
			ParseModel: cfg.AI.ParseModel,
			EmbedModel: cfg.AI.EmbedModel,
			Dimensions: cfg.AI.Dimensions,
			Logger:     logger,
		}
		parser := openaiTransport.NewParser(provCfg)
		base := openaiTransport.NewEmbedder(provCfg)

		var embedder domain.Embedder = base
		if cfg.Search.CacheEmbeddings {
			embedder = embcache.New(base, store, cfg.Storage.KeyPrefix,
				embeddingCacheTTL, metrics.EmbeddingCacheTotal, logger)
		}
		if cfg.AI.QueryInstruction != "" {
			embedder = domain.NewInstructionEmbedder(embedder, cfg.AI.QueryInstruction)
		}
		return parser, embedder, base
	default:
		return mockai.NewParser(), mockai.NewEmbedder(cfg.AI.Dimensions), mockai.NewParser()
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain
// text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
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
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates
// X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
