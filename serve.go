package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpLayer "loan-sip-planner/http"
	"loan-sip-planner/repository"
	"loan-sip-planner/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		if port > 0 {
			cfg.Server.Port = port
		}
		return runServer()
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
}

func runServer() error {
	cache, closeCache := newCache()
	defer closeCache()

	policy, err := cfg.Planner.Policy()
	if err != nil {
		return err
	}

	loanService := service.NewLoanService(cache)
	plannerService := service.NewPlannerService(cache, newGuidanceService(), policy)

	rateLimiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.RouterConfig{
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		httpLayer.NewLoanHandler(loanService),
		httpLayer.NewPlannerHandler(plannerService),
		rateLimiter,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s (freed payment: %s, timing: %s)", server.Addr, policy.FreedPayment, policy.Timing)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// newCache builds the configured cache. An unreachable Redis falls back to
// the in-memory cache.
func newCache() (repository.CacheRepository, func()) {
	if cfg.Cache.Driver == "redis" {
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := redisCache.Ping(ctx)
		if err == nil {
			return redisCache, func() { redisCache.Close() }
		}
		log.Printf("Warning: redis at %s unavailable, using memory cache: %v", cfg.Cache.RedisAddr, err)
		redisCache.Close()
	}
	return repository.NewMemoryCache(cfg.Cache.TTL), func() {}
}

func newGuidanceService() *service.GuidanceService {
	return service.NewGuidanceService(service.GuidanceConfig{
		APIKey:  cfg.LLM.APIKey,
		APIURL:  cfg.LLM.APIURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
}
