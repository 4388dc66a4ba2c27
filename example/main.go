package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/fetchcache/pkg/httpclient"
	"github.com/dmitrymomot/fetchcache/pkg/logger"
	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

// Fetches every path given on the command line twice through one client
// and prints the cache stats. Config comes from the YAML file named by
// FETCHCACHE_CONFIG, or from FETCH_BASE_URL.
func main() {
	ctx := context.Background()

	log := logger.NewWithConfig(logger.Config{
		Level:             slog.LevelDebug,
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "development"),
		SentryMinLevel:    slog.LevelWarn,
	}, logger.RequestIDExtractor)

	cfg, err := loadConfig()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := httpclient.NewFromConfig(cfg,
		httpclient.WithLogger(log),
		httpclient.WithCacheOptions(reqcache.WithEvictCallback(func(key string, reason reqcache.EvictReason) {
			log.Info("cache entry removed", "key", key, "reason", reason.String())
		})),
	)
	if err != nil {
		log.Error("failed to create client", "error", err)
		os.Exit(1)
	}

	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	if err := client.Prefetch(ctx, paths...); err != nil {
		log.Warn("prefetch failed", "error", err)
	}

	for _, path := range paths {
		body, err := httpclient.Get[string](ctx, client, path,
			httpclient.WithResponseType(httpclient.ResponseText),
			httpclient.WithTTL(time.Minute),
		)
		if err != nil {
			code, _ := httpclient.StatusCode(err)
			log.Error("fetch failed", "path", path, "status", code, "error", err)
			continue
		}
		log.Info("fetched", "path", path, "bytes", len(body))
	}

	stats := client.Stats()
	_ = json.NewEncoder(os.Stdout).Encode(map[string]any{
		"count":   stats.Count,
		"metrics": stats.Metrics,
	})
}

func loadConfig() (httpclient.Config, error) {
	if path := os.Getenv("FETCHCACHE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return httpclient.Config{}, err
		}
		return httpclient.ParseConfig(data)
	}

	cfg := httpclient.DefaultConfig()
	cfg.BaseURL = getEnv("FETCH_BASE_URL", "https://httpbin.org")
	cfg.Cache.DefaultTTL = 30 * time.Second
	return cfg, nil
}

// getEnv returns environment variable value or default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
