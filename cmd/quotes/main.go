package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nordicstocks/internal/client"
	"nordicstocks/internal/config"
	"nordicstocks/internal/httpx"
)

func main() {
	var dateStr string
	var baseURL string
	var timeout int
	var compact bool
	var configPath string

	flag.StringVar(&dateStr, "date", "", "snapshot date as YYYY-MM-DD (default: latest)")
	flag.StringVar(&baseURL, "base-url", getenv("CDN_BASE_URL", ""), "snapshot CDN base URL")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 30), "request timeout seconds")
	flag.BoolVar(&compact, "compact", false, "print compact JSON instead of indented")
	flag.StringVar(&configPath, "config", getenv("CONFIG_PATH", "configs/config.yaml"), "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if baseURL == "" {
		baseURL = cfg.CDN.BaseURL
	}

	var at time.Time
	if dateStr != "" {
		at, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", dateStr, err)
		}
	}

	cl := client.New(
		client.WithBaseURL(baseURL),
		client.WithHTTPClient(httpx.New(time.Duration(timeout)*time.Second)),
		client.WithTTL(
			time.Duration(cfg.CDN.SharedTTLSec)*time.Second,
			time.Duration(cfg.CDN.LocalTTLSec)*time.Second,
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rows, err := cl.Quotes(ctx, at)
	if err != nil {
		log.Fatalf("quotes: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rows); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil && x > 0 {
			return x
		}
	}
	return def
}
