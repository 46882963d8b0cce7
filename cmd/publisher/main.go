package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"nordicstocks/internal/config"
	"nordicstocks/internal/httpx"
	"nordicstocks/internal/provider"
	"nordicstocks/internal/provider/nasdaq"
	"nordicstocks/internal/provider/ratelimit"
	"nordicstocks/internal/recorder"
	"nordicstocks/internal/snapshot"
)

// browserUserAgent mirrors a desktop browser; the screener endpoint rejects
// obvious bot agents.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] nordicstocks publisher starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Transport: tuned client, browser-like headers, optional pacing
	httpClient := httpx.New(time.Duration(cfg.Source.TimeoutSec) * time.Second)
	httpClient.UserAgent = browserUserAgent
	httpClient.Headers = map[string]string{
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
	}
	var doer provider.Doer = httpClient
	if cfg.Source.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.Source.MaxRequestsPerMinute) / 60.0
		burst := cfg.Source.Burst
		if burst <= 0 {
			burst = 1
		}
		doer = &ratelimit.TokenBucketDoer{Next: doer, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.Source.MinRequestIntervalSec > 0 {
		interval := time.Duration(cfg.Source.MinRequestIntervalSec) * time.Second
		doer = &ratelimit.MinInterval{Next: doer, Interval: interval}
	}

	prov := nasdaq.New(nasdaq.Config{URL: cfg.Source.URL}, doer)
	log.Printf("[INFO] listing source: %s", prov.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	writer := snapshot.Writer{Dir: cfg.Output.Dir}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[WARN] shutdown signal received, cancelling...")
		cancel()
	}()

	// One-shot mode when no cron schedule is configured
	if cfg.Schedule.PublishCron == "" {
		if err := publishOnce(ctx, prov, writer, rec); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("[WARN] publish cancelled")
				os.Exit(1)
			}
			log.Fatalf("[FATAL] publish: %v", err)
		}
		return
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Schedule.PublishCron, func() {
		if err := publishOnce(ctx, prov, writer, rec); err != nil {
			log.Printf("[ERROR] publish: %v", err)
		}
	}); err != nil {
		log.Fatalf("[FATAL] register publish task: %v", err)
	}
	c.Start()
	defer c.Stop()
	log.Printf("[INFO] scheduler started: %s", cfg.Schedule.PublishCron)

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, publishing now")
		go func() {
			if err := publishOnce(ctx, prov, writer, rec); err != nil {
				log.Printf("[ERROR] publish: %v", err)
			}
		}()
	}

	<-ctx.Done()
	log.Println("[INFO] publisher stopped")
}

func publishOnce(ctx context.Context, prov provider.Provider, w snapshot.Writer, rec recorder.Recorder) error {
	start := time.Now()

	rows, err := prov.Fetch(ctx)
	if err != nil {
		return err
	}
	log.Printf("[INFO] fetched %d stocks", len(rows))

	date := time.Now().UTC()
	latestPath, datedPath, err := w.Write(rows, date)
	if err != nil {
		return err
	}
	log.Printf("[INFO] stock data written to: %s", latestPath)
	log.Printf("[INFO] stock data written to: %s", datedPath)

	if err := rec.RecordPublish(&recorder.PublishRun{
		Date:       date.Format("2006-01-02"),
		Source:     prov.Name(),
		StockCount: len(rows),
		Duration:   time.Since(start),
	}); err != nil {
		log.Printf("[ERROR] record publish: %v", err)
	}

	log.Printf("[INFO] successfully published %d stocks for %s", len(rows), date.Format("2006-01-02"))
	return nil
}
