// Copyright (c) 2026, Ghostcrypt Labs
// SPDX-License-Identifier: BSD-3-Clause

// Command tfhe-worker runs boolean-gate evaluation workers.
//
// The worker never sees a secret key: it loads a client-generated
// bootstrap key and evaluates gate jobs from the queue, refreshing
// every result by bootstrapping.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghostcrypt/tfhe"
	"github.com/ghostcrypt/tfhe/internal/queue"
	"github.com/ghostcrypt/tfhe/internal/storage"
	"github.com/ghostcrypt/tfhe/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		numWorkers = flag.Int("workers", 4, "number of worker goroutines")
		redisAddr  = flag.String("redis", "localhost:6379", "Redis address")
		redisDB    = flag.Int("redis-db", 0, "Redis database number")
		prefix     = flag.String("prefix", "tfhe", "Redis key prefix")
		storageDir = flag.String("storage", "", "ciphertext storage directory (empty: store blobs in Redis)")
		bskPath    = flag.String("bsk", "bootstrap.key", "serialized bootstrap key")
		paramsName = flag.String("params", "boolean128", "parameter preset (boolean128, boolean-test)")
		healthAddr = flag.String("health", ":9090", "health/metrics listen address")
		jobTTL     = flag.Duration("job-ttl", 24*time.Hour, "retention of finished jobs and blobs")
	)
	flag.Parse()

	params, err := lookupParams(*paramsName)
	if err != nil {
		return err
	}

	bskData, err := os.ReadFile(*bskPath)
	if err != nil {
		return fmt.Errorf("read bootstrap key: %w", err)
	}
	bsk, err := tfhe.ReadBootstrapKey(bskData, params)
	if err != nil {
		return fmt.Errorf("parse bootstrap key: %w", err)
	}

	redisCfg := storage.RedisConfig{Addr: *redisAddr, DB: *redisDB}

	var store storage.Storage
	if *storageDir != "" {
		store, err = storage.NewFileStorage(*storageDir)
	} else {
		store, err = storage.NewRedisStorage(redisCfg, *prefix, *jobTTL)
	}
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()

	q, err := queue.NewRedisQueue(redisCfg, *prefix, *jobTTL)
	if err != nil {
		return fmt.Errorf("create queue: %w", err)
	}
	defer q.Close()

	pool, err := server.NewPool(server.Config{
		NumWorkers: *numWorkers,
		Queue:      q,
		Storage:    store,
	}, bsk)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Printf("starting %d workers (params=%s, redis=%s)", *numWorkers, *paramsName, *redisAddr)
	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("start workers: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		ok, failed := pool.Counts()
		fmt.Fprintf(w, "# HELP tfhe_gates_total Total gate evaluations\n")
		fmt.Fprintf(w, "# TYPE tfhe_gates_total counter\n")
		fmt.Fprintf(w, "tfhe_gates_total{status=\"success\"} %d\n", ok)
		fmt.Fprintf(w, "tfhe_gates_total{status=\"failure\"} %d\n", failed)
	})
	httpSrv := &http.Server{Addr: *healthAddr, Handler: mux}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("health server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("health server shutdown: %v", err)
	}
	if err := pool.Stop(); err != nil {
		return err
	}
	log.Println("shutdown complete")
	return nil
}

func lookupParams(name string) (tfhe.Parameters, error) {
	switch name {
	case "boolean128":
		return tfhe.NewParametersFromLiteral(tfhe.ParamsBoolean128)
	case "boolean-test":
		return tfhe.NewParametersFromLiteral(tfhe.ParamsBooleanTest)
	}
	return tfhe.Parameters{}, fmt.Errorf("unknown parameter preset %q", name)
}
