package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "carcassonne/internal/api/http"
	"carcassonne/internal/api/ws"
	"carcassonne/internal/config"
	"carcassonne/internal/pkg/idgen"
	"carcassonne/internal/redis"
	"carcassonne/internal/relay"
	"carcassonne/internal/store"
)

var (
	httpAddr  string
	redisAddr string
	workers   int
	queueSize int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the relay server",
	Long: `Start the relay server. Rooms live in memory unless a Redis address is
given, in which case several instances can share them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (default from CARCASSONNE_ADDR)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for shared rooms")
	serverCmd.Flags().IntVar(&workers, "workers", 0, "request worker pool size")
	serverCmd.Flags().IntVar(&queueSize, "queue", 0, "request queue size")
}

// serverConfig applies the flags that were set on top of the environment.
func serverConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if cmd.Flags().Changed("addr") {
		cfg.Server.HTTPAddr = httpAddr
	}
	if cmd.Flags().Changed("redis") {
		cfg.Server.RedisAddr = redisAddr
	}
	if cmd.Flags().Changed("workers") {
		cfg.Server.WorkerPoolSize = workers
	}
	if cmd.Flags().Changed("queue") {
		cfg.Server.QueueSize = queueSize
	}
	return cfg
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	cfg := serverConfig(cmd)

	var (
		lobby       store.Store
		redisClient redis.Client
	)
	if cfg.Server.RedisAddr != "" {
		client, err := redis.NewClient(cfg.Server.RedisAddr, &redis.Options{PoolSize: cfg.Server.WorkerPoolSize * 2})
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis at %s unreachable: %w", cfg.Server.RedisAddr, err)
		}
		redisClient = client
		lobby, err = store.NewRedisStore(&store.RedisConfig{Client: client, Prefix: cfg.Server.RedisPrefix})
		if err != nil {
			return fmt.Errorf("failed to create lobby store: %w", err)
		}
		log.Printf("Using redis at %s for rooms", cfg.Server.RedisAddr)
	} else {
		lobby = store.NewMemoryStore()
	}

	hub, err := ws.NewHub(&ws.Config{
		Lobby:       lobby,
		IDs:         idgen.NewUUID("sub"),
		IdleTimeout: cfg.Server.IdleTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create hub: %w", err)
	}

	var publisher relay.Publisher = hub
	if redisClient != nil {
		redisCfg := &relay.RedisConfig{Client: redisClient, Prefix: cfg.Server.RedisPrefix}
		fanout, err := relay.NewRedisFanout(redisCfg, hub)
		if err != nil {
			return fmt.Errorf("failed to create fan-out: %w", err)
		}
		if _, err := fanout.Run(ctx); err != nil {
			return fmt.Errorf("failed to start fan-out: %w", err)
		}
		if publisher, err = relay.NewRedisPublisher(redisCfg); err != nil {
			return fmt.Errorf("failed to create publisher: %w", err)
		}
	}

	r, err := relay.New(&relay.Config{
		Store:     lobby,
		Publisher: publisher,
		Game:      cfg.Game,
		Workers:   cfg.Server.WorkerPoolSize,
		QueueSize: cfg.Server.QueueSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create relay: %w", err)
	}
	r.Start(ctx)
	hub.Bind(r)

	srv := &http.Server{
		Addr: cfg.Server.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Hub:       hub,
			Submitter: r,
			IDs:       idgen.NewUUID("conn"),
			Game:      cfg.Game,
		}),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			return srv.Close()
		}
		log.Println("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}
