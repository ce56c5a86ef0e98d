package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubadmin/internal/config"
	"clubadmin/internal/handlers"
	"clubadmin/internal/repository"
	"clubadmin/internal/server"
)

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)

	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("❌ Connection check failed: %v", err)
	}
	fmt.Println("🟢 All connections OK")

	h := handlers.New(cfg.Postgres, cfg.Mongo, cfg.S3)
	tokens := repository.NewAdminTokenRepository(cfg.Postgres)
	srv := server.NewServer(cfg.Port, h.Routes(tokens))

	log.Printf("[MAIN] listening on :%s", cfg.Port)
	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}
