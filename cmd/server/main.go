// @title Task Manager API
// @version 1.0
// @description Accounts, sessions, projects and tasks.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prperemyshlev/task-manager/internal/app"
	"github.com/prperemyshlev/task-manager/internal/config"
	"go.uber.org/zap"
)

const defaultEnvFile = ".env"

func main() {
	envFile := flag.String("env", defaultEnvFile, "Path to env file")
	flag.Parse()

	// A missing default file is fine, a missing explicit one is not.
	if err := godotenv.Load(*envFile); err != nil {
		if *envFile != defaultEnvFile {
			log.Fatalf("Failed to load env file %s: %v", *envFile, err)
		}
		log.Printf("Warning: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	infra, err := app.NewInfrastructure(ctx, *cfg)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}

	application, err := app.NewApp(infra, cfg)
	if err != nil {
		_ = infra.Shutdown(ctx)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		infra.Logger().Info("Received shutdown signal")
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		infra.Logger().Fatal("Application failed", zap.Error(err))
	}
}
