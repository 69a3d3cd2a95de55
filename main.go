package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/maxtech-api/initializers"
	"github.com/Kariqs/maxtech-api/middlewares"
	"github.com/Kariqs/maxtech-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	initializers.SetupLogger(initializers.Cfg.LogLevel, initializers.Cfg.Production())

	if err := initializers.ConnectToDB(); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := initializers.SyncDatabase(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	initializers.SetupServices(context.Background())
}

func main() {
	if initializers.Cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.Cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Register(server)

	srv := &http.Server{
		Addr:              ":" + initializers.Cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", initializers.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := initializers.Catalog.Close(); err != nil {
		slog.Warn("Cache close failed", "error", err)
	}
	slog.Info("Server exited gracefully.")
}
