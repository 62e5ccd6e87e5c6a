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

	"go.uber.org/zap"

	"github.com/ByLCY/tm2label/api"
	"github.com/ByLCY/tm2label/api/handlers"
	"github.com/ByLCY/tm2label/internal/config"
	"github.com/ByLCY/tm2label/internal/logger"
	"github.com/ByLCY/tm2label/layout"
	canvasrenderer "github.com/ByLCY/tm2label/renderer/canvas"
)

func main() {
	// Parse command line flags
	cfg, err := config.ParseServerFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogFormat, "tm2label-server")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	if _, err := layout.LookupTape(cfg.DefaultTape); err != nil {
		l.Fatal("invalid default tape", zap.String("tape", cfg.DefaultTape), zap.Error(err))
	}

	r := canvasrenderer.NewRenderer(canvasrenderer.Options{
		FontDirs:    cfg.FontDirs,
		SystemFonts: cfg.SystemFonts,
	})
	h := handlers.NewHandler(layout.NewBuilder(nil), r, l, cfg.DefaultTape)

	// Setup HTTP router
	router := api.SetupRouter(h, l)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		l.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	// Handle shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		l.Error("error shutting down HTTP server", zap.Error(err))
	}
	l.Info("shutdown complete")
}
