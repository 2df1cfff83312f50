package main

import (
	"context"
	"fmt"
	"market-hub/auth"
	"market-hub/infrastructure/httpapi"
	"market-hub/infrastructure/ws"
	"market-hub/internal"
	"market-hub/observability"
	"market-hub/runtime"
	"market-hub/runtime/workers"
	"market-hub/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Core realtime components
	registry := runtime.NewRegistry()
	broadcaster := runtime.NewBroadcaster(log, registry, config.SinkTimeout)
	debouncer := runtime.NewDebouncer(config.MonitoringEnabled(), config.MonitoringMinInterval())
	stats := observability.NewHubStats()

	// 3. Session authority & routers
	tokens := auth.NewTokens(config.JWTSecret)
	authority := auth.NewSessionAuthority(tokens, log)
	chatRouter := services.NewChatRouter(log, registry, broadcaster)
	notificationRouter := services.NewNotificationRouter(log, registry, broadcaster)
	monitoringRouter := services.NewMonitoringRouter(log, registry, broadcaster, debouncer)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewReporter(log, registry, stats, config.ReportInterval))
	go sup.Run(ctx)

	// 6. HTTP surface
	opts := ws.Options{
		ConnectionBufferSize: config.ConnectionBufferSize,
		InboundRatePerSecond: config.InboundRatePerSecond,
		InboundBurst:         config.InboundBurst,
	}
	mux := http.NewServeMux()
	mux.Handle("/ws/chat", ws.NewChatEndpoint(log, authority, registry, stats, chatRouter, opts))
	mux.Handle("/ws/notifications", ws.NewNotificationsEndpoint(log, authority, registry, stats, notificationRouter, opts))
	mux.Handle("/ws/monitoring", ws.NewMonitoringEndpoint(log, authority, registry, stats, monitoringRouter, opts))
	mux.HandleFunc("/api/monitoring/notify", httpapi.NotifyHandler(log, monitoringRouter))
	mux.HandleFunc("/api/stats", httpapi.StatsHandler(registry, stats))

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{Addr: address, Handler: mux}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting realtime hub server", "address", address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Forced shutdown", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
