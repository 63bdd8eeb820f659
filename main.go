package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/soar/GamepadBridge/internal/config"
	"github.com/soar/GamepadBridge/internal/gamepad"
	"github.com/soar/GamepadBridge/internal/hub"
	"github.com/soar/GamepadBridge/internal/server"
	"github.com/soar/GamepadBridge/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Create the poll loop on the SDL driver
	poller := gamepad.NewPoller(gamepad.SDLDriver{}, cfg.Tick)

	// Create and start hub
	h := hub.NewHub()
	go h.Run()

	// Create broadcaster for the poller's outbound channels
	broadcaster := hub.NewBroadcaster(h, poller.Status(), poller.Buttons())
	go broadcaster.Run()

	// Create and start HTTP server
	frontendFS := getFrontendFS()
	srv := server.New(h, broadcaster, poller, frontendFS, cfg.Listen)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	log.Printf("GamepadBridge started: http://localhost%s", cfg.Listen)

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	// Initialize system tray on Windows only
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New("http://localhost"+cfg.Listen, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Run the poller in its own goroutine; it locks its OS thread for SDL.
	// A subsystem init failure is fatal to the feature and stops the process.
	pollerDone := make(chan struct{})
	pollerErrCh := make(chan error, 1)
	go func() {
		if err := poller.Run(ctx); err != nil {
			pollerErrCh <- err
		}
		close(pollerDone)
	}()

	// Wait for shutdown signal, tray request, or component error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
	case err := <-pollerErrCh:
		log.Printf("Gamepad poller error: %v", err)
		cancel()
	}

	// Wait for the poller to finish
	<-pollerDone

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("GamepadBridge stopped")
}
