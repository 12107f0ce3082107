// Package main boots the inventory API simulator HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/inventory-admin-client/internal/config"
	"github.com/fairyhunter13/inventory-admin-client/internal/obs"
	"github.com/fairyhunter13/inventory-admin-client/internal/simulator"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("simulator_starting")

	data := simulator.NewDataset()
	seed(data)

	srv := &http.Server{
		Addr:              cfg.SimHTTPAddr,
		Handler:           simulator.NewServer(cfg, data).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.SimHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("simulator_stopped")
}

// seed loads a small recognizable dataset so the simulator is usable
// out of the box.
func seed(data *simulator.Dataset) {
	auto := data.AddCategory("Automotive")
	parts := data.AddVendor("AutoParts")
	speedy := data.AddVendor("Speedy Supplies")
	mat := data.AddProduct("Mat", auto.ID)
	wiper := data.AddProduct("Wiper Blade", auto.ID)
	data.AddVendorProduct(mat.ID, parts.ID, "AP-MAT-01",
		decimal.NewFromInt(300), decimal.NewFromInt(500), 15)
	data.AddVendorProduct(mat.ID, speedy.ID, "SS-MAT-44",
		decimal.NewFromInt(280), decimal.NewFromInt(480), 40)
	data.AddVendorProduct(wiper.ID, parts.ID, "AP-WPR-09",
		decimal.NewFromInt(120), decimal.NewFromInt(220), 8)
}
