package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mrbl-app/mrbl/internal/config"
	"github.com/mrbl-app/mrbl/internal/database"
	mrblHttp "github.com/mrbl-app/mrbl/internal/http"
	invoiceHandler "github.com/mrbl-app/mrbl/internal/http/invoice"
	orderHandler "github.com/mrbl-app/mrbl/internal/http/order"
	scanHandler "github.com/mrbl-app/mrbl/internal/http/scan"
	shopHandler "github.com/mrbl-app/mrbl/internal/http/shop"
	splitHandler "github.com/mrbl-app/mrbl/internal/http/split"
	"github.com/mrbl-app/mrbl/internal/invoice"
	invoiceStore "github.com/mrbl-app/mrbl/internal/invoice/store"
	"github.com/mrbl-app/mrbl/internal/order"
	orderStore "github.com/mrbl-app/mrbl/internal/order/store"
	"github.com/mrbl-app/mrbl/internal/scan"
	scanStore "github.com/mrbl-app/mrbl/internal/scan/store"
	"github.com/mrbl-app/mrbl/internal/shop"
	shopStore "github.com/mrbl-app/mrbl/internal/shop/store"
	"github.com/mrbl-app/mrbl/internal/split"
	splitStore "github.com/mrbl-app/mrbl/internal/split/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		orderService   = order.NewService(orderStore.New(db))
		scanService    = scan.NewService(scanStore.New(db))
		splitService   = split.NewService(splitStore.New(db))
		invoiceService = invoice.NewService(invoiceStore.New(db))
		shopService    = shop.NewService(shopStore.New(db))
	)

	var (
		orderH   = orderHandler.NewHandler(orderService, []byte(cfg.Label.Secret))
		scanH    = scanHandler.NewHandler(scanService)
		splitH   = splitHandler.NewHandler(splitService)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
		shopH    = shopHandler.NewHandler(shopService)
	)

	router := mrblHttp.New([]byte(cfg.Auth.JWTSecret), orderH, scanH, splitH, invoiceH, shopH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
