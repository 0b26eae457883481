package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"github.com/padipay/qris-gateway/gateway"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout))

	cfg := gateway.DefaultConfig()
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.OrderKuota.BaseURL = getenv("ORDERKUOTA_BASE_URL", cfg.OrderKuota.BaseURL)
	cfg.OrderKuota.AppVersionName = getenv("ORDERKUOTA_APP_VERSION_NAME", cfg.OrderKuota.AppVersionName)
	cfg.OrderKuota.AppVersionCode = getenv("ORDERKUOTA_APP_VERSION_CODE", cfg.OrderKuota.AppVersionCode)
	cfg.OrderKuota.AppRegID = getenv("ORDERKUOTA_APP_REG_ID", cfg.OrderKuota.AppRegID)
	cfg.QiosPay.BaseURL = getenv("QIOSPAY_BASE_URL", cfg.QiosPay.BaseURL)
	cfg.Atlantic.BaseURL = getenv("ATLANTIC_BASE_URL", cfg.Atlantic.BaseURL)
	if v := os.Getenv("TRANSACTION_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid TRANSACTION_VALIDITY", "err", err)
			os.Exit(1)
		}
		cfg.TransactionValidity = d
	}

	app := gateway.NewApp(logger, cfg)
	if err := app.Start(); err != nil {
		logger.Error("starting app", "err", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	app.Shutdown()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
