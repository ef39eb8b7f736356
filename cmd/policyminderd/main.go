package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zombiezen.com/go/log"

	"github.com/agentdesk/policyminder/config"
	"github.com/agentdesk/policyminder/metrics"
	"github.com/agentdesk/policyminder/notify"
	"github.com/agentdesk/policyminder/records"
	"github.com/agentdesk/policyminder/service"
	"github.com/agentdesk/policyminder/storage"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log.Infof(ctx, "policyminderd starting up...")
	log.Infof(ctx, "PORT: %s", cfg.Port)
	log.Infof(ctx, "METRICS_PORT: %d", cfg.MetricsPort)
	log.Infof(ctx, "STORE_BACKEND: %s", cfg.StoreBackend)
	log.Infof(ctx, "REMINDER_CRON: %s", cfg.ReminderCron)

	store, err := openStore(cfg)
	if err != nil {
		log.Errorf(ctx, "unable to open store: %v", err)
		os.Exit(-1)
	}

	metricsRegistry := metrics.NewMetricRegistry(cfg.MetricsPort)
	registry := records.NewRegistry(ctx, records.RegistryConfig{
		Store:           store,
		MetricsRegistry: metricsRegistry,
	})

	notifier := notify.NewNotifier(ctx, notify.NotifierConfig{
		Registry:        registry,
		Sender:          newSender(ctx, cfg),
		MetricsRegistry: metricsRegistry,
		CronSpec:        cfg.ReminderCron,
		Location:        cfg.LocalTimezone,
	})
	if err := notifier.Start(); err != nil {
		log.Errorf(ctx, "unable to start notifier: %v", err)
		os.Exit(-1)
	}

	go func() {
		if err := metricsRegistry.Serve(); err != nil {
			log.Warnf(ctx, "metrics server stopped: %v", err)
		}
	}()

	apiServer := service.NewServer(ctx, registry, metricsRegistry)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Router(),
	}

	go func() {
		log.Infof(ctx, "API listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf(ctx, "API server error: %v", err)
			os.Exit(-1)
		}
	}()

	waitForShutdown(ctx, httpServer, notifier)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return storage.NewRedisStore(cfg.RedisHostPort), nil
	case "memory":
		return storage.NewMemoryStore(), nil
	case "postgres":
		return storage.NewDatabaseStore(cfg.DatabaseURL, cfg.SQLitePath)
	default:
		return storage.NewDatabaseStore("", cfg.SQLitePath)
	}
}

func newSender(ctx context.Context, cfg *config.Config) notify.Sender {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioWhatsAppNumber != "" {
		log.Infof(ctx, "reminder delivery via Twilio WhatsApp")
		return notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
	}
	log.Infof(ctx, "no Twilio credentials, reminders will be logged only")
	return notify.NewLogSender(ctx)
}

func waitForShutdown(ctx context.Context, server *http.Server, notifier *notify.Notifier) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Infof(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf(ctx, "API shutdown error: %v", err)
	}
	notifier.Stop()
}
