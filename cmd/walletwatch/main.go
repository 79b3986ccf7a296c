package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/solwatch/walletwatch/internal/alerts"
	"github.com/solwatch/walletwatch/internal/config"
	"github.com/solwatch/walletwatch/internal/processor"
	"github.com/solwatch/walletwatch/internal/server"
	"github.com/solwatch/walletwatch/internal/watchlist"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	log.Info("Starting walletwatch service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	log.WithFields(logrus.Fields{
		"environment":      cfg.Environment,
		"watchlist_path":   cfg.WatchlistPath,
		"min_native_delta": cfg.MinNativeDelta,
		"cooldown_sec":     cfg.CooldownWindowSec,
		"alert_mode":       cfg.AlertMode,
	}).Info("Configuration loaded")

	// Load the watch list; a missing list at startup is fatal since no
	// filtering is meaningful without it.
	watch := watchlist.NewProvider(
		cfg.WatchlistPath,
		time.Duration(cfg.WatchlistRefreshSec)*time.Second,
		log,
	)
	if err := watch.Load(); err != nil {
		log.WithError(err).Fatal("Failed to load watch list")
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watch.Start(ctx)

	// Initialize alert sender
	sender := createAlertSender(cfg, log)
	log.WithField("alert_mode", cfg.AlertMode).Info("Alert sender initialized")

	// Initialize pipeline
	cooldown := processor.NewCooldownGate(cfg.CooldownWindowSec)
	proc := processor.New(cfg, watch, cooldown, sender, log)

	srv := server.New(cfg, proc, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Webhook server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
	cancel()
	log.Info("Graceful shutdown complete")
}

func createAlertSender(cfg *config.Config, log *logrus.Logger) alerts.Sender {
	var senders []alerts.Sender

	for _, mode := range strings.Split(cfg.AlertMode, ",") {
		switch strings.TrimSpace(mode) {
		case "log":
			senders = append(senders, alerts.NewLogSender(log))
		case "discord":
			if cfg.DiscordWebhookURL != "" {
				senders = append(senders, alerts.NewDiscordSender(cfg.DiscordWebhookURL, cfg.AlertSendRPS))
			} else {
				log.Warn("Discord mode specified but DISCORD_WEBHOOK_URL not set")
			}
		case "smtp":
			if cfg.SMTPHost != "" {
				senders = append(senders, alerts.NewSMTPSender(
					cfg.SMTPHost,
					cfg.SMTPPort,
					cfg.SMTPUser,
					cfg.SMTPPassword,
					cfg.SMTPFrom,
					cfg.SMTPTo,
				))
			} else {
				log.Warn("SMTP mode specified but SMTP_HOST not set")
			}
		default:
			log.WithField("mode", mode).Warn("Unknown alert mode, skipping")
		}
	}

	if len(senders) == 0 {
		log.Warn("No valid alert senders configured, using log")
		return alerts.NewLogSender(log)
	}
	if len(senders) == 1 {
		return senders[0]
	}
	return alerts.NewMultiSender(senders...)
}
