package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	router "twitchrelay/internal/app/adapters/http"
	"twitchrelay/internal/app/adapters/twitch/irc"
	"twitchrelay/internal/app/infrastructure/config"
	"twitchrelay/pkg/logger"
)

const configPath = "config.json"

// New wires the process together and blocks until a shutdown signal arrives.
// Configuration errors are fatal here, before any network activity.
func New() error {
	log := logger.New()

	manager, err := config.New(configPath)
	if err != nil {
		return err
	}

	cfg := manager.Get()
	log.SetLogLevel(cfg.App.LogLevel)

	botLog := logger.NewPrefixedLogger(log, cfg.App.Username)
	client := irc.NewClient(botLog, cfg)

	// The message handler is the only business hook; everything above the
	// connection lifecycle plugs in here.
	sup := irc.NewSupervisor(botLog, cfg, client, func(channel, username, text string) {
		botLog.Debug("relayed chat message",
			slog.String("channel", channel),
			slog.String("username", username),
			slog.String("text", text))
	})

	r := router.NewRouter(log, manager, sup)
	go func() {
		if err := r.Run(); err != nil {
			log.Error("http server stopped", err)
		}
	}()

	go sup.Run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutdown signal received")
	sup.Stop()
	<-sup.Done()

	log.Info("bot stopped")
	return nil
}
