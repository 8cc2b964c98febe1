package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/samandr77/docflow/internal/clients/docflow"
	"github.com/samandr77/docflow/internal/notify"
	"github.com/samandr77/docflow/internal/service"
	"github.com/samandr77/docflow/internal/session"
	"github.com/samandr77/docflow/internal/ui"
	"github.com/samandr77/docflow/pkg/config"
	"github.com/samandr77/docflow/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	err = os.MkdirAll(filepath.Dir(cfg.Logger.File), 0o700)
	panicOnErr("create log dir", err)

	logFile, err := os.OpenFile(cfg.Logger.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	panicOnErr("open log file", err)

	defer logFile.Close()

	l, err := logger.New(cfg.Logger.Level, logFile)
	panicOnErr("create logger", err)

	slog.SetDefault(l)

	sessions, err := session.NewManager(session.NewFileStore(cfg.Session.File))
	panicOnErr("load session", err)

	client := docflow.New(cfg.API, sessions)

	svc := service.New(service.Deps{
		Auth:      client,
		Documents: client,
		Approvals: client,
		Users:     client,
		Alerts:    client,
		Sessions:  sessions,
	}, cfg.Polling)

	term := ui.NewTerminal(os.Stdout)
	console := ui.NewConsole(os.Stdin, term)

	if cfg.Kafka.Enabled() {
		ch := notify.New(ctx, notify.NewKafkaTransport(cfg.Kafka), term)
		unbind := ch.Bind(sessions)

		defer ch.Close()
		defer unbind()
	} else {
		l.Info("push notifications disabled, no kafka brokers configured")
	}

	h := ui.NewHandler(svc, sessions, term, console)
	mw := ui.NewMiddleware(sessions)
	nav := ui.NewNavigator(ui.NewRouter(h, mw), term)

	l.Info("docflow started", "api", cfg.API.BaseURL)

	err = ui.NewApp(nav, console, term, sessions).Run(ctx)
	if err != nil {
		l.Error("app stopped", "error", err)
	}

	l.Info("docflow stopped")
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
