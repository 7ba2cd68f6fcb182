package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stationops/roster-service/internal/clients/gomail"
	"github.com/stationops/roster-service/internal/events"
	"github.com/stationops/roster-service/internal/mailer"
	"github.com/stationops/roster-service/pkg/broker"
	"github.com/stationops/roster-service/pkg/config"
	"github.com/stationops/roster-service/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	gomailClient := gomail.New(cfg.Mailer)
	m := mailer.New(gomailClient)

	eventHandler := events.NewEventHandler(m)

	consumer := broker.NewConsumer(l, cfg.Kafka.Brokers, cfg.Kafka.ConsumerID, []string{cfg.Kafka.NotificationTopic})
	defer consumer.Close()

	consumer.Handle(cfg.Kafka.NotificationTopic, eventHandler.SendNotification)
	consumer.Consume(ctx)

	l.Info("notifier started", "topic", cfg.Kafka.NotificationTopic)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
