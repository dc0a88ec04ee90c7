package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anditri/warungpos/internal/config"
	"github.com/anditri/warungpos/internal/events"
	kafkax "github.com/anditri/warungpos/internal/kafka"
	"github.com/anditri/warungpos/internal/redisx"
	"github.com/anditri/warungpos/internal/report"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &report.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-reporter",
	}

	group := getenv("REPORTER_GROUP", "pos-reporter")
	workers := mustAtoi(os.Getenv("REPORTER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, events.TopicTransactionCreated, workers)

	go func() {
		log.Printf("reporter consumer started: group=%s topic=%s workers=%d", group, events.TopicTransactionCreated, workers)
		if err := cons.Start(ctx, svc.HandleTransactionCreated); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
