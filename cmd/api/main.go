package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/anditri/warungpos/internal/config"
	"github.com/anditri/warungpos/internal/events"
	"github.com/anditri/warungpos/internal/httpx"
	kafkax "github.com/anditri/warungpos/internal/kafka"
	"github.com/anditri/warungpos/internal/pos"
	"github.com/anditri/warungpos/internal/postgres"
	"github.com/anditri/warungpos/internal/redisx"
	"github.com/anditri/warungpos/internal/report"
	"github.com/anditri/warungpos/internal/syncx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cloud persistence + outbound sync queue. Offline mode keeps everything
	// in memory.
	var queue *syncx.Queue
	var store *pos.Store
	if cfg.CloudSync {
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()

		repo := &postgres.CloudRepo{DB: db}
		queue = syncx.NewQueue(repo, 1024)
		queue.Start(ctx)
		store = pos.NewStore(queue)

		// initial bulk load; per-collection conflict policy lives in the store
		loadCtx, loadCancel := context.WithTimeout(ctx, 15*time.Second)
		remote, err := repo.LoadAll(loadCtx)
		loadCancel()
		if err != nil {
			log.Printf("cloud load failed, continuing with local state: %v", err)
		} else {
			store.LoadRemote(remote)
		}
	} else {
		store = pos.NewStore(nil)
	}

	if cfg.SeedDemo {
		store.Seed()
	}

	// Redis (laporan harian)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	reports := &report.Service{Redis: rdb, ServiceName: cfg.ServiceName}

	// Kafka producer untuk event penjualan
	prod := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicTransactionCreated, 1024)
	prod.Start(ctx)

	router := httpx.NewRouter()
	ph := &httpx.POSHandler{
		Store:    store,
		Producer: prod,
		Reports:  reports,
		Service:  cfg.ServiceName,
	}
	ph.Register(router)
	bh := &httpx.BackupHandler{Store: store}
	bh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	prod.Close() // tutup inbox -> flush & close writer
	prod.WaitClosed()
	if queue != nil {
		queue.Close() // flush antrean sync yang tersisa
		queue.WaitClosed()
	}
	cancel()
}
