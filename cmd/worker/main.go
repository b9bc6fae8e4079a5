package main

import (
	"context"
	"log"
	"time"

	"bookflow/internal/activities"
	"bookflow/internal/config"
	"bookflow/internal/storage"
	"bookflow/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	a := activities.New(cfg, db)
	activities.Register(w, a)

	log.Printf("bookflow worker connected to %s queue=%s summary_model=%q", cfg.TemporalAddress, cfg.TemporalTaskQueue, cfg.SummaryModel)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
