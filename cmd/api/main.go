package main

import (
	"log"
	"net/http"

	"bookflow/internal/api"
	"bookflow/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	h := api.NewServer(cfg)
	log.Printf("bookflow api listening on %s summary_model=%q", cfg.APIAddr, cfg.SummaryModel)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
