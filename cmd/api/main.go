package main

import (
	"log"

	"github.com/chistym17/jobgenie/internal/bootstrap"
	"github.com/chistym17/jobgenie/internal/shared/config"
	"github.com/chistym17/jobgenie/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
