package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tvm-engine/internal/api"
	"tvm-engine/internal/config"
	"tvm-engine/internal/data"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("TVM_CONFIG"), "Path to YAML or TOML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *cfgPath != "" {
		log.Printf("Loaded config from %s", *cfgPath)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := data.NewSessionStore(cfg.Sessions.TTL.Duration, cfg.Sessions.SweepInterval.Duration)
	defer store.Close()
	log.Printf("Session TTL %s, sweep every %s", cfg.Sessions.TTL.Duration, cfg.Sessions.SweepInterval.Duration)

	router := api.NewRouter(cfg, store)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting API server on %s (env=%s, discount rate=%g)", addr, cfg.Server.Env, cfg.Finance.DiscountRate)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
