package main

import (
	"fmt"
	"log"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/config"
	"ai-scm-toolkit/internal/database"
	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/providers"
	"ai-scm-toolkit/internal/scoring"
	"ai-scm-toolkit/internal/server"
)

func main() {
	cfg := config.Load()

	kb, err := knowledge.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to load knowledge base: %v", err)
	}

	if cfg.DBDSN != "" {
		database.Init(cfg.DBDSN, kb)
	}

	vulns := providers.NewOSVProvider(cfg.OSVURL, cfg.ProviderTimeout)
	stress := providers.NewEconomicProvider(cfg.EconURL, cfg.FredAPIKey, cfg.ProviderTimeout)
	cache := scoring.NewStressCache(cfg.StressCacheTTL)
	scorer := scoring.NewScorer(vulns, stress, cache, cfg.ProviderTimeout)

	eng := assessment.NewEngine(kb, scorer)

	r := server.NewRouter(cfg, eng)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
