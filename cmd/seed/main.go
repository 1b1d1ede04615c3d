package main

import (
	"log"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store/memory"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store/relational"
	"github.com/wyc7758775/aglie-person-manage-sub001/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	resolver := store.NewResolver(cfg.Database.URL, relational.Open, func() store.Store { return memory.New() })

	s := resolver.Resolve()
	log.Printf("Storage backend: %s", resolver.State())

	if err := s.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	if err := store.Seed(s); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("Seed data ready (admin / 123456)")
}
