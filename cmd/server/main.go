package main

import (
	"fmt"
	"log"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/api"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store/memory"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store/relational"
	"github.com/wyc7758775/aglie-person-manage-sub001/pkg/auth"
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
		log.Printf("Schema initialization failed, requests will retry: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	handler := api.NewHandler(resolver)
	authHandler := api.NewAuthHandler(resolver, jwtManager, cfg.Auth)

	router := api.SetupRouter(resolver, handler, authHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
