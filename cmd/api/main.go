package main

import (
	"context"
	"log"
	"net/http"

	"codecanvas/backend/internal/config"
	"codecanvas/backend/internal/database"
	"codecanvas/backend/internal/handlers"
	"codecanvas/backend/internal/store"
	"codecanvas/backend/internal/ws"
)

func main() {
	cfg := config.Load()

	var users store.Users
	var projects store.Projects

	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pool.Close()
		users = store.NewPostgresUsers(pool)
		projects = store.NewPostgresProjects(pool)
		log.Println("Connected to Postgres")
	} else {
		users = store.NewMemoryUsers()
		projects = store.NewMemoryProjects()
		log.Println("DATABASE_URL not set, using in-memory store")
	}

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(users, projects, hub)
	r := handlers.NewRouter(h, cfg.AllowedOrigins)

	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
