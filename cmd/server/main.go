package main

import (
	"log"
	"net/http"

	"tablescore/internal/config"
	"tablescore/internal/db"
	"tablescore/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		// Without a database the server still runs, scoring in memory.
		log.Printf("running without persistence: %v", err)
		conn = nil
	}
	if conn != nil {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		if err := db.Tune(conn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns,
			cfg.DBConnMaxLifetimeSeconds, cfg.DBConnMaxIdleTimeSeconds); err != nil {
			log.Fatalf("database pool setup failed: %v", err)
		}
	}

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("tablescore listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
