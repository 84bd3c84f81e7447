package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gosimple/slug"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-commerce-api/config"
	"github.com/oksasatya/go-commerce-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, phone, address, answer, role)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		ON CONFLICT (email) DO UPDATE SET role = 1
		RETURNING id
	`, "Admin", email, hash, "+10000000000", "head office", "seed answer").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	// Base categories
	for _, name := range []string{"Electronics", "Books", "Clothing"} {
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING
		`, name, slug.Make(name)); err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
	}
	fmt.Println("base categories ensured")
}
