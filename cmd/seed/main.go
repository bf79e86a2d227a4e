package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/storecore/commerce/config"
	"github.com/storecore/commerce/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()

	// Admin account
	email := "admin@storecore.dev"
	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, active, email_verified, created_at, updated_at)
		VALUES ($1, 'Store', 'Admin', $2, $3, 'ADMIN', TRUE, TRUE, $4, $4)
		ON CONFLICT (email) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`, uuid.NewString(), email, hash, now).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	// Base categories with one demo product each
	categories := []struct {
		name, description string
		product           string
		price             string
		stock             int
	}{
		{"Electronics", "Phones, laptops and accessories", "Wireless Mouse", "19.99", 120},
		{"Books", "Print and digital books", "The Go Programming Language", "39.95", 40},
		{"Home & Kitchen", "Everything for the household", "French Press", "24.50", 75},
	}
	for _, c := range categories {
		catID := uuid.NewString()
		err := db.QueryRow(`
			INSERT INTO categories (id, name, description, active, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, $4, $4)
			RETURNING id
		`, catID, c.name, c.description, now).Scan(&catID)
		if err != nil {
			log.Fatalf("failed to seed category %q: %v", c.name, err)
		}
		if _, err := db.Exec(`
			INSERT INTO products (id, name, description, price_amount, price_currency, stock_quantity, category_id, active, created_at, updated_at)
			VALUES ($1, $2, '', $3::numeric, 'USD', $4, $5, TRUE, $6, $6)
			ON CONFLICT DO NOTHING
		`, uuid.NewString(), c.product, c.price, c.stock, catID, now); err != nil {
			log.Fatalf("failed to seed product %q: %v", c.product, err)
		}
		fmt.Printf("seeded category %q with product %q\n", c.name, c.product)
	}
}
