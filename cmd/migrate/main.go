// Applies the SQL migrations in ./migrations against the configured database.
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate -cmd down  # roll back one
//	go run ./cmd/migrate -cmd status
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"tutorhub_backend/internals/configs"
)

func main() {
	cmd := flag.String("cmd", "up", "goose command: up | down | status | version")
	dir := flag.String("dir", "migrations", "migrations directory")
	flag.Parse()

	configs.LoadEnv()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("❌ open db: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ set goose dialect: %v", err)
	}

	ctx := context.Background()
	switch *cmd {
	case "up":
		log.Println("🔄 Applying database migrations...")
		if err := goose.UpContext(ctx, db, *dir); err != nil {
			log.Fatalf("❌ apply migrations: %v", err)
		}
		log.Println("✅ Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, *dir); err != nil {
			log.Fatalf("❌ rollback: %v", err)
		}
		log.Println("✅ Rolled back one migration")
	case "status":
		if err := goose.StatusContext(ctx, db, *dir); err != nil {
			log.Fatalf("❌ status: %v", err)
		}
	case "version":
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			log.Fatalf("❌ get version: %v", err)
		}
		log.Printf("version: %d", v)
	default:
		log.Fatalf("unknown command %q", *cmd)
	}
}
