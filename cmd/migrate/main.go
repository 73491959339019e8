package main

import (
	"flag"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/database"
)

func main() {
	auto := flag.Bool("auto", false, "Use GORM auto-migration instead of SQL files")
	dir := flag.String("dir", "migrations", "Directory containing SQL migration files")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if *auto {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("auto-migration failed: %v", err)
		}
		log.Println("Auto-migration completed successfully.")
		return
	}

	if err := database.RunMigrations(db, *dir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("All migrations applied successfully.")
}
