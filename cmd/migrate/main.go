package main

import (
	"log"
	"os"

	"chat-journal-be/internal/model"
	"chat-journal-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate does not handle
	log.Println("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate all models; parent tables first so foreign keys with
	// ON DELETE CASCADE resolve.
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Chat{},
		&model.ChatMessage{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: constraints AutoMigrate cannot express
	log.Println("Step 3: Applying role check constraint...")

	postMigrationSQL := []string{
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_chat_messages_role') THEN
		     ALTER TABLE chat_messages ADD CONSTRAINT chk_chat_messages_role CHECK (role IN ('user', 'model'));
		   END IF;
		 END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed via GORM.")
}
