package main

import (
	"context"
	"log"
	"os"

	"chat-journal-be/internal/entity"
	"chat-journal-be/internal/repository/unitofwork"
	"chat-journal-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of demo users and chats for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	if os.Getenv("GO_ENV") == "production" {
		log.Fatal("Error: refusing to seed a production database")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash seed password: %v", err)
	}

	log.Println("Creating demo users...")

	users := []struct {
		email string
		name  string
	}{
		{"alice@example.com", "Alice Johnson"},
		{"bob@example.com", "Bob Smith"},
		{"charlie@example.com", "Charlie Davis"},
	}

	var alice *entity.User
	for _, u := range users {
		name := u.name
		user := &entity.User{
			Id:           uuid.New(),
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         &name,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			log.Fatalf("Error: failed to create user %s: %v", u.email, err)
		}
		log.Printf("Created user: %s", user.Email)
		if alice == nil {
			alice = user
		}
	}

	log.Println("Creating demo chats and messages...")

	chats := []struct {
		title    string
		messages []entity.ChatMessage
	}{
		{
			title: "Getting Started with AI",
			messages: []entity.ChatMessage{
				{Role: entity.MessageRoleUser, Content: "What is machine learning?"},
				{Role: entity.MessageRoleModel, Content: "Machine learning is a branch of AI where systems learn patterns from data instead of being explicitly programmed."},
				{Role: entity.MessageRoleUser, Content: "Can you give me an example?"},
			},
		},
		{
			title: "Journal - Week One",
			messages: []entity.ChatMessage{
				{Role: entity.MessageRoleUser, Content: "Today I started my new journaling habit."},
			},
		},
	}

	for _, c := range chats {
		if err := uow.Begin(ctx); err != nil {
			log.Fatalf("Error: failed to begin transaction: %v", err)
		}

		chat := &entity.Chat{
			Id:     uuid.New(),
			UserId: alice.Id,
			Title:  c.title,
		}
		if err := uow.ChatRepository().Create(ctx, chat); err != nil {
			uow.Rollback()
			log.Fatalf("Error: failed to create chat %q: %v", c.title, err)
		}

		for _, m := range c.messages {
			msg := &entity.ChatMessage{
				Id:      uuid.New(),
				ChatId:  chat.Id,
				Role:    m.Role,
				Content: m.Content,
			}
			if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
				uow.Rollback()
				log.Fatalf("Error: failed to create message: %v", err)
			}
		}

		if err := uow.Commit(); err != nil {
			log.Fatalf("Error: failed to commit chat %q: %v", c.title, err)
		}
		log.Printf("Created chat: %s (%d messages)", c.title, len(c.messages))
	}

	log.Println("Success: seeding completed.")
}
