package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/rogeriosouza/construtora-api/internal/config"
	"github.com/rogeriosouza/construtora-api/internal/database"
	"github.com/rogeriosouza/construtora-api/internal/models"
	"github.com/rogeriosouza/construtora-api/internal/repository"
	"github.com/rogeriosouza/construtora-api/internal/services"
	"github.com/rogeriosouza/construtora-api/pkg/logger"
)

// Seeds an admin user so the API can be used right after deployment.
func main() {
	email := flag.String("email", "", "admin e-mail")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Administrador", "full name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: create_admin -email admin@empresa.com.br -password <senha>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hash, err := services.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	repos := repository.NewRepositories(db)
	user := &models.User{
		Email:             *email,
		EncryptedPassword: hash,
		FullName:          *name,
		Role:              models.RoleAdmin,
		Status:            models.StatusActive,
	}

	if err := repos.User.Create(context.Background(), user); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	logger.Info("Admin user created", "email", *email, "id", user.ID)
}
