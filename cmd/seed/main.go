package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

var starterCategories = []string{
	"General",
	"Technology",
	"Tutorials",
	"News",
}

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	created, err := seedCategories(ctx, repository.NewCategoryRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories: %d created, %d already present", created, len(starterCategories)-created)

	if err := seedAdmin(ctx, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedCategories creates each starter category unless a category with that
// name already exists.
func seedCategories(ctx context.Context, repo repository.CategoryRepository) (int, error) {
	created := 0
	for _, name := range starterCategories {
		_, err := repo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, err
		}
		if err := repo.Create(ctx, &model.Category{Name: name, Slug: service.Slugify(name)}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedAdmin creates a bootstrap admin from SEED_ADMIN_* env vars; it is
// skipped when the variables are absent or the email is already registered.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	name := os.Getenv("SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	if err := repo.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}); err != nil {
		return err
	}
	log.Printf("Admin user %s created", email)
	return nil
}
