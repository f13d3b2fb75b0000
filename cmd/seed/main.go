package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"guestbook/internal/config"
	"guestbook/internal/db"
	"guestbook/internal/model"
	"guestbook/internal/repository"
)

// Seeds the baseline roles and an initial administrator account so a fresh
// deployment has something to log in with.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Role{}, &model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	adminRole, err := seedRole(ctx, roleRepo, "System Admin", "Full administrative access")
	if err != nil {
		log.Fatalf("Failed to seed admin role: %v", err)
	}
	if _, err := seedRole(ctx, roleRepo, "User", "Regular guest book user"); err != nil {
		log.Fatalf("Failed to seed user role: %v", err)
	}

	if err := seedAdmin(ctx, userRepo, adminRole, "admin@guestbook.local", "changeme123"); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedRole creates the role unless it already exists.
func seedRole(ctx context.Context, repo repository.RoleRepository, name, description string) (*model.Role, error) {
	existing, err := repo.FindByName(ctx, name)
	if err == nil {
		log.Printf("Role %q already exists", name)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{Name: name, Description: description, Status: true}
	if err := repo.Create(ctx, role); err != nil {
		return nil, err
	}
	log.Printf("Created role %q", name)
	return role, nil
}

// seedAdmin creates the initial administrator unless the email is taken.
func seedAdmin(ctx context.Context, repo repository.UserRepository, role *model.Role, email, password string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %q already exists", email)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}

	admin := &model.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Status:       true,
		RoleID:       role.ID,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %q (change the default password)", email)
	return nil
}
