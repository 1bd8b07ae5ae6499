package main

import (
	"log"
	"os"

	"go-warehouse/internal/repository"
	"go-warehouse/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool: resets a user's password directly in the database.
// Controlled via RESET_EMAIL and RESET_PASSWORD environment variables.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	userRepo := repository.NewUserRepo(db)

	// 3. Find the target user
	email := os.Getenv("RESET_EMAIL")
	if email == "" {
		email = "admin@warehouse.com"
	}
	user, err := userRepo.FindByEmail(email)
	if err != nil {
		log.Fatalf("❌ User %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("RESET_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", email)
}
