package main

import (
	"log"
	"os"

	"go-storefront-api/internal/model"
	"go-storefront-api/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find Admin
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", email, err)
	}

	// 4. Hash new password
	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", email)
}
