package db

import (
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"strings" // Email normalization
	"time"    // Registration timestamp

	"vocab_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Category{}, &domain.Vocabulary{}, &domain.SavedWord{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates the administrator account if it does not exist yet.
// An existing account with the same email is promoted to admin.
func SeedAdmin(db *gorm.DB, name, email, password string, cost int) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil // Seeding disabled
	}
	var user domain.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role == domain.RoleAdmin {
			return nil
		}
		if err := db.Model(&user).Update("role", domain.RoleAdmin).Error; err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		logrus.WithField("email", email).Info("Existing user promoted to admin")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required to seed %s", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user = domain.User{Name: name, Email: email, Password: string(hash), Role: domain.RoleAdmin, CreatedAt: time.Now().UTC()}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID, // Admin user ID
		"email":   email,   // Admin email
	}).Info("Admin user seeded")
	return nil
}
