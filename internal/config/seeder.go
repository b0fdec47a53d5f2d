package config

import (
	"log"

	"creditdesk/internal/adapters/persistence/models"
	"creditdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// Development/testing only; in production create the admin through a
// secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		CNP:         "1000000000001",
		FirstName:   "System",
		LastName:    "Admin",
		Email:       "admin@creditdesk.local",
		Password:    hashedPassword,
		Role:        "ADMIN",
		CreditScore: 700,
		IsActive:    true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("🌱 Seeded admin user: %s", admin.Email)
	return nil
}
