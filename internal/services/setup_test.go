// internal/services/setup_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/database"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

// newTestDB opens a private in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Media:   config.MediaConfig{URLPrefix: "/media/"},
		Payment: config.PaymentConfig{Currency: "inr"},
		Email:   config.EmailConfig{FromEmail: "noreply@petpalooza.test", FromName: "PetPalooza"},
		Shop:    config.ShopConfig{PetPageSize: 2, DefaultPetType: "dog"},
	}
}

func createProduct(t *testing.T, db *gorm.DB, petType models.PetType, title, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		PetType:       petType,
		Title:         title,
		Image:         "products/" + models.Slugify(title, 50) + ".jpg",
		Price:         decimal.RequireFromString(price),
		QuantityValue: decimal.NewFromInt(1),
		QuantityUnit:  models.UnitPieces,
		IsActive:      true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func intPtr(v int) *int    { return &v }
func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }
