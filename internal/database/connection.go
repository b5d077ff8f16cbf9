// internal/database/connection.go
package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	// Connect to database
	DB, err = gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	if cfg.Driver == "sqlite" {
		// sqlite serializes writers; one connection keeps row locks meaningful
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established successfully")
	return DB, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

// Models lists every table owned by the service, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductRelation{},
		&models.Review{},
		&models.Banner{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AboutPage{},
		&models.AboutCard{},
		&models.AboutHighlight{},
		&models.HomeCategory{},
		&models.PromoBanner{},
		&models.OfferStrip{},
		&models.PetService{},
		&models.CarouselBanner1{},
		&models.CarouselBanner2{},
		&models.CarouselBanner3{},
		&models.MegaMenu{},
		&models.MegaMenuSection{},
		&models.MegaMenuCategory{},
		&models.MegaMenuBrand{},
		&models.SiteSettings{},
		&models.ContactMessage{},
		&models.PetServiceLanding{},
		&models.PetServicesPage{},
		&models.ServiceCard{},
		&models.ConsultPage{},
		&models.VetDoctor{},
		&models.BookingService{},
		&models.AuditLog{},
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.SetupJoinTable(&models.Product{}, "Related", &models.ProductRelation{}); err != nil {
		return fmt.Errorf("failed to set up related products join table: %w", err)
	}

	// Run auto-migrations
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

type indexDef struct {
	name    string
	table   string
	columns []string
}

func (d indexDef) statement() string {
	cols := make([]string, len(d.columns))
	for i, c := range d.columns {
		cols[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)",
		pq.QuoteIdentifier(d.name), pq.QuoteIdentifier(d.table), strings.Join(cols, ", "))
}

func createIndexes(db *gorm.DB) error {
	indexes := []indexDef{
		// Catalog listing indexes
		{"idx_categories_pet_type_order", "categories", []string{"pet_type", "sort_order", "id"}},
		{"idx_products_listing", "products", []string{"pet_type", "is_active", "sort_order", "created_at"}},
		{"idx_reviews_product_created", "reviews", []string{"product_id", "created_at"}},

		// Content ordering
		{"idx_carousal_banner2_active_order", "carousal_banner2", []string{"active", "sort_order"}},
		{"idx_carousal_banner3_active_order", "carousal_banner3", []string{"active", "sort_order"}},
		{"idx_about_pages_active_order", "about_pages", []string{"is_active", "sort_order"}},

		// Orders
		{"idx_orders_status_created", "orders", []string{"status", "created_at"}},
		{"idx_contact_messages_created", "contact_messages", []string{"created_at"}},

		// Admin indexes
		{"idx_audit_logs_user_action", "audit_logs", []string{"user_id", "action"}},
		{"idx_audit_logs_resource", "audit_logs", []string{"resource_type", "resource_id"}},
	}

	for _, index := range indexes {
		if err := db.Exec(index.statement()).Error; err != nil {
			logrus.WithError(err).WithField("index", index.name).Warn("Failed to create index")
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the site settings row and, when configured, a staff account.
func SeedInitialData(db *gorm.DB, cfg config.SeedConfig) error {
	logrus.Info("Seeding initial data...")

	var settingsCount int64
	if err := db.Model(&models.SiteSettings{}).Count(&settingsCount).Error; err != nil {
		return fmt.Errorf("failed to count site settings: %w", err)
	}
	if settingsCount == 0 {
		settings := &models.SiteSettings{SiteName: cfg.SiteName, TopBarEnabled: true}
		if err := db.Create(settings).Error; err != nil {
			return fmt.Errorf("failed to create site settings: %w", err)
		}
		logrus.Info("Default site settings created")
	}

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Info("Initial data seeding completed")
		return nil
	}

	email := strings.ToLower(cfg.AdminEmail)
	var admin models.User
	err := db.Where("email = ?", email).First(&admin).Error
	switch {
	case err == nil:
		if !admin.IsStaff {
			if err := db.Model(&admin).Update("is_staff", true).Error; err != nil {
				return fmt.Errorf("failed to promote admin user: %w", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = models.User{
			Username:  "admin",
			Email:     email,
			FirstName: "Site",
			LastName:  "Administrator",
			IsStaff:   true,
			IsActive:  true,
		}
		if err := admin.SetPassword(cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.Info("Default admin user created successfully")
	default:
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
