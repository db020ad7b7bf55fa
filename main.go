// @title           Barangay Document Management API
// @version         1.0
// @description     Records management system for barangay residents, certificate issuance and audit trails

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/database"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/routes"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services/container"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	// Load .env, environment variables may also come from elsewhere
	if err := godotenv.Load(); err != nil {
		config.Warning("no .env file loaded: %v", err)
	} else {
		config.Info("loaded .env file")
	}

	cfg := config.GetConfig()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	switch cfg.DBMigrationMode {
	case "drop":
		log.Println("warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("drop migration failed: %v", err)
		}
	default:
		if err := autoMigrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	seedDocumentTypes(db, cfg)
	ensureAdminExists(db, cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	r, serviceContainer := routes.SetupRouter(db, cfg, redisClient)

	startScheduler(serviceContainer, cfg)

	config.Info("server listening on http://localhost:%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// initDB opens the database connection and configures the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return pool.DB, nil
}

// autoMigrate migrates all models, adding new columns and tables only
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Resident{},
		&models.DocumentType{},
		&models.Document{},
		&models.TransactionLog{},
		&models.LoginAttempt{},
		&models.PasswordReset{},
		&models.LoginMfaCode{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables drops every model table and migrates from scratch
func dropAndRecreateTables(db *gorm.DB) error {
	log.Println("warning: dropping all tables, all data will be lost")

	// Drop order matters, children before parents
	tables := []interface{}{
		&models.LoginMfaCode{},
		&models.PasswordReset{},
		&models.LoginAttempt{},
		&models.TransactionLog{},
		&models.Document{},
		&models.DocumentType{},
		&models.Resident{},
		&models.User{},
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	log.Println("recreating all tables")
	return autoMigrate(db)
}

// seedDocumentTypes inserts the default certificate catalogue when empty
func seedDocumentTypes(db *gorm.DB, cfg *config.Config) {
	if err := services.NewDocumentTypeService(db, cfg).SeedDefaults(); err != nil {
		log.Printf("failed to seed document types: %v", err)
	}
}

// ensureAdminExists makes sure at least one administrator account exists
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)

	if count == 0 {
		// The model hook hashes the password on save
		admin := models.User{
			Username:           "admin",
			Password:           cfg.DefaultAdminPassword,
			Email:              "admin@example.com",
			Role:               models.RoleAdmin,
			MustChangePassword: true,
		}

		if result := db.Create(&admin); result.Error != nil {
			log.Printf("failed to create default admin: %v", result.Error)
			return
		}

		log.Println("created default admin account (username: admin), password change required on first login")
	}
}

// startScheduler runs the expired document sweep and backup retention jobs
func startScheduler(sc *container.ServiceContainer, cfg *config.Config) {
	c := cron.New()

	if cfg.AutoPurgeExpired {
		interval := cfg.PurgeCheckIntervalMinutes
		if interval < 1 {
			interval = 1440
		}
		spec := fmt.Sprintf("@every %dm", interval)
		_, err := c.AddFunc(spec, func() {
			docService := sc.GetService("document").(services.InterfaceDocumentService)
			result, err := docService.PurgeExpired(cfg.PurgeValidityMonths, cfg.PurgeGraceDays, false)
			if err != nil {
				config.Error("expired document sweep failed: %v", err)
				return
			}
			if result.Archived > 0 || result.Deleted > 0 {
				config.Info("expired document sweep: archived=%d deleted=%d", result.Archived, result.Deleted)
			}
		})
		if err != nil {
			config.Error("failed to schedule document sweep: %v", err)
		}
	}

	_, err := c.AddFunc("@daily", func() {
		backupService := sc.GetService("backup").(services.InterfaceBackupService)
		removed, err := backupService.CleanupOldBackups(cfg.BackupRetentionDays)
		if err != nil {
			config.Error("backup retention sweep failed: %v", err)
			return
		}
		if removed > 0 {
			config.Info("backup retention sweep removed %d old backups", removed)
		}
	})
	if err != nil {
		config.Error("failed to schedule backup retention: %v", err)
	}

	c.Start()
}
