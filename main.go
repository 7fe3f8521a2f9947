// @title           Sonaby Visitor Management API
// @version         1.0
// @description     REST backend for multi-site visitor management: visits, blacklist, incidents and SOS alerts.

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
	"os"

	"github.com/bako110/Sonaby/config"
	"github.com/bako110/Sonaby/models"
	"github.com/bako110/Sonaby/routes"
	"github.com/bako110/Sonaby/services"
	"github.com/bako110/Sonaby/services/container"
	"github.com/bako110/Sonaby/store"
	"github.com/bako110/Sonaby/utils"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	// Environment variables may already be set by the deployment, so a
	// missing .env file is not fatal.
	if err := godotenv.Load(); err != nil {
		config.Warning("no .env file loaded: %v", err)
	} else {
		config.Info(".env file loaded")
	}

	cfg := config.GetConfig()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	if cfg.DBMigrationMode == "drop" {
		log.Println("warning: running in drop mode, all tables will be dropped and recreated")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("drop and recreate failed: %v", err)
		}
	} else {
		if err := migrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	st := store.NewGormStore(db)
	ensureAdminExists(st, cfg)

	redisClient := services.NewRedisClient(cfg)
	notifier := services.NewMQTTNotifier(cfg)

	c := container.NewServiceContainer(st, cfg, redisClient, notifier)
	defer c.Shutdown()

	r := routes.SetupRouter(c)

	port := cfg.ServerPort
	config.Info("server listening on: http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("server failed: %v", err)
		os.Exit(1)
	}
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	config.Info("database connection established")
	return db, nil
}

// migrate adds new tables and columns, then installs the unique
// indexes backing the one-active-visit and one-active-alert rules.
func migrate(db *gorm.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		return err
	}
	return models.EnsureInvariantIndexes(db)
}

func dropAndRecreateTables(db *gorm.DB) error {
	tables := []interface{}{
		&models.SOSAlert{},
		&models.Incident{},
		&models.Appointment{},
		&models.Visit{},
		&models.NonDesirable{},
		&models.Visitor{},
		&models.Service{},
		&models.Agent{},
		&models.Checkpoint{},
		&models.Site{},
		&models.File{},
		&models.User{},
	}
	if err := db.Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}
	return migrate(db)
}

// ensureAdminExists creates the default administrator account when the
// users table is empty, so a fresh deployment can always log in.
func ensureAdminExists(s store.Store, cfg *config.Config) {
	count, err := s.Users().Count()
	if err != nil {
		config.Error("could not count user accounts: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		config.Error("could not hash default admin password: %v", err)
		return
	}

	admin := &models.User{
		Email:        cfg.DefaultAdminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.Users().Create(admin); err != nil {
		config.Error("could not create default admin account: %v", err)
		return
	}
	config.Info("created default admin account %s", cfg.DefaultAdminEmail)
	log.Println("warning: default admin password in use, change it after first login")
}
