package config

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectPostgres opens the relational connection with retry logic and
// returns the handle. There is no package-level DB: callers own the
// handle and pass it into the stores they construct.
func ConnectPostgres() (*gorm.DB, error) {
	if err := validateTestEnvironment(); err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Info)
	if Config.Server.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	dsn := Config.Database.GetDatabaseDSN()

	var db *gorm.DB
	var err error
	maxAttempts := 10
	retryInterval := 3 * time.Second

	log.Println("🔌 Connecting to database...")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         gormLogger,
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})

		if err == nil {
			sqlDB, err := db.DB()
			if err == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			}
		}

		if attempt < maxAttempts {
			log.Printf("⏳ Database not ready (attempt %d/%d). Retrying in %v...",
				attempt, maxAttempts, retryInterval)
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("✅ Database connected successfully")
	log.Printf("   Host: %s:%s", Config.Database.Host, Config.Database.Port)
	log.Printf("   Database: %s", Config.Database.Name)

	return db, nil
}

// validateTestEnvironment ensures test databases are properly configured
func validateTestEnvironment() error {
	if Config.Server.IsTest() {
		if !strings.HasSuffix(Config.Database.Name, "_test") {
			return fmt.Errorf(
				"APP_ENV=test but DB_NAME (%s) is not a test database. "+
					"Test database names must end with '_test'",
				Config.Database.Name,
			)
		}
	}

	if !Config.Server.IsProduction() {
		productionIndicators := []string{"prod", "production"}
		for _, indicator := range productionIndicators {
			if strings.Contains(strings.ToLower(Config.Database.Name), indicator) {
				log.Printf("⚠️  WARNING: Using production-like database name (%s) in %s environment",
					Config.Database.Name, Config.Server.Env)
			}
		}
	}

	return nil
}

// ClosePostgres closes the relational connection
func ClosePostgres(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	log.Println("🔌 Closing database connection...")
	return sqlDB.Close()
}

// PingPostgres checks if the relational database is accessible
func PingPostgres(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// ConnectMongo connects to the document store and verifies it responds
// before returning the client.
func ConnectMongo(ctx context.Context) (*mongo.Client, error) {
	log.Println("🔌 Connecting to MongoDB...")

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(Config.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.Println("✅ MongoDB connected successfully")
	log.Printf("   Database: %s", Config.Mongo.Database)

	return client, nil
}

// CloseMongo disconnects the document store client
func CloseMongo(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	log.Println("🔌 Closing MongoDB connection...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
