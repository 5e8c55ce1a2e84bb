package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v7"
)

// ServerConf holds server configuration
type ServerConf struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

// DatabaseConf holds relational database configuration plus the driver
// switch that selects the storage backend for the whole process.
type DatabaseConf struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:""`
	Name     string `env:"DB_NAME" envDefault:"event_planner"`
}

// MongoConf holds document database configuration
type MongoConf struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DB" envDefault:"event_planner"`
}

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConf
	Database DatabaseConf
	Mongo    MongoConf
	RabbitMQ RabbitMQConf
}

// Config is the global configuration instance
var Config AppConfig

// InitConfig initializes application configuration from environment variables
func InitConfig() error {
	log.Println("🔧 Initializing application configuration...")

	if err := env.Parse(&Config); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validateConfig(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Println("✅ Configuration initialized successfully")
	return nil
}

// validateConfig validates the loaded configuration
func validateConfig() error {
	if Config.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch Config.Database.Driver {
	case "postgres":
		requiredDBFields := map[string]string{
			"DB_HOST": Config.Database.Host,
			"DB_PORT": Config.Database.Port,
			"DB_USER": Config.Database.User,
			"DB_NAME": Config.Database.Name,
		}
		for field, value := range requiredDBFields {
			if value == "" {
				return fmt.Errorf("%s is required", field)
			}
		}
	case "mongo":
		if Config.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if Config.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DB is required")
		}
	case "memory":
		// Nothing to validate; state lives in the process.
	default:
		return fmt.Errorf("DB_DRIVER must be 'postgres', 'mongo' or 'memory', got %q", Config.Database.Driver)
	}

	return Config.RabbitMQ.ValidateRabbitMQConfig()
}

// GetDatabaseDSN returns the relational connection string
func (d *DatabaseConf) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host,
		d.User,
		d.Password,
		d.Name,
		d.Port,
	)
}

// IsProduction returns true if running in production environment
func (s *ServerConf) IsProduction() bool {
	return s.Env == "production" || s.Env == "prod"
}

// IsDevelopment returns true if running in development environment
func (s *ServerConf) IsDevelopment() bool {
	return s.Env == "development" || s.Env == "dev"
}

// IsTest returns true if running in test environment
func (s *ServerConf) IsTest() bool {
	return s.Env == "test"
}

// PrintConfig prints the current configuration (excluding sensitive data)
func PrintConfig() {
	log.Println("📋 Current Configuration:")
	log.Printf("   Environment: %s", Config.Server.Env)
	log.Printf("   Server Port: %s", Config.Server.Port)
	log.Printf("   Storage Driver: %s", Config.Database.Driver)
	switch Config.Database.Driver {
	case "postgres":
		log.Printf("   Database Host: %s:%s", Config.Database.Host, Config.Database.Port)
		log.Printf("   Database Name: %s", Config.Database.Name)
	case "mongo":
		log.Printf("   Mongo Database: %s", Config.Mongo.Database)
	}
	log.Printf("   RabbitMQ Host: %s:%s", Config.RabbitMQ.Host, Config.RabbitMQ.Port)
	log.Printf("   RabbitMQ Exchange: %s", Config.RabbitMQ.Exchange)
	log.Printf("   Prefetch Count: %d", Config.RabbitMQ.PrefetchCount)
	log.Printf("   Connection Pool Size: %d", Config.RabbitMQ.PoolSize)
}
