package config

import (
	"fmt"
	"os"

	"github.com/minhle-dev/ShopSphere/gateway"
	"github.com/minhle-dev/ShopSphere/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	Port        string
	Env         string
	FrontendURL string
	Gateway     gateway.Config
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		Gateway: gateway.Config{
			TmnCode:    os.Getenv("VNP_TMN_CODE"),
			HashSecret: os.Getenv("VNP_HASH_SECRET"),
			PayURL:     os.Getenv("VNP_PAY_URL"),
			ReturnURL:  os.Getenv("VNP_RETURN_URL"),
			IPNURL:     os.Getenv("VNP_IPN_URL"),
			Version:    os.Getenv("VNP_VERSION"),
			Command:    os.Getenv("VNP_COMMAND"),
			CurrCode:   os.Getenv("VNP_CURR_CODE"),
			Locale:     os.Getenv("VNP_LOCALE"),
		}.WithDefaults(),
	}

	return config, nil
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentCallbackLog{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	// Unique only where assigned: orders that have not been sent to the
	// gateway yet all carry an empty reference.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_txn_ref_assigned
		ON orders (txn_ref) WHERE txn_ref <> ''
	`).Error
	if err != nil {
		panic(fmt.Sprintf("Failed to create txn_ref index: %v", err))
	}
}
