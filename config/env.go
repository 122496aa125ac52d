package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv        string
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	JWTSecret     string
	JWTExpiry     string
	TaxRate       decimal.Decimal
	ShippingFee   decimal.Decimal
	CartTTLHours  int
	UploadDir     string
	MaxUploadSize int64
	MigrationsDir string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	cartTTL, _ := strconv.Atoi(os.Getenv("CART_TTL_HOURS"))
	if cartTTL == 0 {
		cartTTL = 168
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8080")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "shophub"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiry:     getEnv("JWT_EXPIRY", "24h"),
		TaxRate:       parseDecimal("TAX_RATE", "0.10"),
		ShippingFee:   parseDecimal("SHIPPING_FEE", "50"),
		CartTTLHours:  cartTTL,
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: maxUploadSize,
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func parseDecimal(key, def string) decimal.Decimal {
	raw := getEnv(key, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, falling back to %s", key, raw, def)
		d = decimal.RequireFromString(def)
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
