package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	DBPath         string
	UploadsDir     string
	Redis          RedisConfig
	JWTSecret      string
	StripeKey      string
	Admin          AdminConfig
	MinChargeCents int64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AdminConfig carries the admin identity. The password is stored as a bcrypt
// hash, never in plain text.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	minCharge, _ := strconv.ParseInt(getEnv("MIN_CHARGE_CENTS", "50"), 10, 64)

	return Config{
		Addr:       getEnv("ADDR", ":3000"),
		DBPath:     getEnv("DB_PATH", "database.db"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		StripeKey: getEnv("STRIPE_SECRET_KEY", ""),
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@techfix.local"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		MinChargeCents: minCharge,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
