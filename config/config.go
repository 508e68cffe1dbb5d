package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	SecretKey   []byte
	Port        string
	DatabaseURL string
	TaxRate     float64
)

func Init() {
	// .env is optional outside dev
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = ":8080"
	}

	// empty means run on the in-memory store
	DatabaseURL = os.Getenv("DATABASE_URL")

	TaxRate = 0.16
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("invalid TAX_RATE %q: %v", raw, err)
		}
		TaxRate = rate
	}
}
