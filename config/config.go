package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application. It is loaded once in
// main and passed explicitly to every component that needs it; nothing in
// the codebase reads the environment after startup.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string
	Env        string
	JWTSecret  string

	// PayHere merchant settings
	MerchantID     string
	MerchantSecret string
	CheckoutURL    string
	ReturnURL      string
	CancelURL      string
	NotifyURL      string
	MaxAmount      decimal.Decimal

	// Commission settings
	CommissionRate decimal.Decimal
	CommissionMin  decimal.Decimal
	CommissionMax  decimal.Decimal

	// Operator alerting
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	OpsEmail     string
}

// LoadConfig loads configuration from the environment, with a .env file as
// a local-development convenience.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; production supplies real environment variables.
	_ = godotenv.Load()

	config := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "staylanka"),
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		JWTSecret:  os.Getenv("JWT_SECRET"),

		MerchantID:     os.Getenv("PAYHERE_MERCHANT_ID"),
		MerchantSecret: os.Getenv("PAYHERE_MERCHANT_SECRET"),
		CheckoutURL:    getEnv("PAYHERE_CHECKOUT_URL", "https://sandbox.payhere.lk/pay/checkout"),
		ReturnURL:      os.Getenv("PAYHERE_RETURN_URL"),
		CancelURL:      os.Getenv("PAYHERE_CANCEL_URL"),
		NotifyURL:      os.Getenv("PAYHERE_NOTIFY_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		OpsEmail:     os.Getenv("OPS_EMAIL"),
	}

	if config.MerchantID == "" || config.MerchantSecret == "" {
		return nil, fmt.Errorf("PAYHERE_MERCHANT_ID and PAYHERE_MERCHANT_SECRET are required")
	}

	var err error
	if config.MaxAmount, err = decimalEnv("PAYMENT_MAX_AMOUNT", "1000000.00"); err != nil {
		return nil, err
	}
	if config.CommissionRate, err = decimalEnv("COMMISSION_RATE", "0.05"); err != nil {
		return nil, err
	}
	if config.CommissionMin, err = decimalEnv("COMMISSION_MIN", "50.00"); err != nil {
		return nil, err
	}
	if config.CommissionMax, err = decimalEnv("COMMISSION_MAX", "7500.00"); err != nil {
		return nil, err
	}

	config.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %v", key, err)
	}
	return value, nil
}
