package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Printful struct {
		APIKey  string
		StoreID string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
	}

	Recaptcha struct {
		SecretKey string
		MinScore  float64
	}

	Shopify struct {
		StoreDomain           string
		StorefrontAccessToken string
	}

	Google struct {
		SpreadsheetID string
		CalendarID    string
	}

	Email struct {
		Host       string
		Port       int
		Username   string
		Password   string
		From       string
		InternalTo string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/colemanmx.db"),
	}

	// Printful
	config.Printful.APIKey = getEnv("PRINTFUL_API_KEY", "")
	config.Printful.StoreID = getEnv("PRINTFUL_STORE_ID", "")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")

	// reCAPTCHA
	config.Recaptcha.SecretKey = getEnv("RECAPTCHA_SECRET_KEY", "")
	minScore := getEnv("RECAPTCHA_MIN_SCORE", "0.5")
	if score, err := strconv.ParseFloat(minScore, 64); err == nil {
		config.Recaptcha.MinScore = score
	} else {
		config.Recaptcha.MinScore = 0.5
	}

	// Shopify storefront
	config.Shopify.StoreDomain = getEnv("SHOPIFY_STORE_DOMAIN", "")
	config.Shopify.StorefrontAccessToken = getEnv("SHOPIFY_STOREFRONT_ACCESS_TOKEN", "")

	// Google Workspace
	config.Google.SpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", "")
	config.Google.CalendarID = getEnv("GOOGLE_CALENDAR_ID", "")

	// Email (Brevo SMTP)
	config.Email.Host = getEnv("BREVO_SMTP_HOST", "smtp-relay.brevo.com")
	port := getEnv("BREVO_SMTP_PORT", "587")
	if p, err := strconv.Atoi(port); err == nil {
		config.Email.Port = p
	} else {
		config.Email.Port = 587
	}
	config.Email.Username = getEnv("BREVO_SMTP_USERNAME", "")
	config.Email.Password = getEnv("BREVO_SMTP_KEY", "")
	config.Email.From = getEnv("EMAIL_FROM", "ride@colemanmx.com")
	config.Email.InternalTo = getEnv("EMAIL_TO_INTERNAL", "coach@colemanmx.com")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
