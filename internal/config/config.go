package config

import (
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type AIConfig struct {
	Endpoint string
	APIKey   string
	Model    string
}

type Config struct {
	DatabaseURL string
	FrontendURL string
	MemorialURL string
	R2          R2Config
	Stripe      StripeConfig
	AI          AIConfig
	JWTSecret   string
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	cfg.MemorialURL = os.Getenv("MEMORIAL_BASE_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	cfg.AI.Endpoint = os.Getenv("AI_LETTER_ENDPOINT")
	cfg.AI.APIKey = os.Getenv("AI_LETTER_API_KEY")
	cfg.AI.Model = os.Getenv("AI_LETTER_MODEL")

	return cfg
}
