package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Webhook  WebhookConfig
	Merchant MerchantConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	AdminTo  string
}

type WebhookConfig struct {
	// HMAC secret shared with the payment gateway. Empty disables
	// signature verification (local development only).
	Secret string
}

type MerchantConfig struct {
	UPIID             string
	Name              string
	BankName          string
	BankAccountNumber string
	BankIFSCCode      string
	BankAccountName   string
	WhatsappNumber    string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 720) // 30 days
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("MERCHANT_UPI_ID", "karasaaram@paytm")
	viper.SetDefault("MERCHANT_NAME", "Kara-Saaram")

	if err := viper.ReadInConfig(); err != nil {
		// Missing .env is fine when everything comes from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("APP_NAME"),
			Port:        viper.GetString("PORT"),
			Debug:       viper.GetBool("DEBUG"),
			LogPath:     viper.GetString("LOG_PATH"),
			FrontendURL: viper.GetString("FRONTEND_URL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: viper.GetString("EMAIL_FROM_NAME"),
			AdminTo:  viper.GetString("ADMIN_EMAIL"),
		},
		Webhook: WebhookConfig{
			Secret: viper.GetString("WEBHOOK_SECRET"),
		},
		Merchant: MerchantConfig{
			UPIID:             viper.GetString("MERCHANT_UPI_ID"),
			Name:              viper.GetString("MERCHANT_NAME"),
			BankName:          viper.GetString("BANK_NAME"),
			BankAccountNumber: viper.GetString("BANK_ACCOUNT_NUMBER"),
			BankIFSCCode:      viper.GetString("BANK_IFSC_CODE"),
			BankAccountName:   viper.GetString("BANK_ACCOUNT_NAME"),
			WhatsappNumber:    viper.GetString("WHATSAPP_NUMBER"),
		},
	}

	return config, nil
}
