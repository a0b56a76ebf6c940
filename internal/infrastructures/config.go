package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL         string
	REDIS_ADDRESS        string
	REDIS_PASSWORD       string
	IDENTITY_BASE_URL    string
	IDENTITY_SERVICE_KEY string
	APP_ENV              string
	PORT                 string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:         os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:        os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:       os.Getenv("REDIS_PASSWORD"),
		IDENTITY_BASE_URL:    os.Getenv("IDENTITY_BASE_URL"),
		IDENTITY_SERVICE_KEY: os.Getenv("IDENTITY_SERVICE_KEY"),
		APP_ENV:              os.Getenv("APP_ENV"),
		PORT:                 os.Getenv("PORT"),
	}

	if Config.PORT == "" {
		Config.PORT = "8080"
	}

	return Config
}

// IsDevelopment reports whether the app runs in development mode.
// A few handlers surface raw error detail only in this mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.APP_ENV == "development"
}
