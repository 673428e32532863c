package configs

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// A missing .env file is fine, variables can come from the environment
	// directly.
	_ = godotenv.Load()
}

func EnvMongoURI() string {
	if uri := os.Getenv("MONGOURI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func EnvDBName() string {
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "shopkart"
}

func EnvJWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

func EnvPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "5000"
}

func EnvAppEnv() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
