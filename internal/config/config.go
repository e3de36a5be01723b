package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	BotToken string

	// OpenAI
	OpenAIAPIKey string

	// Allow-list
	RegisteredUsersFile string

	// Health server
	Port string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		BotToken:            mustGetEnv("BOT_TOKEN"),
		OpenAIAPIKey:        mustGetEnv("OPENAI_API_KEY"),
		RegisteredUsersFile: getEnvOrDefault("REGISTERED_USERS_FILE", "./registered-users.json"),
		Port:                getEnvOrDefault("PORT", "8080"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}
