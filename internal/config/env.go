package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds the process-level settings that live outside the search
// configuration file.
type Env struct {
	ConfigPath string

	KafkaBrokers []string
	KafkaTopic   string

	BotToken  string
	BotChatID int64
}

// LoadEnv reads the .env file if there is one and returns the settings found
// in the environment.
func LoadEnv() *Env {
	if err := godotenv.Load(); err != nil {
		log.Println("Env file is not found, using process environment")
	}

	return &Env{
		ConfigPath:   getEnv("HUNTER_CONFIG", "config.json"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "craigslist-listings"),
		BotToken:     os.Getenv("BOT_TOKEN"),
		BotChatID:    getEnvInt64("BOT_CHAT_ID", 0),
	}
}

func (e *Env) KafkaEnabled() bool {
	return len(e.KafkaBrokers) > 0
}

func (e *Env) BotEnabled() bool {
	return e.BotToken != "" && e.BotChatID != 0
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return n
		}
		log.Printf("Ignoring %s=%q: %v", key, val, err)
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
