package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port             string
	AllowedOrigin    string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	StoreLabel       string
	ReportTTLSeconds int
	SeedDemo         bool
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := strconv.Atoi(getEnv("REPORT_TTL_SECONDS", "30"))
	if err != nil || ttl < 1 {
		ttl = 30
	}
	seed, err := strconv.ParseBool(getEnv("SEED_DEMO", "true"))
	if err != nil {
		seed = true
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          redisDB,
		StoreLabel:       getEnv("STORE_LABEL", "front-counter"),
		ReportTTLSeconds: ttl,
		SeedDemo:         seed,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
