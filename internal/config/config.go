package config

import (
	"os"
	"strconv"
	"time"

	"ticketchain/internal/cache"
	"ticketchain/internal/database"
	"ticketchain/internal/external"
	"ticketchain/internal/messaging"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Identity леджера: администратор и метаданные
	Admin        string
	LedgerName   string
	LedgerSymbol string

	Database database.Config
	NATS     messaging.Config
	Redis    cache.Config
	Payout   external.PayoutConfig
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Admin:        getEnv("LEDGER_ADMIN", "admin"),
		LedgerName:   getEnv("LEDGER_NAME", "TicketChain"),
		LedgerSymbol: getEnv("LEDGER_SYMBOL", "TC"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "ticketchain"),
			Password:           getEnv("DB_PASSWORD", "ticketchain123"),
			DBName:             getEnv("DB_NAME", "ticketchain"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "ticketchain"),
			ClientID:  getEnv("NATS_CLIENT_ID", "ticketchain-api"),
		},

		Redis: cache.Config{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			TTL:      time.Duration(getEnvInt("REDIS_CACHE_TTL_SEC", 60)) * time.Second,
		},

		Payout: external.PayoutConfig{
			BaseURL:  getEnv("PAYOUT_GATEWAY_URL", ""),
			Account:  getEnv("PAYOUT_ACCOUNT", ""),
			Password: getEnv("PAYOUT_PASSWORD", ""),
			Timeout:  time.Duration(getEnvInt("PAYOUT_TIMEOUT_SEC", 30)) * time.Second,
		},
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
