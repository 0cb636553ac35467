package engine

import (
	"os"
	"time"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят карта, характеристики
	// противников и все боевые броски: фиксированный сид дает
	// воспроизводимую сессию.
	Seed int64

	// Port - порт HTTP-сервера (env AS_PORT).
	Port string

	// TickInterval - период мирового тика (реген вне боя).
	TickInterval time.Duration
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	port := os.Getenv("AS_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Seed:         time.Now().UnixNano(),
		Port:         port,
		TickInterval: 2 * time.Second,
	}
}
