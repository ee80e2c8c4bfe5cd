package utils

import (
	"io"
	"log"
	"os"
)

const colorReset = "\033[0m"

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// text или json
	Format       string
	Output       io.Writer
	EnableColors bool
}

// InitLogger возвращает логгер приложения. В текстовом формате пишет файл и строку вызова
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[coursework] "
	flags := log.LstdFlags | log.LUTC
	if cfg.Format != "json" {
		flags |= log.Lshortfile
		if cfg.EnableColors {
			prefix = Colorize(prefix, "\033[36m")
		}
	}
	return log.New(cfg.Output, prefix, flags)
}

// DiscardLogger для тестов и утилит
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func Colorize(s, color string) string {
	return color + s + colorReset
}

var methodColors = map[string]string{
	"GET":    "\033[34m",
	"POST":   "\033[33m",
	"PUT":    "\033[36m",
	"PATCH":  "\033[32m",
	"DELETE": "\033[31m",
}

func MethodColor(method string) string {
	if c, ok := methodColors[method]; ok {
		return c
	}
	return "\033[37m"
}

// StatusColor: 5xx красный, 4xx желтый, 3xx голубой, 2xx зеленый
func StatusColor(status int) string {
	switch status / 100 {
	case 5:
		return "\033[31m"
	case 4:
		return "\033[33m"
	case 3:
		return "\033[36m"
	case 2:
		return "\033[32m"
	}
	return "\033[37m"
}
