package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host           string `validate:"required"`
	Port           int    `validate:"min=1,max=65535"`
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	Environment    string `validate:"oneof=development production test"`
	MaxUploadBytes int64  `validate:"min=1024,max=524288000"`
	// CORSOrigins lists allowed browser origins; "*" allows any
	CORSOrigins []string `validate:"min=1,dive,required"`
}

func serverFrom(lookup func(string) string) ServerConfig {
	return ServerConfig{
		Host:           getOrDefault(lookup, "HOST", DefaultHost),
		Port:           getIntOrDefault(lookup, "PORT", DefaultPort),
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		IdleTimeout:    DefaultIdleTimeout,
		Environment:    getOrDefault(lookup, "BRIEFLY_ENV", "development"),
		MaxUploadBytes: DefaultMaxUploadBytes,
		CORSOrigins:    getListOrDefault(lookup, "CORS_ORIGINS", []string{"*"}),
	}
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

func getOrDefault(lookup func(string) string, key, defaultValue string) string {
	if value := lookup(key); value != "" {
		return value
	}
	return defaultValue
}

// getListOrDefault splits a comma separated value, dropping blanks
func getListOrDefault(lookup func(string) string, key string, defaultValue []string) []string {
	values := lo.Compact(lo.Map(strings.Split(lookup(key), ","), func(v string, _ int) string {
		return strings.TrimSpace(v)
	}))
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

func getIntOrDefault(lookup func(string) string, key string, defaultValue int) int {
	if value := lookup(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		return -1
	}
	return defaultValue
}
