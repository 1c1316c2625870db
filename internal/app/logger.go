package app

import (
	"service-driver/internal/config"
	"service-driver/internal/logx"
)

// NewLogger returns a JSON logger writing to stdout at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.New(cfg.LogLevel).With(logx.String("service", "service-driver"))
}
