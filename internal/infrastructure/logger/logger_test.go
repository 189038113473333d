package logger_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/config"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/logger"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"explicit warn", "warn", zerolog.WarnLevel},
		{"uppercase", "DEBUG", zerolog.DebugLevel},
		{"blank falls back to info", "", zerolog.InfoLevel},
		{"unknown falls back to info", "loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(&config.Config{
				ServiceName: "chat-api",
				Environment: "test",
				LogLevel:    tt.level,
			})
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
