package logger

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/web-security-repos/codeql-client/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  hclog.Level
	}{
		{name: "defaults to info", want: hclog.Info},
		{name: "config level", level: "debug", want: hclog.Debug},
		{name: "env overrides config", env: "error", level: "debug", want: hclog.Error},
		{name: "unknown level", level: "verbose", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tt.env)
			cfg := &config.Config{Logger: config.Logger{Level: tt.level}}
			assert.Equal(t, tt.want, determineLogLevel(cfg))
		})
	}
}

func TestDetermineLogLevelNilConfig(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	assert.Equal(t, hclog.Info, determineLogLevel(nil))
}
