package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("matchId", "EUW1_1").Msg("match deleted")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"matchId":"EUW1_1"`)
	assert.Contains(t, out, `"message":"match deleted"`)
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("hidden")
	Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestCallerAndChildLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Caller: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	child := With().Str("component", "monitor").Logger()
	child.Info().Msg("tick")

	out := buf.String()
	assert.Contains(t, out, `"component":"monitor"`)
	assert.Contains(t, out, `"caller":`)
	assert.Contains(t, out, "logger_test.go")
}
