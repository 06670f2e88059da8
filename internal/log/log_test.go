package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"crit", LevelCrit},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.EqualError(t, err, "invalid level: loud")
}

func TestModules(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	SetDefault(NewLogger(NewTextHandler(&buf, LevelTrace)))
	t.Cleanup(func() {
		SetDefault(prev)
		EnableModule(DecodeModule)
	})

	Trace(DecodeModule, "first", "opword", "0x4e71")
	assert.Contains(t, buf.String(), "level=trace")
	assert.Contains(t, buf.String(), "module=decode")
	assert.Contains(t, buf.String(), "opword=0x4e71")

	buf.Reset()
	DisableModule(DecodeModule)
	Trace(DecodeModule, "second")
	Debug(DecodeModule, "third")
	assert.Empty(t, buf.String())

	Info(DecodeModule, "fourth")
	assert.Contains(t, buf.String(), "msg=fourth")
}

func TestDiscardByDefault(t *testing.T) {
	l := NewLogger(DiscardHandler())
	assert.False(t, l.Enabled(context.Background(), LevelCrit))
}
