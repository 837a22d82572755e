package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewUserError("could not save ledger", cause)

	assert.Equal(t, "could not save ledger: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not save ledger", UserMessage(fmt.Errorf("wrapped: %w", err)))
}

func TestUserError_NoCause(t *testing.T) {
	err := NewUserError("nothing to do", nil)
	assert.Equal(t, "nothing to do", err.Error())
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "WARN", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

		LogInfo("ledger saved", Fields{"count": 3})
		LogDebug("hidden", nil)

		out := buf.String()
		assert.Contains(t, out, `"msg":"ledger saved"`)
		assert.Contains(t, out, `"count":3`)
		assert.NotContains(t, out, "hidden")
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, SetupLogger(&buf, slog.LevelDebug, "console"))

		LogError(errors.New("disk full"), "save failed", Fields{"path": "finance.txt"})

		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, `error="disk full"`)
		assert.Contains(t, out, "path=finance.txt")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := SetupLogger(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
