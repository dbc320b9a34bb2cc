package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodasandeepsai/task-manager/internal/advice"
	"github.com/bodasandeepsai/task-manager/internal/config"
)

func TestNewAdvisorConfigValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("nil logger rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewAdvisor(ctx, nil, config.LLMConfig{
			GeminiAPIKey: "key",
			ModelName:    "gemini-2.0-flash",
		})
		require.Error(t, err)
	})

	t.Run("empty API key rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewAdvisor(ctx, slog.Default(), config.LLMConfig{
			ModelName: "gemini-2.0-flash",
		})
		require.ErrorIs(t, err, advice.ErrInvalidConfig)
	})

	t.Run("empty model name rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewAdvisor(ctx, slog.Default(), config.LLMConfig{
			GeminiAPIKey: "key",
		})
		require.ErrorIs(t, err, advice.ErrInvalidConfig)
	})
}

func TestAdviseRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	a := &Advisor{logger: slog.Default()}

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := a.Advise(context.Background(), message)
		assert.ErrorIs(t, err, advice.ErrEmptyMessage)
	}
}
