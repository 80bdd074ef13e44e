package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/agmi-labs/creative-engine/internal/llm/errors"
)

func TestForModel(t *testing.T) {
	cfg := Config{APIKey: "test-key"}

	tests := []struct {
		model    string
		provider string
	}{
		{model: "gpt-4o", provider: ProviderOpenAI},
		{model: "gpt-4o-mini", provider: ProviderOpenAI},
		{model: "o1-preview", provider: ProviderOpenAI},
		{model: "claude-sonnet-4-20250514", provider: ProviderAnthropic},
		{model: "gemini-2.0-flash", provider: ProviderGoogle},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			adapter, err := ForModel(context.Background(), tt.model, cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.provider, adapter.Name())
		})
	}

	t.Run("unknown model", func(t *testing.T) {
		_, err := ForModel(context.Background(), "llama-3-70b", cfg)
		require.ErrorIs(t, err, llmerrors.ErrUnknownModel)
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := ForModel(context.Background(), "gpt-4o", Config{})
		require.ErrorIs(t, err, llmerrors.ErrMissingAPIKey)
	})
}
