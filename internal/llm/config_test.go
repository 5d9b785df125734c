package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.InDelta(t, 0.1, config.Temperature, 1e-6)
}

func TestDefaultGroqConfig(t *testing.T) {
	config := DefaultConfigFor(ProviderGroq)

	assert.Equal(t, ProviderGroq, config.Provider)
	assert.Equal(t, GroqBaseURL, config.BaseURL)
	assert.Equal(t, 4000, config.MaxTokens)
	assert.NotEmpty(t, config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultGroqConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "llama-3.3-70b-versatile", config.GetModel(TierAdvanced))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "llama-3.1-8b-instant", newConfig.GetModel(TierLite))
	assert.Equal(t, config.BaseURL, newConfig.BaseURL)
	assert.Equal(t, config.MaxTokens, newConfig.MaxTokens)
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input   string
		want    Provider
		wantErr bool
	}{
		{input: "gemini", want: ProviderGemini},
		{input: " Groq ", want: ProviderGroq},
		{input: "openai", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewClient_KeyChecks(t *testing.T) {
	ctx := context.Background()

	_, err := NewClient(ctx, DefaultGeminiConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	_, err = NewClient(ctx, DefaultGroqConfig(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")

	_, err = NewClient(ctx, DefaultGroqConfig(), "sk-not-a-groq-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gsk_")

	_, err = NewClient(ctx, &Config{Provider: "anthropic"}, "key")
	assert.Error(t, err)
}

func TestNewClient_Groq(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultGroqConfig(), "gsk_test")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.IsType(t, &GroqClient{}, client)
	assert.Equal(t, "llama-3.3-70b-versatile", client.GetModel(TierStandard))
}
