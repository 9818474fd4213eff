package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, DefaultEmbeddingModel, config.EmbeddingModel)
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

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierStandard, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierStandard))

	// Other tiers and the embedding model should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, DefaultEmbeddingModel, newConfig.GetEmbeddingModel())
}

func TestEmbeddingModel(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "text-embedding-004", config.GetEmbeddingModel())

	custom := config.WithEmbeddingModel("embedding-001")
	assert.Equal(t, "embedding-001", custom.GetEmbeddingModel())
	assert.Equal(t, "text-embedding-004", config.GetEmbeddingModel())

	empty := &Config{}
	assert.Equal(t, DefaultEmbeddingModel, empty.GetEmbeddingModel())
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
}

func TestProviderConstants(t *testing.T) {
	assert.Equal(t, Provider("gemini"), ProviderGemini)
}
