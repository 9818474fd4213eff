package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONRoundTrip(t *testing.T) {
	metadata := &Metadata{
		Source:    "https://example.com/job",
		Kind:      KindHTML,
		Platform:  "lever",
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Chars:     12,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"kind": "html"`)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
}

func TestMetadata_OmitsEmptyFields(t *testing.T) {
	jsonBytes, err := (&Metadata{Timestamp: "t", Hash: "h"}).ToJSON()
	require.NoError(t, err)

	assert.NotContains(t, string(jsonBytes), "source")
	assert.NotContains(t, string(jsonBytes), "platform")
	assert.NotContains(t, string(jsonBytes), "rendered")
}

func TestNewMetadata(t *testing.T) {
	metadata := NewMetadata("héllo", "resume.txt")

	assert.Equal(t, "resume.txt", metadata.Source)
	assert.Equal(t, 5, metadata.Chars)
	assert.Len(t, metadata.Hash, 64)

	ts, err := time.Parse(time.RFC3339, metadata.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestComputeHash(t *testing.T) {
	// sha256("")
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", computeHash(""))
	assert.Equal(t, computeHash("same"), computeHash("same"))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
}
