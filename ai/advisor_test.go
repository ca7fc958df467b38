package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDataURI(t *testing.T) {
	assert.NoError(t, ValidateDataURI("data:image/png;base64,iVBORw0KGgo="))
	assert.NoError(t, ValidateDataURI("data:image/jpeg;base64,/9j/4AAQ"))

	assert.Error(t, ValidateDataURI(""))
	assert.Error(t, ValidateDataURI("https://example.com/cat.jpg"))
	assert.Error(t, ValidateDataURI("data:;base64,abcd"))
	assert.Error(t, ValidateDataURI("data:image/png;base64,"))
	assert.Error(t, ValidateDataURI("data:image/png,abcd"))
}

func TestParseBreedResponse(t *testing.T) {
	result, err := parseBreedResponse(`{"identifiedBreed": "Golden Retriever", "confidence": 0.92}`)
	require.NoError(t, err)
	assert.Equal(t, "Golden Retriever", result.IdentifiedBreed)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
}

func TestParseBreedResponseCodeFence(t *testing.T) {
	answer := "```json\n{\"identifiedBreed\": \"Siamese\", \"confidence\": 0.85}\n```"
	result, err := parseBreedResponse(answer)
	require.NoError(t, err)
	assert.Equal(t, "Siamese", result.IdentifiedBreed)
}

func TestParseBreedResponseSurroundingText(t *testing.T) {
	answer := "Here is my answer:\n{\"identifiedBreed\": \"Beagle\", \"confidence\": 1.4}\nHope that helps."
	result, err := parseBreedResponse(answer)
	require.NoError(t, err)
	assert.Equal(t, "Beagle", result.IdentifiedBreed)
	// Уверенность зажимается в [0, 1].
	assert.Equal(t, 1.0, result.Confidence)
}

func TestParseBreedResponseInvalid(t *testing.T) {
	_, err := parseBreedResponse("I cannot identify the breed.")
	assert.Error(t, err)

	_, err = parseBreedResponse(`{"confidence": 0.5}`)
	assert.Error(t, err)
}
