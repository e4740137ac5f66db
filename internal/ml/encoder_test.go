package ml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicEncoderAssignsDenseCodes(t *testing.T) {
	encoder := FitTopicEncoder([]string{"Biology", "Algebra", "Biology", "Chemistry"})

	require.Equal(t, 3, encoder.Len())
	require.Equal(t, 0, encoder.Encode("Algebra"))
	require.Equal(t, 1, encoder.Encode("Biology"))
	require.Equal(t, 2, encoder.Encode("Chemistry"))
}

func TestTopicEncoderDeterministicAcrossInputOrder(t *testing.T) {
	first := FitTopicEncoder([]string{"Algebra", "Geometry", "Biology"})
	second := FitTopicEncoder([]string{"Biology", "Algebra", "Geometry"})

	for _, topic := range []string{"Algebra", "Biology", "Geometry"} {
		require.Equal(t, first.Encode(topic), second.Encode(topic))
	}
}

func TestTopicEncoderStableAcrossRepeatedCalls(t *testing.T) {
	encoder := FitTopicEncoder([]string{"Algebra", "Geometry"})

	first := encoder.Encode("Algebra")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, encoder.Encode("Algebra"))
	}
}

func TestTopicEncoderUnknownTopicReturnsSentinel(t *testing.T) {
	encoder := FitTopicEncoder([]string{"Algebra"})

	require.Equal(t, UnknownTopicCode, encoder.Encode("Quantum Physics"))
}

func TestTopicEncoderIgnoresEmptyTopics(t *testing.T) {
	encoder := FitTopicEncoder([]string{"", "Algebra", ""})

	require.Equal(t, 1, encoder.Len())
	require.Equal(t, UnknownTopicCode, encoder.Encode(""))
}

func TestTopicEncoderNilReceiver(t *testing.T) {
	var encoder *TopicEncoder

	require.Equal(t, UnknownTopicCode, encoder.Encode("Algebra"))
	require.Equal(t, 0, encoder.Len())
}
