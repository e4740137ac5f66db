package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlexFloatDecodesNumbersAndStrings(t *testing.T) {
	var payload struct {
		Plain  FlexFloat `json:"plain"`
		Quoted FlexFloat `json:"quoted"`
	}

	raw := `{"plain": 42.5, "quoted": "17.25"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, 42.5, payload.Plain.Float64())
	require.Equal(t, 17.25, payload.Quoted.Float64())
}

func TestFlexFloatMalformedDefaultsToZero(t *testing.T) {
	var payload struct {
		Bad  FlexFloat `json:"bad"`
		Null FlexFloat `json:"null"`
	}

	raw := `{"bad": "seventy", "null": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, 0.0, payload.Bad.Float64())
	require.Equal(t, 0.0, payload.Null.Float64())
}

func TestFlexFloatNilPointer(t *testing.T) {
	var f *FlexFloat
	require.Equal(t, 0.0, f.Float64())
}

func TestFlexStringDecodesStringsAndNumbers(t *testing.T) {
	var payload struct {
		Plain  FlexString `json:"plain"`
		Number FlexString `json:"number"`
	}

	raw := `{"plain": "q-101", "number": 3412}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	require.Equal(t, FlexString("q-101"), payload.Plain)
	require.Equal(t, FlexString("3412"), payload.Number)
}

func TestHistoricalEntryScoreFallbacks(t *testing.T) {
	var entries []HistoricalEntry
	raw := `[
		{"quiz": {"topic": "Algebra"}, "score": 60, "final_score": "72"},
		{"quiz": {"topic": "Biology"}, "score": 40}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))

	require.Equal(t, 72.0, entries[0].FinalScoreValue())
	require.Equal(t, 40.0, entries[1].FinalScoreValue())
	require.Equal(t, 40.0, entries[1].ScoreValue())
}
