package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{name: "ISO completo", value: "2024-03-15T14:30:00Z", expected: time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)},
		{name: "Com fração de segundo", value: "2024-03-15T14:30:00.250Z", expected: time.Date(2024, 3, 15, 14, 30, 0, 250000000, time.UTC)},
		{name: "Apenas a data", value: "2024-03-15", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "Vazio vira instante zero", value: ""},
		{name: "Formato desconhecido", value: "15/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "esperado %s, obtido %s", tt.expected, got)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	assert.Equal(t, "2024-03-15T17:30:00Z", FormatTimestamp(time.Date(2024, 3, 15, 14, 30, 0, 0, loc)))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	got := StartOfDay(time.Date(2024, 3, 15, 23, 59, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, loc), got)
}
