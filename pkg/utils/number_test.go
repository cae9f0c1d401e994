package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 1.01, RoundWithTwoDecimalPlace(1.005))
	assert.Equal(t, 129.9, RoundWithTwoDecimalPlace(129.899))
	assert.Equal(t, -2.35, RoundWithTwoDecimalPlace(-2.345))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		part     float64
		whole    float64
		expected float64
	}{
		{name: "Margem da blusa", part: 25, whole: 45, expected: 55.56},
		{name: "Meta atingida pela metade", part: 2500, whole: 5000, expected: 50},
		{name: "Acima do total", part: 6000, whole: 5000, expected: 120},
		{name: "Total zero", part: 10, whole: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Percent(tt.part, tt.whole))
		})
	}
}
