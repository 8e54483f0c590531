package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScalar(t *testing.T) {
	tests := []struct {
		name         string
		raw, divisor float64
		want         float64
	}{
		{"audio mid", 0.25, AudioEnergyScale, 0.5},
		{"audio over", 0.9, AudioEnergyScale, 1},
		{"body ratio", 1.5, BodyRatioScale, 0.75},
		{"negative", -0.3, BodyRatioScale, 0},
		{"zero divisor", 1, 0, 0},
		{"nan", math.NaN(), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Normalize(tt.raw, tt.divisor), 1e-9)
		})
	}
}

func TestBodyLanguageScore(t *testing.T) {
	ls, rs := Point{0.3, 0.3}, Point{0.7, 0.3}
	lh, rh := Point{0.4, 0.7}, Point{0.6, 0.7}

	assert.InDelta(t, 2.0, BodyLanguageRatio(ls, rs, lh, rh), 1e-3)
	assert.InDelta(t, 1.0, BodyLanguageScore(ls, rs, lh, rh), 1e-3)

	// coincident hips do not divide by zero
	assert.Equal(t, 1.0, BodyLanguageScore(ls, rs, lh, lh))
}

func TestCoerceSignal(t *testing.T) {
	assert.Equal(t, Ok(0.5), CoerceSignal(0.5))
	assert.Equal(t, Ok(2), CoerceSignal(2))
	assert.Equal(t, Ok(0.25), CoerceSignal(json.Number("0.25")))

	for _, v := range []any{"bad", nil, true, math.NaN(), json.Number("x")} {
		s := CoerceSignal(v)
		assert.True(t, s.Failed(), "%v", v)
		assert.ErrorIs(t, s.Err, ErrInvalidScalarInput)
		assert.Zero(t, s.Score())
	}
}

func TestParseSignal(t *testing.T) {
	assert.Equal(t, 0.9, ParseSignal("0.9").Score())
	assert.True(t, ParseSignal("bad").Failed())
	assert.True(t, ParseSignal("NaN").Failed())
}
