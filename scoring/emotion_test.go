package scoring

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullDistribution(happy, neutral, sad, angry, fear, surprise, disgust float64) EmotionDistribution {
	return EmotionDistribution{
		Happy: happy, Neutral: neutral, Sad: sad, Angry: angry,
		Fear: fear, Surprise: surprise, Disgust: disgust,
	}
}

func TestNormalize_SumsToOne(t *testing.T) {
	tests := []EmotionDistribution{
		fullDistribution(80, 10, 5, 5, 0, 0, 0),
		fullDistribution(1, 1, 1, 1, 1, 1, 1),
		fullDistribution(0.001, 0, 0, 0, 0, 0, 0),
		fullDistribution(12.5, 3.25, 99, 0.5, 7, 42, 1e-3),
	}
	for _, d := range tests {
		norm := d.Normalize()
		sum := 0.0
		for _, v := range norm {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
		assert.Len(t, norm, len(EmotionLabels))
	}
}

func TestNormalize_ZeroTotal(t *testing.T) {
	norm := fullDistribution(0, 0, 0, 0, 0, 0, 0).Normalize()
	for _, l := range EmotionLabels {
		assert.Zero(t, norm[l], l)
	}
}

func TestAggregate_WeightedScore(t *testing.T) {
	agg, err := Aggregate(fullDistribution(80, 10, 5, 5, 0, 0, 0))
	require.NoError(t, err)
	// 0.5*0.8 + 0.3*0.1 - 0.4*0.05 - 0.5*0.05
	assert.InDelta(t, 0.385, agg.Score, 1e-9)
	assert.InDelta(t, 0.8, agg.Normalized[Happy], 1e-9)
}

func TestAggregate_NotClamped(t *testing.T) {
	agg, err := Aggregate(fullDistribution(0, 0, 0, 1, 0, 0, 0))
	require.NoError(t, err)
	assert.InDelta(t, -0.5, agg.Score, 1e-9)
}

func TestAggregate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		d    EmotionDistribution
	}{
		{"nil", nil},
		{"empty", EmotionDistribution{}},
		{"missing label", EmotionDistribution{Happy: 1, Sad: 1}},
		{"unknown label", func() EmotionDistribution {
			d := fullDistribution(1, 1, 1, 1, 1, 1, 1)
			d["contempt"] = 1
			return d
		}()},
		{"negative", fullDistribution(-1, 1, 1, 1, 1, 1, 1)},
		{"nan", fullDistribution(math.NaN(), 1, 1, 1, 1, 1, 1)},
		{"inf", fullDistribution(math.Inf(1), 1, 1, 1, 1, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(tt.d)
			assert.ErrorIs(t, err, ErrInvalidEmotionData)
		})
	}
}

func TestParseEmotionDistribution(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"angry":1,"disgust":0,"fear":0,"happy":3,"sad":0,"surprise":0,"neutral":1}`), &decoded))

	d, err := ParseEmotionDistribution(decoded)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d[Happy])

	_, err = ParseEmotionDistribution(map[string]any{"happy": "lots"})
	assert.ErrorIs(t, err, ErrInvalidEmotionData)

	_, err = ParseEmotionDistribution(nil)
	assert.ErrorIs(t, err, ErrInvalidEmotionData)

	_, err = ParseEmotionDistribution([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidEmotionData)

	_, err = ParseEmotionDistribution(json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrInvalidEmotionData)
}
