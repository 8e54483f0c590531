package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Emotion labels produced by the face classifier.
const (
	Angry    = "angry"
	Disgust  = "disgust"
	Fear     = "fear"
	Happy    = "happy"
	Sad      = "sad"
	Surprise = "surprise"
	Neutral  = "neutral"
)

// EmotionLabels is the fixed label set in a stable order.
var EmotionLabels = []string{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// EmotionDistribution maps an emotion label to a raw, non-negative score.
// A nil distribution means the classifier produced nothing.
type EmotionDistribution map[string]float64

// EmotionWeights is the contribution of each normalized emotion to the facial score.
type EmotionWeights map[string]float64

func defaultEmotionWeights() EmotionWeights {
	return EmotionWeights{
		Happy:    0.5,
		Neutral:  0.3,
		Surprise: 0.1,
		Sad:      -0.4,
		Angry:    -0.5,
		Fear:     -0.3,
		Disgust:  -0.4,
	}
}

// Aggregation is the outcome of Aggregate.
type Aggregation struct {
	Normalized EmotionDistribution
	Score      float64
}

// Validate checks that d holds exactly the known labels with finite,
// non-negative values.
func (d EmotionDistribution) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty distribution", ErrInvalidEmotionData)
	}
	for _, l := range EmotionLabels {
		if _, ok := d[l]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidEmotionData, l)
		}
	}
	if len(d) != len(EmotionLabels) {
		return fmt.Errorf("%w: unexpected labels %v", ErrInvalidEmotionData, d.unknownLabels())
	}
	for l, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidEmotionData, l, v)
		}
	}
	return nil
}

func (d EmotionDistribution) unknownLabels() []string {
	known := map[string]bool{}
	for _, l := range EmotionLabels {
		known[l] = true
	}
	var out []string
	for l := range d {
		if !known[l] {
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// Normalize rescales d so its values sum to 1. An all-zero distribution stays
// all zero.
func (d EmotionDistribution) Normalize() EmotionDistribution {
	total := 0.0
	for _, l := range EmotionLabels {
		total += d[l]
	}
	out := make(EmotionDistribution, len(EmotionLabels))
	for _, l := range EmotionLabels {
		if total > 0 {
			out[l] = d[l] / total
		} else {
			out[l] = 0
		}
	}
	return out
}

// Aggregate validates and normalizes d, then computes the weighted facial
// emotion score. The score is not clamped: it ranges over roughly [-0.5, 0.5]
// for a normalized input and is combined as-is by the engine.
func (w EmotionWeights) Aggregate(d EmotionDistribution) (Aggregation, error) {
	if err := d.Validate(); err != nil {
		return Aggregation{}, err
	}
	norm := d.Normalize()
	score := 0.0
	for _, l := range EmotionLabels {
		score += norm[l] * w[l]
	}
	return Aggregation{Normalized: norm, Score: score}, nil
}

// Aggregate uses the default emotion weights.
func Aggregate(d EmotionDistribution) (Aggregation, error) {
	return defaultEmotionWeights().Aggregate(d)
}

// ParseEmotionDistribution converts a decoded JSON value (or an already typed
// map) into an EmotionDistribution.
func ParseEmotionDistribution(v any) (EmotionDistribution, error) {
	switch m := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no data", ErrInvalidEmotionData)
	case EmotionDistribution:
		return m, m.Validate()
	case map[string]float64:
		d := EmotionDistribution(m)
		return d, d.Validate()
	case json.RawMessage:
		var raw any
		if err := json.Unmarshal(m, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEmotionData, err)
		}
		return ParseEmotionDistribution(raw)
	case map[string]any:
		d := make(EmotionDistribution, len(m))
		for k, raw := range m {
			s := CoerceSignal(raw)
			if s.Failed() {
				return nil, fmt.Errorf("%w: %s is not numeric", ErrInvalidEmotionData, k)
			}
			d[k] = s.Value
		}
		return d, d.Validate()
	default:
		return nil, fmt.Errorf("%w: unexpected %T", ErrInvalidEmotionData, v)
	}
}
