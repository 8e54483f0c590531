package scoring

import "fmt"

// Labels of a classification.
const (
	LabelLie     = "Lie"
	LabelTruth   = "Truth"
	LabelUnknown = "Unknown"
)

// FacialFailureExplanation is the explanation of an Unknown result.
const FacialFailureExplanation = "Facial emotion analysis failed. No data available."

// Signal names reported in Result.FailedSignals.
const (
	SignalFacial = "facial_emotion"
	SignalBody   = "body_language"
	SignalAudio  = "audio"
)

// Model holds the fixed weights and decision boundary.
type Model struct {
	Emotions  EmotionWeights
	Facial    float64
	Body      float64
	Audio     float64
	Threshold float64
}

func DefaultModel() Model {
	return Model{
		Emotions:  defaultEmotionWeights(),
		Facial:    0.4,
		Body:      0.4,
		Audio:     0.2,
		Threshold: 0.5,
	}
}

// Result is a single classification. It is built once by Predict.
type Result struct {
	Label                   string              `json:"label" yaml:"label"`
	Explanation             string              `json:"explanation" yaml:"explanation"`
	FacialEmotionScore      float64             `json:"facial_emotion_score" yaml:"facial_emotion_score"`
	BodyLanguageScore       float64             `json:"body_language_score" yaml:"body_language_score"`
	AudioScore              float64             `json:"audio_score" yaml:"audio_score"`
	FinalScore              float64             `json:"final_score" yaml:"final_score"`
	BodyLanguageDescription string              `json:"body_language_description,omitempty" yaml:"body_language_description,omitempty"`
	AudioDescription        string              `json:"audio_description,omitempty" yaml:"audio_description,omitempty"`
	Normalized              EmotionDistribution `json:"normalized_emotions,omitempty" yaml:"normalized_emotions,omitempty"`
	FailedSignals           []string            `json:"failed_signals,omitempty" yaml:"failed_signals,omitempty"`
}

// Engine combines facial, body-language and audio signals into a label.
// It has no mutable state and is safe for concurrent use.
type Engine struct {
	model Model
}

func NewEngine(m Model) *Engine { return &Engine{model: m} }

// Predict classifies one set of signals. It never fails: invalid facial data
// yields an Unknown result and failed scalar signals count as 0.
func (e *Engine) Predict(facial EmotionDistribution, body, audio Signal) Result {
	var failed []string
	if body.Failed() {
		failed = append(failed, SignalBody)
	}
	if audio.Failed() {
		failed = append(failed, SignalAudio)
	}

	agg, err := e.model.Emotions.Aggregate(facial)
	if err != nil {
		return Result{
			Label:         LabelUnknown,
			Explanation:   FacialFailureExplanation,
			FailedSignals: append([]string{SignalFacial}, failed...),
		}
	}

	b, a := body.Score(), audio.Score()
	final := agg.Score*e.model.Facial + b*e.model.Body + a*e.model.Audio

	label := LabelTruth
	if final > e.model.Threshold {
		label = LabelLie
	}

	return Result{
		Label:                   label,
		Explanation:             explain(label, agg.Score, b, a),
		FacialEmotionScore:      agg.Score,
		BodyLanguageScore:       b,
		AudioScore:              a,
		FinalScore:              final,
		BodyLanguageDescription: Describe(b, BodyLanguageBands),
		AudioDescription:        Describe(a, AudioBands),
		Normalized:              agg.Normalized,
		FailedSignals:           failed,
	}
}

// PredictAny is Predict for untyped inputs, e.g. decoded JSON.
func (e *Engine) PredictAny(facial, body, audio any) Result {
	d, err := ParseEmotionDistribution(facial)
	if err != nil {
		d = nil
	}
	return e.Predict(d, CoerceSignal(body), CoerceSignal(audio))
}

func explain(label string, facial, body, audio float64) string {
	return fmt.Sprintf(
		"Prediction: %s. Facial emotion score: %.2f, Body language score: %.2f, Audio features score: %.2f.",
		label, facial, body, audio,
	)
}
