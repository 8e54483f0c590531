package orchestrator

import (
	"time"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

// Session is the persisted outcome of one run. Media paths are not kept:
// recordings are deleted before Run returns.
type Session struct {
	ID          string         `json:"session_id" yaml:"session_id"`
	StartedAt   time.Time      `json:"started_at" yaml:"started_at"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Frames      int            `json:"frames" yaml:"frames"`
	Recorded    time.Duration  `json:"recorded_ns" yaml:"recorded_ns"`
	Result      scoring.Result `json:"result" yaml:"result"`
	ResultPath  string         `json:"-" yaml:"-"`
}

// Signals are the extracted inputs of one classification.
type Signals struct {
	Facial scoring.EmotionDistribution
	Body   scoring.Signal
	Audio  scoring.Signal
}
