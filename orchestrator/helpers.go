package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/maastricht-university/veracity-pipeline/audio"
	"github.com/maastricht-university/veracity-pipeline/capture"
	"github.com/maastricht-university/veracity-pipeline/scoring"
)

func (p *Pipeline) audioSignal(wavPath string) scoring.Signal {
	s := audio.Energy(wavPath)
	if s.Failed() {
		p.log.WithError(s.Err).Warn("audio feature extraction failed, using 0")
	}
	return s
}

// facial returns nil when the classifier produced nothing usable.
func (p *Pipeline) facial(ctx context.Context, frame []byte) scoring.EmotionDistribution {
	url := p.cfg.Services.Emotion.URL
	if url == "" {
		p.log.Warn("emotion service not configured")
		return nil
	}
	resp, err := p.http.Emotion(ctx, url, frame)
	if err != nil {
		p.log.WithError(err).Warn("facial emotion analysis failed")
		return nil
	}
	d, err := resp.Distribution()
	if err != nil {
		p.log.WithError(err).Warn("facial emotion analysis failed")
		return nil
	}
	p.log.WithField("dominant", resp.DominantEmotion).Debug("facial emotion analysis result")
	return d
}

func (p *Pipeline) bodySignal(ctx context.Context, frame []byte) scoring.Signal {
	url := p.cfg.Services.Pose.URL
	if url == "" {
		return scoring.Failed(fmt.Errorf("pose service not configured"))
	}
	resp, err := p.http.Pose(ctx, url, frame)
	if err == nil {
		var score float64
		if score, err = resp.BodyLanguage(); err == nil {
			return scoring.Ok(score)
		}
	}
	p.log.WithError(err).Warn("body language analysis failed, using 0")
	return scoring.Failed(err)
}

func (p *Pipeline) firstFrame(videoPath string) ([]byte, error) {
	frame, err := p.frames.FirstFrame(videoPath)
	if errors.Is(err, capture.ErrSensorFailure) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("read video frame: %v: %w", err, capture.ErrSensorFailure)
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("read video frame: empty: %w", capture.ErrSensorFailure)
	}
	return frame, nil
}
