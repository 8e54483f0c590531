package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type Recorder struct {
	cfg Config
	cam Camera
	mic Microphone
	log logrus.FieldLogger
	now func() time.Time
}

func NewRecorder(cfg Config, cam Camera, mic Microphone, log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{cfg: cfg, cam: cam, mic: mic, log: log, now: time.Now}
}

// Record captures video into videoPath and audio into audioPath. Device
// handles are released before it returns, on every path.
func (r *Recorder) Record(ctx context.Context, videoPath, audioPath string) (*Recording, error) {
	if err := r.cam.Open(videoPath); err != nil {
		r.cam.Close()
		return nil, fmt.Errorf("open camera: %v: %w", err, ErrSensorFailure)
	}
	defer r.cam.Close()

	if err := r.mic.Open(); err != nil {
		r.mic.Close()
		return nil, fmt.Errorf("open microphone: %v: %w", err, ErrSensorFailure)
	}
	defer r.mic.Close()

	r.log.WithField("duration", r.cfg.Duration).Info("recording video and audio")

	rec := &Recording{VideoPath: videoPath, AudioPath: audioPath}
	var samples []int16
	start := r.now()

	for {
		if err := ctx.Err(); err != nil {
			r.log.WithError(err).Warn("recording interrupted")
			break
		}
		if err := r.cam.Grab(); err != nil {
			r.log.WithError(err).Warn("failed to capture video frame")
			break
		}
		rec.Frames++

		chunk, err := r.mic.Read()
		if err != nil {
			r.log.WithError(err).Warn("audio recording error")
			break
		}
		samples = append(samples, chunk...)
		rec.Chunks++

		if r.now().Sub(start) > r.cfg.Duration {
			break
		}
	}
	rec.Elapsed = r.now().Sub(start)

	if rec.Frames == 0 {
		return nil, fmt.Errorf("no video frames captured: %w", ErrSensorFailure)
	}

	if err := WriteWAV(audioPath, samples, r.mic.Format()); err != nil {
		return nil, fmt.Errorf("save audio: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"frames":  rec.Frames,
		"chunks":  rec.Chunks,
		"elapsed": rec.Elapsed.Round(time.Millisecond),
	}).Info("finished recording")
	return rec, nil
}
