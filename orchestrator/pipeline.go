package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/veracity-pipeline/capture"
	"github.com/maastricht-university/veracity-pipeline/clients"
	cfg "github.com/maastricht-university/veracity-pipeline/config"
	"github.com/maastricht-university/veracity-pipeline/history"
	"github.com/maastricht-university/veracity-pipeline/scoring"
)

// Saver stores classification results.
type Saver interface {
	Save(ctx context.Context, r history.Record) error
}

// Devices are the capture backends of a pipeline.
type Devices struct {
	Camera     capture.Camera
	Microphone capture.Microphone
	Frames     capture.FrameReader
}

type Pipeline struct {
	cfg      *cfg.Root
	http     *clients.HTTP
	engine   *scoring.Engine
	recorder *capture.Recorder
	frames   capture.FrameReader
	store    Saver
	log      logrus.FieldLogger
}

type Option func(*Pipeline)

func WithHTTP(h *clients.HTTP) Option { return func(p *Pipeline) { p.http = h } }

// WithStore saves every result to s.
func WithStore(s Saver) Option { return func(p *Pipeline) { p.store = s } }

func WithLogger(l logrus.FieldLogger) Option { return func(p *Pipeline) { p.log = l } }

func NewPipeline(c *cfg.Root, dev Devices, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    c,
		http:   clients.NewHTTP(),
		engine: scoring.NewEngine(scoring.DefaultModel()),
		frames: dev.Frames,
		log:    logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(p)
	}
	p.recorder = capture.NewRecorder(c.Capture, dev.Camera, dev.Microphone, p.log)
	return p
}

// Run records a clip, extracts the three signals and classifies them.
// A sensor failure aborts the run; every other failure degrades to a default
// signal or an Unknown result. Recorded media is removed on every path.
func (p *Pipeline) Run(ctx context.Context) (*Session, error) {
	s := &Session{ID: "session_" + uuid.NewString(), StartedAt: time.Now()}
	log := p.log.WithField("session", s.ID)

	work, err := os.MkdirTemp(p.cfg.Paths.Work, "veracity-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		log.Debug("cleaning up media files")
		if err := os.RemoveAll(work); err != nil {
			log.WithError(err).Warn("error removing media files")
		}
	}()

	videoPath := filepath.Join(work, "output.avi")
	audioPath := filepath.Join(work, "output.wav")

	rec, err := p.recorder.Record(ctx, videoPath, audioPath)
	if err != nil {
		return nil, err
	}
	s.Frames = rec.Frames
	s.Recorded = rec.Elapsed

	log.Info("extracting audio features")
	sig := Signals{Audio: p.audioSignal(audioPath)}

	frame, err := p.firstFrame(videoPath)
	if err != nil {
		return nil, err
	}

	log.Info("analyzing facial emotions")
	sig.Facial = p.facial(ctx, frame)

	log.Info("analyzing body language")
	sig.Body = p.bodySignal(ctx, frame)

	s.Result = p.engine.Predict(sig.Facial, sig.Body, sig.Audio)
	s.GeneratedAt = time.Now()
	log.WithFields(logrus.Fields{
		"label": s.Result.Label,
		"final": s.Result.FinalScore,
	}).Info("prediction complete")

	if p.cfg.Paths.Outputs != "" {
		path, err := persist(p.cfg.Paths.Outputs, s)
		if err != nil {
			log.WithError(err).Warn("could not write session bundle")
		} else {
			s.ResultPath = path
		}
	}
	if p.store != nil {
		if err := p.store.Save(ctx, history.NewRecord("run", s.Result)); err != nil {
			log.WithError(err).Warn("could not save result history")
		}
	}
	return s, nil
}
