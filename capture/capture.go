// Package capture records a fixed-duration clip from a camera and a
// microphone.
//
// Video and audio are read strictly in turn from a single loop: one frame,
// then one audio chunk, until the duration elapses. Backends live in the
// opencv and mic subpackages; the mocks in this package stand in for them in
// tests and dry runs.
package capture

import (
	"errors"
	"time"
)

// ErrSensorFailure means a camera or microphone could not deliver data.
// It aborts the pipeline.
var ErrSensorFailure = errors.New("sensor failure")

// Camera grabs frames from a device and appends them to a video file.
type Camera interface {
	// Open starts the device and the video file writer.
	Open(videoPath string) error
	// Grab reads one frame and writes it to the video file.
	Grab() error
	Close() error
}

// Microphone reads interleaved PCM16 chunks.
type Microphone interface {
	Open() error
	Read() ([]int16, error)
	Format() Format
	Close() error
}

// FrameReader extracts the still frame the classifiers look at.
type FrameReader interface {
	// FirstFrame returns the first frame of a recorded video as JPEG.
	FirstFrame(videoPath string) ([]byte, error)
}

// Format describes the audio stream.
type Format struct {
	SampleRate int
	Channels   int
}

// Config holds capture settings.
type Config struct {
	Duration    time.Duration `mapstructure:"duration" yaml:"duration"`
	Width       int           `mapstructure:"width" yaml:"width"`
	Height      int           `mapstructure:"height" yaml:"height"`
	FPS         float64       `mapstructure:"fps" yaml:"fps"`
	Codec       string        `mapstructure:"codec" yaml:"codec"`
	DeviceID    int           `mapstructure:"device_id" yaml:"device_id"`
	SampleRate  int           `mapstructure:"sample_rate" yaml:"sample_rate"`
	Channels    int           `mapstructure:"channels" yaml:"channels"`
	ChunkFrames int           `mapstructure:"chunk_frames" yaml:"chunk_frames"`
	Backend     string        `mapstructure:"backend" yaml:"backend"`
}

const (
	BackendDevice = "device"
	BackendMock   = "mock"
)

func DefaultConfig() Config {
	return Config{
		Duration:    10 * time.Second,
		Width:       640,
		Height:      480,
		FPS:         20,
		Codec:       "XVID",
		DeviceID:    0,
		SampleRate:  44100,
		Channels:    1,
		ChunkFrames: 2048,
		Backend:     BackendDevice,
	}
}

// Recording describes what Record captured.
type Recording struct {
	VideoPath string
	AudioPath string
	Frames    int
	Chunks    int
	Elapsed   time.Duration
}
