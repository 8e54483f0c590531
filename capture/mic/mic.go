// Package mic reads microphone audio through PortAudio.
package mic

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/maastricht-university/veracity-pipeline/capture"
)

// Microphone captures PCM16 from the default input device.
type Microphone struct {
	cfg    capture.Config
	buf    []int16
	stream *portaudio.Stream
	inited bool
}

func New(cfg capture.Config) *Microphone {
	return &Microphone{cfg: cfg}
}

func (m *Microphone) Format() capture.Format {
	return capture.Format{SampleRate: m.cfg.SampleRate, Channels: m.cfg.Channels}
}

func (m *Microphone) Open() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	m.inited = true

	m.buf = make([]int16, m.cfg.ChunkFrames*m.cfg.Channels)
	stream, err := portaudio.OpenDefaultStream(m.cfg.Channels, 0, float64(m.cfg.SampleRate), m.cfg.ChunkFrames, m.buf)
	if err != nil {
		return fmt.Errorf("open input stream: %w", err)
	}
	m.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("start input stream: %w", err)
	}
	return nil
}

// Read blocks until one chunk is available. Input overflows drop audio but
// are not errors.
func (m *Microphone) Read() ([]int16, error) {
	if m.stream == nil {
		return nil, errors.New("microphone not open")
	}
	if err := m.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
		return nil, err
	}
	out := make([]int16, len(m.buf))
	copy(out, m.buf)
	return out, nil
}

// Close stops the stream and terminates PortAudio. It is safe to call on a
// partially opened microphone.
func (m *Microphone) Close() error {
	var errs []error
	if m.stream != nil {
		_ = m.stream.Stop()
		errs = append(errs, m.stream.Close())
		m.stream = nil
	}
	if m.inited {
		errs = append(errs, portaudio.Terminate())
		m.inited = false
	}
	return errors.Join(errs...)
}

var _ capture.Microphone = (*Microphone)(nil)
