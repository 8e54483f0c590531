package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"time"
)

// MockCamera records nothing but counts frames. It writes an empty
// placeholder file at the video path so cleanup behaves as with a device.
type MockCamera struct {
	OpenErr error
	// FailAfter makes Grab fail once this many frames were grabbed (0 = never).
	FailAfter int

	Frames int
	Opened bool
	Closed int
}

func (m *MockCamera) Open(videoPath string) error {
	if m.OpenErr != nil {
		return m.OpenErr
	}
	if err := os.WriteFile(videoPath, nil, 0o600); err != nil {
		return err
	}
	m.Opened = true
	return nil
}

func (m *MockCamera) Grab() error {
	if !m.Opened {
		return errors.New("camera not open")
	}
	if m.FailAfter > 0 && m.Frames >= m.FailAfter {
		return errors.New("frame read failed")
	}
	m.Frames++
	return nil
}

func (m *MockCamera) Close() error {
	m.Closed++
	m.Opened = false
	return nil
}

// MockMicrophone generates silence or a sine wave.
type MockMicrophone struct {
	Fmt         Format
	ChunkFrames int
	Frequency   float64 // Hz, 0 = silence
	Amplitude   float64 // 0.0 to 1.0
	OpenErr     error
	ReadErr     error
	// Realtime makes Read block for the duration of one chunk, like a device.
	Realtime bool

	Closed int
	phase  float64
}

func NewMockMicrophone(cfg Config) *MockMicrophone {
	return &MockMicrophone{
		Fmt:         Format{SampleRate: cfg.SampleRate, Channels: cfg.Channels},
		ChunkFrames: cfg.ChunkFrames,
		Amplitude:   0.5,
	}
}

func (m *MockMicrophone) Open() error  { return m.OpenErr }
func (m *MockMicrophone) Format() Format { return m.Fmt }

func (m *MockMicrophone) Close() error {
	m.Closed++
	return nil
}

func (m *MockMicrophone) Read() ([]int16, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	ch := m.Fmt.Channels
	if ch <= 0 {
		ch = 1
	}
	if m.Realtime && m.Fmt.SampleRate > 0 {
		time.Sleep(time.Duration(m.ChunkFrames) * time.Second / time.Duration(m.Fmt.SampleRate))
	}
	out := make([]int16, m.ChunkFrames*ch)
	if m.Frequency == 0 || m.Fmt.SampleRate == 0 {
		return out, nil
	}
	step := 2 * math.Pi * m.Frequency / float64(m.Fmt.SampleRate)
	for i := 0; i < m.ChunkFrames; i++ {
		v := int16(m.Amplitude * 32767 * math.Sin(m.phase))
		for c := 0; c < ch; c++ {
			out[i*ch+c] = v
		}
		m.phase += step
	}
	return out, nil
}

// MockFrames returns a fixed JPEG for every video.
type MockFrames struct {
	JPEG []byte
	Err  error
}

func NewMockFrames() *MockFrames {
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	img.SetGray(0, 0, color.Gray{Y: 0})
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, nil)
	return &MockFrames{JPEG: buf.Bytes()}
}

func (m *MockFrames) FirstFrame(string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.JPEG, nil
}
