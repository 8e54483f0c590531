// Package audio extracts voice energy from a recorded WAV file.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

const (
	FrameLength = 2048
	HopLength   = 512
)

var (
	ErrInvalidWAV = errors.New("invalid wav file")
	ErrEmptyAudio = errors.New("no audio samples")
)

// Load decodes a WAV file into mono samples scaled to [-1, 1].
func Load(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: %w", path, ErrInvalidWAV)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}

	ch := int(d.NumChans)
	if ch <= 0 {
		ch = 1
	}
	bits := int(d.BitDepth)
	if bits <= 0 {
		bits = 16
	}
	scale := math.Pow(2, float64(bits-1))

	n := len(buf.Data) / ch
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch) / scale
	}
	return out, int(d.SampleRate), nil
}

// MeanRMS is the mean of per-frame RMS values. Frames are centered, so the
// signal is zero-padded by half a frame on each side.
func MeanRMS(y []float64, frameLen, hop int) (float64, error) {
	if len(y) == 0 {
		return 0, ErrEmptyAudio
	}
	if frameLen <= 0 || hop <= 0 {
		return 0, fmt.Errorf("frame length and hop must be positive")
	}

	pad := frameLen / 2
	padded := make([]float64, len(y)+2*pad)
	copy(padded[pad:], y)

	frames := 1 + (len(padded)-frameLen)/hop
	if frames <= 0 {
		frames = 1
	}

	total := 0.0
	for i := 0; i < frames; i++ {
		start := i * hop
		end := start + frameLen
		if end > len(padded) {
			end = len(padded)
		}
		sq := 0.0
		for _, v := range padded[start:end] {
			sq += v * v
		}
		total += math.Sqrt(sq / float64(frameLen))
	}
	return total / float64(frames), nil
}

// Energy returns the normalized mean RMS energy of the WAV file at path.
// Any failure is reported as a failed signal rather than an error.
func Energy(path string) scoring.Signal {
	y, _, err := Load(path)
	if err != nil {
		return scoring.Failed(err)
	}
	e, err := MeanRMS(y, FrameLength, HopLength)
	if err != nil {
		return scoring.Failed(err)
	}
	return scoring.Ok(scoring.AudioScore(e))
}
