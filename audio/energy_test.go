package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestWAV(t *testing.T, samples []int, rate, channels int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

func TestMeanRMS(t *testing.T) {
	got, err := MeanRMS([]float64{1, 1, 1, 1}, 2, 1)
	require.NoError(t, err)
	assert.InDelta(t, (3+2*math.Sqrt(0.5))/5, got, 1e-9)

	_, err = MeanRMS(nil, 2048, 512)
	assert.ErrorIs(t, err, ErrEmptyAudio)
}

func TestLoad_StereoMixdown(t *testing.T) {
	// left at +half scale, right silent
	samples := make([]int, 200)
	for i := 0; i < len(samples); i += 2 {
		samples[i] = 16384
	}
	path := writeTestWAV(t, samples, 8000, 2)

	y, rate, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, rate)
	require.Len(t, y, 100)
	assert.InDelta(t, 0.25, y[0], 1e-9)
}

func TestEnergy_Tone(t *testing.T) {
	const rate = 16000
	samples := make([]int, rate)
	for i := range samples {
		samples[i] = int(0.4 * 32767 * math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	s := Energy(writeTestWAV(t, samples, rate, 1))

	require.False(t, s.Failed())
	// a 0.4 amplitude sine has RMS ~0.283, normalized by 0.5
	assert.InDelta(t, 0.283/0.5, s.Score(), 0.03)
}

func TestEnergy_Silence(t *testing.T) {
	s := Energy(writeTestWAV(t, make([]int, 4096), 16000, 1))
	require.False(t, s.Failed())
	assert.Zero(t, s.Score())
}

func TestEnergy_Failures(t *testing.T) {
	s := Energy(filepath.Join(t.TempDir(), "missing.wav"))
	assert.True(t, s.Failed())
	assert.Zero(t, s.Score())

	bogus := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not a wav file at all"), 0o644))
	s = Energy(bogus)
	assert.True(t, s.Failed())
	assert.ErrorIs(t, s.Err, ErrInvalidWAV)
}
