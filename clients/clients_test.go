package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

var testFrame = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}

func serve(t *testing.T, path string, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		f, _, err := r.FormFile("file")
		if assert.NoError(t, err) {
			got, _ := io.ReadAll(f)
			assert.Equal(t, testFrame, got)
		}

		w.WriteHeader(status)
		if s, ok := body.(string); ok {
			_, _ = io.WriteString(w, s)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEmotion(t *testing.T) {
	srv := serve(t, "/analyze", http.StatusOK, map[string]any{
		"emotion": map[string]float64{
			"angry": 1, "disgust": 0, "fear": 2, "happy": 90,
			"sad": 3, "surprise": 1, "neutral": 3,
		},
		"dominant_emotion": "happy",
	})

	out, err := NewHTTP().Emotion(context.Background(), srv.URL, testFrame)
	require.NoError(t, err)
	assert.Equal(t, "happy", out.DominantEmotion)

	d, err := out.Distribution()
	require.NoError(t, err)
	assert.NoError(t, d.Validate())
	assert.Equal(t, 90.0, d[scoring.Happy])
}

func TestEmotion_NoScores(t *testing.T) {
	srv := serve(t, "/analyze", http.StatusOK, map[string]any{"dominant_emotion": ""})

	out, err := NewHTTP().Emotion(context.Background(), srv.URL, testFrame)
	require.NoError(t, err)
	_, err = out.Distribution()
	assert.ErrorIs(t, err, ErrNoFace)
}

func TestEmotion_ServerError(t *testing.T) {
	srv := serve(t, "/analyze", http.StatusInternalServerError, "model crashed")

	_, err := NewHTTP().Emotion(context.Background(), srv.URL, testFrame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model crashed")
}

func TestEmotion_EmptyFrame(t *testing.T) {
	_, err := NewHTTP().Emotion(context.Background(), "http://127.0.0.1:0", nil)
	assert.Error(t, err)
}

func TestPose(t *testing.T) {
	lms := make([]Landmark, 33)
	lms[LeftShoulder] = Landmark{X: 0.3, Y: 0.3}
	lms[RightShoulder] = Landmark{X: 0.6, Y: 0.3}
	lms[LeftHip] = Landmark{X: 0.4, Y: 0.7}
	lms[RightHip] = Landmark{X: 0.6, Y: 0.7}
	srv := serve(t, "/pose", http.StatusOK, PoseResp{Landmarks: lms})

	out, err := NewHTTP().Pose(context.Background(), srv.URL, testFrame)
	require.NoError(t, err)

	score, err := out.BodyLanguage()
	require.NoError(t, err)
	// ratio 0.3/0.2 = 1.5, halved
	assert.InDelta(t, 0.75, score, 1e-3)
}

func TestPose_NoLandmarks(t *testing.T) {
	srv := serve(t, "/pose", http.StatusOK, PoseResp{})

	out, err := NewHTTP().Pose(context.Background(), srv.URL, testFrame)
	require.NoError(t, err)
	_, err = out.BodyLanguage()
	assert.ErrorIs(t, err, ErrNoLandmarks)
}

func TestPose_BadJSON(t *testing.T) {
	srv := serve(t, "/pose", http.StatusOK, "{not json")

	_, err := NewHTTP().Pose(context.Background(), srv.URL, testFrame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pose decode")
}
