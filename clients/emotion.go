package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

var ErrNoFace = errors.New("no emotion scores in response")

// --- Emotion (/analyze) ---
type EmotionResp struct {
	Emotion         map[string]float64 `json:"emotion"`
	DominantEmotion string             `json:"dominant_emotion"`
}

// Distribution returns the raw scores as a scoring input.
func (r *EmotionResp) Distribution() (scoring.EmotionDistribution, error) {
	if r == nil || len(r.Emotion) == 0 {
		return nil, ErrNoFace
	}
	return scoring.EmotionDistribution(r.Emotion), nil
}

func (h *HTTP) Emotion(ctx context.Context, url string, jpeg []byte) (*EmotionResp, error) {
	if len(jpeg) == 0 {
		return nil, fmt.Errorf("emotion: empty frame")
	}
	resp, err := h.postImage(ctx, url+"/analyze", jpeg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr("emotion", resp)
	}

	var out EmotionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emotion decode: %w", err)
	}
	return &out, nil
}
