package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/maastricht-university/veracity-pipeline/scoring"
)

// MediaPipe pose landmark indices.
const (
	LeftShoulder  = 11
	RightShoulder = 12
	LeftHip       = 23
	RightHip      = 24
)

var ErrNoLandmarks = errors.New("no pose landmarks detected")

// --- Pose (/pose) ---
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type PoseResp struct {
	Landmarks []Landmark `json:"landmarks"`
}

func (l Landmark) point() scoring.Point { return scoring.Point{X: l.X, Y: l.Y} }

// BodyLanguage computes the normalized shoulder/hip ratio.
func (r *PoseResp) BodyLanguage() (float64, error) {
	if r == nil || len(r.Landmarks) <= RightHip {
		return 0, ErrNoLandmarks
	}
	lm := r.Landmarks
	return scoring.BodyLanguageScore(
		lm[LeftShoulder].point(), lm[RightShoulder].point(),
		lm[LeftHip].point(), lm[RightHip].point(),
	), nil
}

func (h *HTTP) Pose(ctx context.Context, url string, jpeg []byte) (*PoseResp, error) {
	if len(jpeg) == 0 {
		return nil, fmt.Errorf("pose: empty frame")
	}
	resp, err := h.postImage(ctx, url+"/pose", jpeg)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr("pose", resp)
	}

	var out PoseResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pose decode: %w", err)
	}
	return &out, nil
}
