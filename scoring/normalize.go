package scoring

import "math"

const (
	// AudioEnergyScale is the RMS energy treated as a full-scale voice.
	AudioEnergyScale = 0.5
	// BodyRatioScale is the shoulder/hip width ratio mapped to 1.0.
	BodyRatioScale = 2.0

	hipEpsilon = 1e-5
)

// Normalize returns clamp(raw/divisor, 0, 1).
func Normalize(raw, divisor float64) float64 {
	if divisor <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	return clamp(raw/divisor, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Point is a landmark position in normalized image coordinates.
type Point struct {
	X, Y float64
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// BodyLanguageRatio is shoulder width over hip width.
func BodyLanguageRatio(leftShoulder, rightShoulder, leftHip, rightHip Point) float64 {
	return dist(leftShoulder, rightShoulder) / (dist(leftHip, rightHip) + hipEpsilon)
}

// BodyLanguageScore normalizes the shoulder/hip ratio into [0,1].
func BodyLanguageScore(leftShoulder, rightShoulder, leftHip, rightHip Point) float64 {
	return Normalize(BodyLanguageRatio(leftShoulder, rightShoulder, leftHip, rightHip), BodyRatioScale)
}

// AudioScore normalizes a mean RMS energy into [0,1].
func AudioScore(energy float64) float64 {
	return Normalize(energy, AudioEnergyScale)
}
