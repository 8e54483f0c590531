package scoring

// UnknownScoreRange is returned by Describe when no band matches.
const UnknownScoreRange = "Unknown score range"

// Band is the half-open interval [Lo, Hi) with its description.
type Band struct {
	Lo, Hi      float64
	Description string
}

// BandTable is scanned in order; the first band containing the score wins.
type BandTable []Band

var BodyLanguageBands = BandTable{
	{0.0, 0.2, "Very negative body language, indicating discomfort."},
	{0.2, 0.4, "Negative body language, showing signs of unease."},
	{0.4, 0.6, "Neutral body language, indicating no strong feelings."},
	{0.6, 0.8, "Positive body language, showing confidence."},
	{0.8, 1.0, "Very positive body language, indicating openness."},
}

var AudioBands = BandTable{
	{0.0, 0.2, "Low energy in voice, possibly indicating lack of confidence."},
	{0.2, 0.4, "Moderate energy, but still lacks assertiveness."},
	{0.4, 0.6, "Neutral energy in voice, indicating comfort."},
	{0.6, 0.8, "High energy in voice, suggesting confidence and truthfulness."},
	{0.8, 1.0, "Very high energy, indicating excitement or truthfulness."},
}

// Describe returns the description of the first band holding score.
func Describe(score float64, table BandTable) string {
	for _, b := range table {
		if b.Lo <= score && score < b.Hi {
			return b.Description
		}
	}
	return UnknownScoreRange
}

// TableFor returns the band table for "body" or "audio".
func TableFor(kind string) (BandTable, bool) {
	switch kind {
	case "body", "body_language":
		return BodyLanguageBands, true
	case "audio":
		return AudioBands, true
	}
	return nil, false
}
