package model

import "math"

// NoReleaseStaleDays is the staleness charged to a repository that has never
// published a release. Treating "never released" as a year stale keeps such
// repositories visible without dominating every ranking.
const NoReleaseStaleDays = 365

// ScoreWeights are the per-signal multipliers of the attention score.
type ScoreWeights struct {
	Issue        float64
	PR           float64
	ReleaseStale float64
	Unengaged    float64
}

// DefaultScoreWeights weight PRs and unengaged items more heavily than raw
// issue count: unreviewed or unaddressed work is a costlier signal than
// backlog volume.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Issue:        1,
		PR:           2,
		ReleaseStale: 0.5,
		Unengaged:    3,
	}
}

// Score computes the weighted attention score, rounded to one decimal place.
// The result is deterministic in its inputs and always recomputed wholesale,
// never incrementally adjusted.
func (w ScoreWeights) Score(openIssues, openPRs, releaseStaleDays, unengagedCount int) float64 {
	raw := float64(openIssues)*w.Issue +
		float64(openPRs)*w.PR +
		float64(releaseStaleDays)*w.ReleaseStale +
		float64(unengagedCount)*w.Unengaged
	return math.Round(raw*10) / 10
}
