package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScore_WeightedSum(t *testing.T) {
	weights := DefaultScoreWeights()

	tests := []struct {
		name       string
		openIssues int
		openPRs    int
		staleDays  int
		unengaged  int
		want       float64
	}{
		{name: "all zero", want: 0},
		{name: "issues only", openIssues: 10, want: 10},
		{name: "prs weighted double", openPRs: 5, want: 10},
		{name: "staleness weighted half", staleDays: 30, want: 15},
		{name: "unengaged weighted triple", unengaged: 4, want: 12},
		{name: "combined", openIssues: 20, openPRs: 5, staleDays: 180, unengaged: 3, want: 129.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weights.Score(tt.openIssues, tt.openPRs, tt.staleDays, tt.unengaged)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScore_RoundedToOneDecimal(t *testing.T) {
	weights := ScoreWeights{Issue: 0.33, PR: 0, ReleaseStale: 0, Unengaged: 0}

	got := weights.Score(1, 0, 0, 0)

	assert.InDelta(t, 0.3, got, 1e-9)
}

func TestReleaseStaleDays_NoReleaseSentinel(t *testing.T) {
	summary := RepoSummary{FullName: "acme/widget"}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, NoReleaseStaleDays, summary.ReleaseStaleDays(now))

	// A never-released repo contributes 365*0.5 to its score regardless of
	// other fields.
	score := DefaultScoreWeights().Score(0, 0, summary.ReleaseStaleDays(now), 0)
	assert.InDelta(t, 182.5, score, 1e-9)
}

func TestReleaseStaleDays_WholeDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	summary := RepoSummary{
		FullName:    "acme/widget",
		LastRelease: &Release{Tag: "v1.2.0", PublishedAt: now.AddDate(0, 0, -45)},
	}

	assert.Equal(t, 45, summary.ReleaseStaleDays(now))
}

func TestHasActivity(t *testing.T) {
	assert.False(t, RepoSummary{}.HasActivity())
	assert.True(t, RepoSummary{OpenIssues: 1}.HasActivity())
	assert.True(t, RepoSummary{OpenPRs: 1}.HasActivity())
}
