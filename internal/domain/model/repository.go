package model

import "time"

// Release identifies a repository's most recent release.
type Release struct {
	Tag         string
	PublishedAt time.Time
}

// RepoSummary is the raw per-repository result of an overview fetch.
// It is an intermediate value; the pipeline derives a RepoOverview from it.
type RepoSummary struct {
	FullName    string
	Description string
	Language    string
	Archived    bool
	OpenIssues  int
	OpenPRs     int
	LastRelease *Release // nil when the repository has never released
	PushedAt    time.Time
}

// HasActivity reports whether the repository has any open issues or PRs.
// Repositories without activity do not get a detail document.
func (s RepoSummary) HasActivity() bool {
	return s.OpenIssues > 0 || s.OpenPRs > 0
}

// ReleaseStaleDays returns the whole days elapsed since the most recent
// release was published. A repository that has never released counts as
// NoReleaseStaleDays rather than infinitely stale.
func (s RepoSummary) ReleaseStaleDays(now time.Time) int {
	if s.LastRelease == nil {
		return NoReleaseStaleDays
	}
	return int(now.Sub(s.LastRelease.PublishedAt).Hours() / 24)
}

// RepoOverview is one row of the dashboard's overview snapshot, recomputed
// wholesale each run from a RepoSummary and the unengaged-item counts.
type RepoOverview struct {
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Language            string     `json:"language"`
	OpenIssues          int        `json:"openIssues"`
	OpenPRs             int        `json:"openPRs"`
	LastReleaseTag      string     `json:"lastReleaseTag,omitempty"`
	LastRelease         *time.Time `json:"lastRelease"`
	CommitsSinceRelease int        `json:"commitsSinceRelease"`
	LastPush            time.Time  `json:"lastPush"`
	AttentionScore      float64    `json:"attentionScore"`
	UnengagedCount      int        `json:"unengagedCount"`
}

// Meta is the envelope shared by the overview and urgent-items documents.
// Both carry the same fetchedAt instant so readers get consistent
// "as of" semantics across the two files.
type Meta struct {
	FetchedAt time.Time `json:"fetchedAt"`
	RepoCount int       `json:"repoCount"`
}

// OverviewDocument is the repos-overview.json payload.
type OverviewDocument struct {
	Meta  Meta           `json:"meta"`
	Repos []RepoOverview `json:"repos"`
}

// UrgentItemsDocument is the urgent-items.json payload.
type UrgentItemsDocument struct {
	Meta  Meta         `json:"meta"`
	Items []UrgentItem `json:"items"`
}

// RateBudget is a snapshot of the API quota remaining before a run starts.
type RateBudget struct {
	CoreRemaining    int
	CoreLimit        int
	GraphQLRemaining int
	GraphQLLimit     int
}
