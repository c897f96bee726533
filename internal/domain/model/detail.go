package model

import "time"

// RepoDetail is the expanded issue/PR/release listing backing a single
// repository's dashboard page. One document is written per repository with
// open activity, keyed by the repository's short name.
type RepoDetail struct {
	Name         string              `json:"name"` // full "owner/repo" name
	Description  string              `json:"description"`
	Language     string              `json:"language"`
	Issues       []DetailIssue       `json:"issues"`
	PullRequests []DetailPullRequest `json:"pullRequests"`
	Releases     []DetailRelease     `json:"releases"`
}

// ShortName returns the file-safe key for this detail document.
func (d *RepoDetail) ShortName() string {
	return ShortName(d.Name)
}

// DetailIssue is one open issue in a detail document.
type DetailIssue struct {
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Labels       []string  `json:"labels"`
	CreatedAt    time.Time `json:"createdAt"`
	CommentCount int       `json:"commentCount"`
	URL          string    `json:"url"`
}

// DetailPullRequest is one open pull request in a detail document.
type DetailPullRequest struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	ReviewCount int       `json:"reviewCount"`
	URL         string    `json:"url"`
}

// DetailRelease is one release in a detail document.
type DetailRelease struct {
	TagName     string    `json:"tagName"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
}
