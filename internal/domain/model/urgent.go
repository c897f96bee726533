package model

import "time"

// ItemKind distinguishes issues from pull requests in the urgent feed.
type ItemKind string

const (
	ItemKindIssue ItemKind = "issue"
	ItemKindPR    ItemKind = "pr"
)

// UnknownAuthor is the sentinel used when an item's author account has been
// deleted or is otherwise inaccessible.
const UnknownAuthor = "unknown"

// UrgentItem is an open issue or PR older than the grace window with zero
// engagement (no comments for issues, no reviews for PRs). Items exist only
// within a run's memory and the output snapshot; there is no cross-run
// identity.
type UrgentItem struct {
	Repo      string    `json:"repo"` // full "owner/repo" name
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
	Kind      ItemKind  `json:"type"`
}
