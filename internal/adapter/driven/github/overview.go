package github

import (
	"context"
	"fmt"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

const repoOverviewQuery = `query($owner: String!, $name: String!) {
	repository(owner: $owner, name: $name) {
		name
		description
		isArchived
		primaryLanguage { name }
		issues(states: OPEN) { totalCount }
		pullRequests(states: OPEN) { totalCount }
		releases(first: 1, orderBy: {field: CREATED_AT, direction: DESC}) {
			nodes {
				tagName
				publishedAt
			}
		}
		pushedAt
	}
}`

const commitsSinceQuery = `query($owner: String!, $name: String!, $since: GitTimestamp!) {
	repository(owner: $owner, name: $name) {
		defaultBranchRef {
			target {
				... on Commit {
					history(since: $since) {
						totalCount
					}
				}
			}
		}
	}
}`

// overviewData is the decoded data field of a repo overview response.
type overviewData struct {
	Repository *struct {
		Name            string  `json:"name"`
		Description     *string `json:"description"`
		IsArchived      bool    `json:"isArchived"`
		PrimaryLanguage *struct {
			Name string `json:"name"`
		} `json:"primaryLanguage"`
		Issues struct {
			TotalCount int `json:"totalCount"`
		} `json:"issues"`
		PullRequests struct {
			TotalCount int `json:"totalCount"`
		} `json:"pullRequests"`
		Releases struct {
			Nodes []struct {
				TagName     string    `json:"tagName"`
				PublishedAt time.Time `json:"publishedAt"`
			} `json:"nodes"`
		} `json:"releases"`
		PushedAt time.Time `json:"pushedAt"`
	} `json:"repository"`
}

// FetchRepoOverview retrieves summary metrics for one repository: open
// issue/PR counts, most recent release, archival status, and last push.
func (c *Client) FetchRepoOverview(ctx context.Context, repoFullName string) (*model.RepoSummary, error) {
	owner, name, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	var data overviewData
	if err := c.doGraphQL(ctx, repoOverviewQuery, map[string]any{"owner": owner, "name": name}, &data); err != nil {
		return nil, fmt.Errorf("fetching overview for %s: %w", repoFullName, err)
	}
	if data.Repository == nil {
		return nil, fmt.Errorf("fetching overview for %s: repository not found or inaccessible", repoFullName)
	}

	repo := data.Repository
	summary := &model.RepoSummary{
		FullName:   repoFullName,
		Archived:   repo.IsArchived,
		OpenIssues: repo.Issues.TotalCount,
		OpenPRs:    repo.PullRequests.TotalCount,
		PushedAt:   repo.PushedAt,
	}
	if repo.Description != nil {
		summary.Description = *repo.Description
	}
	if repo.PrimaryLanguage != nil {
		summary.Language = repo.PrimaryLanguage.Name
	}
	if len(repo.Releases.Nodes) > 0 {
		release := repo.Releases.Nodes[0]
		summary.LastRelease = &model.Release{
			Tag:         release.TagName,
			PublishedAt: release.PublishedAt,
		}
	}
	return summary, nil
}

// commitsSinceData is the decoded data field of a commit count response.
// defaultBranchRef is null on empty repositories.
type commitsSinceData struct {
	Repository *struct {
		DefaultBranchRef *struct {
			Target struct {
				History struct {
					TotalCount int `json:"totalCount"`
				} `json:"history"`
			} `json:"target"`
		} `json:"defaultBranchRef"`
	} `json:"repository"`
}

// CountCommitsSince returns the number of commits on the default branch
// since the given instant.
func (c *Client) CountCommitsSince(ctx context.Context, repoFullName string, since time.Time) (int, error) {
	owner, name, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	variables := map[string]any{
		"owner": owner,
		"name":  name,
		"since": since.Format(time.RFC3339),
	}

	var data commitsSinceData
	if err := c.doGraphQL(ctx, commitsSinceQuery, variables, &data); err != nil {
		return 0, fmt.Errorf("counting commits for %s: %w", repoFullName, err)
	}
	if data.Repository == nil || data.Repository.DefaultBranchRef == nil {
		return 0, nil
	}
	return data.Repository.DefaultBranchRef.Target.History.TotalCount, nil
}
