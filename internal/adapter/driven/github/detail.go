package github

import (
	"context"
	"fmt"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

const repoDetailQuery = `query($owner: String!, $name: String!) {
	repository(owner: $owner, name: $name) {
		issues(first: 50, states: OPEN, orderBy: {field: CREATED_AT, direction: DESC}) {
			nodes {
				title
				author { login }
				labels(first: 10) { nodes { name } }
				createdAt
				comments { totalCount }
				url
			}
		}
		pullRequests(first: 50, states: OPEN, orderBy: {field: CREATED_AT, direction: DESC}) {
			nodes {
				title
				author { login }
				createdAt
				reviews { totalCount }
				url
			}
		}
		releases(first: 5, orderBy: {field: CREATED_AT, direction: DESC}) {
			nodes {
				tagName
				publishedAt
				url
			}
		}
	}
}`

type detailAuthor struct {
	Login string `json:"login"`
}

// detailData is the decoded data field of a repo detail response.
type detailData struct {
	Repository *struct {
		Issues struct {
			Nodes []struct {
				Title  string        `json:"title"`
				Author *detailAuthor `json:"author"`
				Labels struct {
					Nodes []struct {
						Name string `json:"name"`
					} `json:"nodes"`
				} `json:"labels"`
				CreatedAt time.Time `json:"createdAt"`
				Comments  struct {
					TotalCount int `json:"totalCount"`
				} `json:"comments"`
				URL string `json:"url"`
			} `json:"nodes"`
		} `json:"issues"`
		PullRequests struct {
			Nodes []struct {
				Title     string        `json:"title"`
				Author    *detailAuthor `json:"author"`
				CreatedAt time.Time     `json:"createdAt"`
				Reviews   struct {
					TotalCount int `json:"totalCount"`
				} `json:"reviews"`
				URL string `json:"url"`
			} `json:"nodes"`
		} `json:"pullRequests"`
		Releases struct {
			Nodes []struct {
				TagName     string    `json:"tagName"`
				PublishedAt time.Time `json:"publishedAt"`
				URL         string    `json:"url"`
			} `json:"nodes"`
		} `json:"releases"`
	} `json:"repository"`
}

// FetchRepoDetail retrieves up to 50 most-recent open issues, 50 open PRs,
// and 5 releases for one repository. Description and language are left for
// the caller to forward from the overview fetch.
func (c *Client) FetchRepoDetail(ctx context.Context, repoFullName string) (*model.RepoDetail, error) {
	owner, name, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	var data detailData
	if err := c.doGraphQL(ctx, repoDetailQuery, map[string]any{"owner": owner, "name": name}, &data); err != nil {
		return nil, fmt.Errorf("fetching detail for %s: %w", repoFullName, err)
	}
	if data.Repository == nil {
		return nil, fmt.Errorf("fetching detail for %s: repository not found or inaccessible", repoFullName)
	}

	repo := data.Repository
	detail := &model.RepoDetail{
		Name:         repoFullName,
		Issues:       make([]model.DetailIssue, 0, len(repo.Issues.Nodes)),
		PullRequests: make([]model.DetailPullRequest, 0, len(repo.PullRequests.Nodes)),
		Releases:     make([]model.DetailRelease, 0, len(repo.Releases.Nodes)),
	}

	for _, issue := range repo.Issues.Nodes {
		labels := make([]string, 0, len(issue.Labels.Nodes))
		for _, label := range issue.Labels.Nodes {
			labels = append(labels, label.Name)
		}
		detail.Issues = append(detail.Issues, model.DetailIssue{
			Title:        issue.Title,
			Author:       authorLogin(issue.Author),
			Labels:       labels,
			CreatedAt:    issue.CreatedAt,
			CommentCount: issue.Comments.TotalCount,
			URL:          issue.URL,
		})
	}

	for _, pr := range repo.PullRequests.Nodes {
		detail.PullRequests = append(detail.PullRequests, model.DetailPullRequest{
			Title:       pr.Title,
			Author:      authorLogin(pr.Author),
			CreatedAt:   pr.CreatedAt,
			ReviewCount: pr.Reviews.TotalCount,
			URL:         pr.URL,
		})
	}

	for _, release := range repo.Releases.Nodes {
		detail.Releases = append(detail.Releases, model.DetailRelease{
			TagName:     release.TagName,
			PublishedAt: release.PublishedAt,
			URL:         release.URL,
		})
	}

	return detail, nil
}

// authorLogin falls back to the sentinel author for deleted accounts.
func authorLogin(author *detailAuthor) string {
	if author == nil {
		return model.UnknownAuthor
	}
	return author.Login
}
