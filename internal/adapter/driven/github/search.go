package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

const unengagedIssuesQuery = `query($searchQuery: String!, $cursor: String) {
	search(query: $searchQuery, type: ISSUE, first: 100, after: $cursor) {
		pageInfo {
			hasNextPage
			endCursor
		}
		nodes {
			... on Issue {
				repository { nameWithOwner }
				number
				title
				author { login }
				createdAt
				url
			}
		}
	}
}`

const unengagedPRsQuery = `query($searchQuery: String!, $cursor: String) {
	search(query: $searchQuery, type: ISSUE, first: 100, after: $cursor) {
		pageInfo {
			hasNextPage
			endCursor
		}
		nodes {
			... on PullRequest {
				repository { nameWithOwner }
				number
				title
				author { login }
				createdAt
				url
			}
		}
	}
}`

// searchData is the decoded data field of a search response page.
type searchData struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool    `json:"hasNextPage"`
			EndCursor   *string `json:"endCursor"`
		} `json:"pageInfo"`
		Nodes []struct {
			Repository struct {
				NameWithOwner string `json:"nameWithOwner"`
			} `json:"repository"`
			Number int    `json:"number"`
			Title  string `json:"title"`
			Author *struct {
				Login string `json:"login"`
			} `json:"author"`
			CreatedAt time.Time `json:"createdAt"`
			URL       string    `json:"url"`
		} `json:"nodes"`
	} `json:"search"`
}

// SearchUnengagedIssues returns all open issues with zero comments created
// strictly before the cutoff, across the given repositories.
func (c *Client) SearchUnengagedIssues(ctx context.Context, repoNames []string, cutoff time.Time) ([]model.UrgentItem, error) {
	query := buildSearchQuery(repoNames, "is:issue is:open comments:0", cutoff)
	return c.searchUnengaged(ctx, unengagedIssuesQuery, query, model.ItemKindIssue)
}

// SearchUnengagedPRs returns all open pull requests with no reviews created
// strictly before the cutoff, across the given repositories.
func (c *Client) SearchUnengagedPRs(ctx context.Context, repoNames []string, cutoff time.Time) ([]model.UrgentItem, error) {
	query := buildSearchQuery(repoNames, "is:pr is:open review:none", cutoff)
	return c.searchUnengaged(ctx, unengagedPRsQuery, query, model.ItemKindPR)
}

// buildSearchQuery assembles a GitHub search expression scoped to the given
// repositories. The created qualifier is date-granular, matching the search
// API's precision.
func buildSearchQuery(repoNames []string, qualifiers string, cutoff time.Time) string {
	parts := make([]string, 0, len(repoNames)+2)
	for _, name := range repoNames {
		parts = append(parts, "repo:"+name)
	}
	parts = append(parts, qualifiers, "created:<"+cutoff.Format("2006-01-02"))
	return strings.Join(parts, " ")
}

// searchUnengaged collects every page of a search query before returning.
func (c *Client) searchUnengaged(ctx context.Context, gqlQuery, searchQuery string, kind model.ItemKind) ([]model.UrgentItem, error) {
	items := []model.UrgentItem{}
	var cursor *string

	for page := 1; ; page++ {
		variables := map[string]any{"searchQuery": searchQuery, "cursor": cursor}

		var data searchData
		if err := c.doGraphQL(ctx, gqlQuery, variables, &data); err != nil {
			return nil, fmt.Errorf("searching %s items (page %d): %w", kind, page, err)
		}

		for _, node := range data.Search.Nodes {
			if node.Number == 0 {
				// Node of another type matched only the empty fragment.
				continue
			}
			author := model.UnknownAuthor
			if node.Author != nil {
				author = node.Author.Login
			}
			items = append(items, model.UrgentItem{
				Repo:      node.Repository.NameWithOwner,
				Number:    node.Number,
				Title:     node.Title,
				Author:    author,
				CreatedAt: node.CreatedAt,
				URL:       node.URL,
				Kind:      kind,
			})
		}

		if !data.Search.PageInfo.HasNextPage {
			return items, nil
		}
		cursor = data.Search.PageInfo.EndCursor
	}
}
