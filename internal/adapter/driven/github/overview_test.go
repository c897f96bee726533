package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/AaronFeledy/maintainer-dashboard/internal/adapter/driven/github"
)

// newGraphQLServer returns a test server that serves canned GraphQL
// responses in order, one per request, and a client pointed at it.
func newGraphQLServer(t *testing.T, responses ...map[string]any) (*ghAdapter.Client, *[]map[string]any) {
	t.Helper()

	var requests []map[string]any
	call := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "bearer test-token", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		require.Less(t, call, len(responses), "unexpected extra GraphQL request")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(responses[call]))
		call++
	}))
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/", "test-token")
	require.NoError(t, err)
	return client, &requests
}

func TestFetchRepoOverview_Success(t *testing.T) {
	client, requests := newGraphQLServer(t, map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"name":            "widget",
				"description":     "makes widgets",
				"isArchived":      false,
				"primaryLanguage": map[string]any{"name": "Go"},
				"issues":          map[string]any{"totalCount": 12},
				"pullRequests":    map[string]any{"totalCount": 3},
				"releases": map[string]any{
					"nodes": []any{
						map[string]any{"tagName": "v1.4.0", "publishedAt": "2026-01-15T10:00:00Z"},
					},
				},
				"pushedAt": "2026-02-20T08:30:00Z",
			},
		},
	})

	summary, err := client.FetchRepoOverview(context.Background(), "acme/widget")

	require.NoError(t, err)
	assert.Equal(t, "acme/widget", summary.FullName)
	assert.Equal(t, "makes widgets", summary.Description)
	assert.Equal(t, "Go", summary.Language)
	assert.False(t, summary.Archived)
	assert.Equal(t, 12, summary.OpenIssues)
	assert.Equal(t, 3, summary.OpenPRs)
	require.NotNil(t, summary.LastRelease)
	assert.Equal(t, "v1.4.0", summary.LastRelease.Tag)
	assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), summary.LastRelease.PublishedAt.UTC())

	require.Len(t, *requests, 1)
	variables := (*requests)[0]["variables"].(map[string]any)
	assert.Equal(t, "acme", variables["owner"])
	assert.Equal(t, "widget", variables["name"])
}

func TestFetchRepoOverview_NullFieldsAndNoRelease(t *testing.T) {
	client, _ := newGraphQLServer(t, map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"name":            "widget",
				"description":     nil,
				"isArchived":      true,
				"primaryLanguage": nil,
				"issues":          map[string]any{"totalCount": 0},
				"pullRequests":    map[string]any{"totalCount": 0},
				"releases":        map[string]any{"nodes": []any{}},
				"pushedAt":        "2026-02-20T08:30:00Z",
			},
		},
	})

	summary, err := client.FetchRepoOverview(context.Background(), "acme/widget")

	require.NoError(t, err)
	assert.Empty(t, summary.Description)
	assert.Empty(t, summary.Language)
	assert.True(t, summary.Archived)
	assert.Nil(t, summary.LastRelease)
}

func TestFetchRepoOverview_RepositoryNotFound(t *testing.T) {
	client, _ := newGraphQLServer(t, map[string]any{
		"data": map[string]any{"repository": nil},
	})

	_, err := client.FetchRepoOverview(context.Background(), "acme/ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or inaccessible")
}

func TestFetchRepoOverview_GraphQLError(t *testing.T) {
	client, _ := newGraphQLServer(t, map[string]any{
		"data":   nil,
		"errors": []any{map[string]any{"message": "API rate limit exceeded"}},
	})

	_, err := client.FetchRepoOverview(context.Background(), "acme/widget")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API rate limit exceeded")
}

func TestFetchRepoOverview_InvalidName(t *testing.T) {
	client, _ := newGraphQLServer(t)

	_, err := client.FetchRepoOverview(context.Background(), "not-a-full-name")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/repo")
}

func TestCountCommitsSince(t *testing.T) {
	client, requests := newGraphQLServer(t, map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				"defaultBranchRef": map[string]any{
					"target": map[string]any{
						"history": map[string]any{"totalCount": 42},
					},
				},
			},
		},
	})

	since := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	count, err := client.CountCommitsSince(context.Background(), "acme/widget", since)

	require.NoError(t, err)
	assert.Equal(t, 42, count)

	variables := (*requests)[0]["variables"].(map[string]any)
	assert.Equal(t, "2026-01-15T10:00:00Z", variables["since"])
}

func TestCountCommitsSince_EmptyRepository(t *testing.T) {
	// defaultBranchRef is null on repositories without commits.
	client, _ := newGraphQLServer(t, map[string]any{
		"data": map[string]any{
			"repository": map[string]any{"defaultBranchRef": nil},
		},
	})

	count, err := client.CountCommitsSince(context.Background(), "acme/widget", time.Now())

	require.NoError(t, err)
	assert.Zero(t, count)
}
