// Package github implements the GitHubClient port against the GitHub
// GraphQL API, with a REST call for the rate-budget preflight.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

const productionGraphQLURL = "https://api.github.com/graphql"

// Client implements the driven.GitHubClient port. GraphQL queries carry the
// bulk of the work; the REST client is used only for the rate-limit preflight.
type Client struct {
	gh         *gh.Client
	httpClient *http.Client // shared transport stack, used for GraphQL POSTs
	token      string
	graphqlURL string
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//
// Both the REST client and the GraphQL calls go through this stack, so the
// secondary-rate-limit handling covers every outbound request.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	// The GraphQL calls get a copy with a timeout as a safety net alongside
	// context cancellation; a hanging call would otherwise stall the whole run.
	gqlClient := *rateLimitClient
	gqlClient.Timeout = 60 * time.Second

	return &Client{
		gh:         gh.NewClient(rateLimitClient).WithAuthToken(token),
		httpClient: &gqlClient,
		token:      token,
		graphqlURL: productionGraphQLURL,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	// Derive graphqlURL from baseURL so httptest servers can intercept
	// GraphQL requests.
	graphqlU := *u
	graphqlU.Path = "/graphql"

	return &Client{
		gh:         client,
		httpClient: httpClient,
		token:      token,
		graphqlURL: graphqlU.String(),
	}, nil
}

// FetchRateBudget reports the remaining core and GraphQL quota for the
// authenticated token. It doubles as a credential check: an invalid token
// fails here, before any repository fetch begins.
func (c *Client) FetchRateBudget(ctx context.Context) (*model.RateBudget, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching rate limits: %w", err)
	}

	budget := &model.RateBudget{}
	if core := limits.GetCore(); core != nil {
		budget.CoreRemaining = core.Remaining
		budget.CoreLimit = core.Limit
	}
	if graphql := limits.GetGraphQL(); graphql != nil {
		budget.GraphQLRemaining = graphql.Remaining
		budget.GraphQLLimit = graphql.Limit
	}
	return budget, nil
}

// splitRepo splits an "owner/repo" full name into its parts.
func splitRepo(repoFullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(repoFullName, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/repo", repoFullName)
	}
	return owner, repo, nil
}
