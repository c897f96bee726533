package driven

import (
	"context"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

// GitHubClient defines the driven port for reading repository health data
// from the GitHub API.
type GitHubClient interface {
	// FetchRepoOverview retrieves summary metrics for one repository.
	FetchRepoOverview(ctx context.Context, repoFullName string) (*model.RepoSummary, error)
	// CountCommitsSince returns the number of commits on the default branch
	// since the given instant. Callers treat failures as zero; this is a
	// best-effort enrichment, not critical data.
	CountCommitsSince(ctx context.Context, repoFullName string, since time.Time) (int, error)
	// SearchUnengagedIssues returns all open issues with zero comments created
	// strictly before the cutoff, across the given repositories, fully paginated.
	SearchUnengagedIssues(ctx context.Context, repoNames []string, cutoff time.Time) ([]model.UrgentItem, error)
	// SearchUnengagedPRs returns all open pull requests with no reviews created
	// strictly before the cutoff, across the given repositories, fully paginated.
	SearchUnengagedPRs(ctx context.Context, repoNames []string, cutoff time.Time) ([]model.UrgentItem, error)
	// FetchRepoDetail retrieves a bounded set of issue/PR/release records for
	// one repository. Description and language are not populated; the caller
	// forwards them from the overview fetch.
	FetchRepoDetail(ctx context.Context, repoFullName string) (*model.RepoDetail, error)
	// FetchRateBudget reports the remaining API quota.
	FetchRateBudget(ctx context.Context) (*model.RateBudget, error)
}
