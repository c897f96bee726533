package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/port/driven"
)

// unengagedGrace is how old an item must be before zero engagement counts
// against it. New items deserve a grace period before being flagged.
const unengagedGrace = 72 * time.Hour

// RunResult aggregates everything a run produced. All state is threaded
// explicitly through the pipeline stages; there is no shared accumulator.
type RunResult struct {
	// Selected is how many repositories the batch selector chose.
	Selected int
	// Overviews are the rows written to the overview snapshot, sorted by
	// attention score descending.
	Overviews []model.RepoOverview
	// UrgentItems are the unengaged items written to the urgent feed, sorted
	// oldest-first.
	UrgentItems []model.UrgentItem
	// Warnings are the non-fatal problems encountered. They never change the
	// run's exit status.
	Warnings []model.Warning
	// DetailsWritten counts the per-repo detail documents written.
	DetailsWritten int
}

// Pipeline runs one refresh of the dashboard's data files: select a batch,
// fetch overviews, scan for unengaged items, score, write snapshots, fetch
// details, and advance the refresh state.
type Pipeline struct {
	gh          driven.GitHubClient
	registry    driven.RegistryStore
	refresh     driven.RefreshStore
	snapshots   driven.SnapshotStore
	weights     model.ScoreWeights
	concurrency int
	now         func() time.Time
}

// NewPipeline creates a Pipeline. concurrency bounds the overview and detail
// fetch passes; values below 1 are treated as 1 (strictly sequential, the
// rate-limit-friendly default).
func NewPipeline(
	gh driven.GitHubClient,
	registry driven.RegistryStore,
	refresh driven.RefreshStore,
	snapshots driven.SnapshotStore,
	concurrency int,
) *Pipeline {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		gh:          gh,
		registry:    registry,
		refresh:     refresh,
		snapshots:   snapshots,
		weights:     model.DefaultScoreWeights(),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Run executes one refresh. Per-repository fetch failures and scan failures
// are recorded as warnings and never abort the run; only configuration and
// persistence problems return an error.
func (p *Pipeline) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	start := p.now().UTC()

	registry, err := p.registry.LoadRegistry()
	if err != nil {
		return nil, err
	}
	status, err := p.refresh.LoadRefreshStatus()
	if err != nil {
		return nil, err
	}

	batch := SelectBatch(registry, status, params, start)
	result := &RunResult{Selected: len(batch)}
	if len(batch) == 0 {
		slog.Info("no repositories need refreshing", "active", len(registry.Active()))
		return result, nil
	}
	slog.Info("processing batch",
		"repos", len(batch),
		"full_refresh", params.FullRefresh(),
		"concurrency", p.concurrency,
	)

	summaries := p.fetchOverviews(ctx, batch, result)
	slog.Info("overviews fetched", "succeeded", len(summaries), "selected", len(batch))

	urgentItems, scanWarnings := p.scanUnengaged(ctx, repoNames(summaries), start)
	result.Warnings = append(result.Warnings, scanWarnings...)
	result.UrgentItems = urgentItems

	unengagedByRepo := make(map[string]int, len(summaries))
	for _, item := range urgentItems {
		unengagedByRepo[item.Repo]++
	}

	result.Overviews = p.buildOverviews(ctx, summaries, unengagedByRepo, start)

	meta := model.Meta{FetchedAt: start, RepoCount: len(result.Overviews)}
	if err := p.snapshots.WriteOverview(model.OverviewDocument{Meta: meta, Repos: result.Overviews}); err != nil {
		return nil, fmt.Errorf("writing overview snapshot: %w", err)
	}
	if err := p.snapshots.WriteUrgentItems(model.UrgentItemsDocument{Meta: meta, Items: urgentItems}); err != nil {
		return nil, fmt.Errorf("writing urgent-items snapshot: %w", err)
	}
	for _, summary := range summaries {
		status.MarkOverview(summary.FullName, start)
	}

	if err := p.writeDetails(ctx, summaries, status, start, result); err != nil {
		return nil, err
	}

	if params.FullRefresh() {
		status.MarkFullRefresh(start)
	}
	if err := p.refresh.SaveRefreshStatus(status); err != nil {
		return nil, fmt.Errorf("saving refresh status: %w", err)
	}

	slog.Info("run complete",
		"repos", len(result.Overviews),
		"urgent_items", len(result.UrgentItems),
		"details_written", result.DetailsWritten,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// fetchOverviews runs the overview pass through a bounded worker pool.
// Failed repositories are dropped with a warning; they must not appear in
// any of this run's outputs. Results keep batch order.
func (p *Pipeline) fetchOverviews(ctx context.Context, batch []model.RegistryEntry, result *RunResult) []model.RepoSummary {
	type slot struct {
		summary  *model.RepoSummary
		warnings []model.Warning
	}
	slots := make([]slot, len(batch))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, entry := range batch {
		g.Go(func() error {
			summary, err := p.gh.FetchRepoOverview(ctx, entry.Name)
			if err != nil {
				slog.Warn("overview fetch failed", "repo", entry.Name, "error", err)
				slots[i].warnings = append(slots[i].warnings, model.Warning{
					Repo:    entry.Name,
					Message: fmt.Sprintf("failed to fetch overview: %v", err),
				})
				return nil
			}
			if summary.Archived {
				// Registry staleness is informational, not blocking.
				slog.Warn("repository archived but marked active in registry", "repo", entry.Name)
				slots[i].warnings = append(slots[i].warnings, model.Warning{
					Repo:    entry.Name,
					Message: "repository is archived but marked active in registry",
				})
			}
			slots[i].summary = summary
			return nil
		})
	}
	_ = g.Wait() // workers record warnings instead of returning errors

	summaries := make([]model.RepoSummary, 0, len(batch))
	for _, s := range slots {
		result.Warnings = append(result.Warnings, s.warnings...)
		if s.summary != nil {
			summaries = append(summaries, *s.summary)
		}
	}
	return summaries
}

// scanUnengaged runs the issue and PR scans concurrently and joins the
// results, sorted oldest-first. A failed scan degrades to zero items with a
// warning; it is isolated exactly like a per-repository fetch failure.
func (p *Pipeline) scanUnengaged(ctx context.Context, names []string, start time.Time) ([]model.UrgentItem, []model.Warning) {
	if len(names) == 0 {
		return []model.UrgentItem{}, nil
	}
	cutoff := start.Add(-unengagedGrace)

	var (
		issues, prs     []model.UrgentItem
		issueErr, prErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		issues, issueErr = p.gh.SearchUnengagedIssues(ctx, names, cutoff)
		return nil
	})
	g.Go(func() error {
		prs, prErr = p.gh.SearchUnengagedPRs(ctx, names, cutoff)
		return nil
	})
	_ = g.Wait()

	var warnings []model.Warning
	if issueErr != nil {
		slog.Warn("unengaged issue scan failed", "error", issueErr)
		warnings = append(warnings, model.Warning{
			Repo:    "issue-scan",
			Message: fmt.Sprintf("unengaged issue scan failed: %v", issueErr),
		})
		issues = nil
	}
	if prErr != nil {
		slog.Warn("unengaged PR scan failed", "error", prErr)
		warnings = append(warnings, model.Warning{
			Repo:    "pr-scan",
			Message: fmt.Sprintf("unengaged PR scan failed: %v", prErr),
		})
		prs = nil
	}

	items := make([]model.UrgentItem, 0, len(issues)+len(prs))
	items = append(items, issues...)
	items = append(items, prs...)
	slices.SortStableFunc(items, func(a, b model.UrgentItem) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	slog.Info("unengaged scan complete",
		"cutoff", cutoff.Format("2006-01-02"),
		"issues", len(issues),
		"prs", len(prs),
	)
	return items, warnings
}

// buildOverviews derives the scored overview rows from the fetched
// summaries. The commit-count sub-fetch is best-effort enrichment: failures
// degrade silently to zero rather than dropping the repository.
func (p *Pipeline) buildOverviews(ctx context.Context, summaries []model.RepoSummary, unengagedByRepo map[string]int, start time.Time) []model.RepoOverview {
	overviews := make([]model.RepoOverview, 0, len(summaries))
	for _, summary := range summaries {
		overview := model.RepoOverview{
			Name:        summary.FullName,
			Description: summary.Description,
			Language:    summary.Language,
			OpenIssues:  summary.OpenIssues,
			OpenPRs:     summary.OpenPRs,
			LastPush:    summary.PushedAt,
		}

		if release := summary.LastRelease; release != nil {
			publishedAt := release.PublishedAt
			overview.LastReleaseTag = release.Tag
			overview.LastRelease = &publishedAt

			commits, err := p.gh.CountCommitsSince(ctx, summary.FullName, publishedAt)
			if err != nil {
				slog.Debug("commit count unavailable", "repo", summary.FullName, "error", err)
				commits = 0
			}
			overview.CommitsSinceRelease = commits
		}

		overview.UnengagedCount = unengagedByRepo[summary.FullName]
		overview.AttentionScore = p.weights.Score(
			summary.OpenIssues,
			summary.OpenPRs,
			summary.ReleaseStaleDays(start),
			overview.UnengagedCount,
		)
		overviews = append(overviews, overview)
	}

	// Highest attention first; stable keeps fetch order on ties.
	slices.SortStableFunc(overviews, func(a, b model.RepoOverview) int {
		switch {
		case a.AttentionScore > b.AttentionScore:
			return -1
		case a.AttentionScore < b.AttentionScore:
			return 1
		default:
			return 0
		}
	})
	return overviews
}

// writeDetails fetches detail documents for repositories with open activity
// and writes them. Fetches run through the bounded worker pool; writes and
// refresh-state updates stay on the single control flow. A failed fetch
// skips that repository with a warning; a failed write is fatal.
func (p *Pipeline) writeDetails(ctx context.Context, summaries []model.RepoSummary, status *model.RefreshStatus, start time.Time, result *RunResult) error {
	active := make([]model.RepoSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.HasActivity() {
			active = append(active, summary)
		}
	}
	if len(active) == 0 {
		return nil
	}
	slog.Info("fetching detail", "repos", len(active))

	type slot struct {
		detail *model.RepoDetail
		err    error
	}
	slots := make([]slot, len(active))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, summary := range active {
		g.Go(func() error {
			detail, err := p.gh.FetchRepoDetail(ctx, summary.FullName)
			if err != nil {
				slog.Warn("detail fetch failed", "repo", summary.FullName, "error", err)
				slots[i].err = err
				return nil
			}
			detail.Description = summary.Description
			detail.Language = summary.Language
			slots[i].detail = detail
			return nil
		})
	}
	_ = g.Wait()

	for i, s := range slots {
		if s.detail == nil {
			result.Warnings = append(result.Warnings, model.Warning{
				Repo:    active[i].FullName,
				Message: fmt.Sprintf("failed to fetch detail: %v", s.err),
			})
			continue
		}
		detail := s.detail
		if err := p.snapshots.WriteRepoDetail(detail); err != nil {
			return fmt.Errorf("writing detail for %s: %w", detail.Name, err)
		}
		status.MarkDetail(detail.Name, start)
		result.DetailsWritten++
	}
	return nil
}

func repoNames(summaries []model.RepoSummary) []string {
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.FullName)
	}
	return names
}
