// Package application contains the refresh pipeline and its orchestration.
package application

import (
	"slices"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

// RunParams are the already-validated parameters of a single run.
type RunParams struct {
	// MaxAge excludes repositories refreshed more recently than now-MaxAge.
	// Zero means no age filter.
	MaxAge time.Duration
	// BatchSize truncates the selection to the N stalest repositories.
	// Zero means no limit.
	BatchSize int
	// ForceInclude lists repository full names that bypass the age filter.
	ForceInclude []string
}

// FullRefresh reports whether the run processes every active repository.
// Only full refreshes advance the global lastFullRefresh marker.
func (p RunParams) FullRefresh() bool {
	return p.MaxAge == 0 && p.BatchSize == 0
}

// SelectBatch computes the ordered subset of registry entries to process.
// In full-refresh mode every active entry is returned in registry order.
// In batch mode entries are filtered by overview-refresh age (force-included
// entries bypass the filter), sorted stalest-first, and truncated to the
// batch size. Never-refreshed entries sort as maximally stale.
func SelectBatch(registry *model.Registry, status *model.RefreshStatus, params RunParams, now time.Time) []model.RegistryEntry {
	entries := registry.Active()
	if params.FullRefresh() {
		return entries
	}

	forced := make(map[string]bool, len(params.ForceInclude))
	for _, name := range params.ForceInclude {
		forced[name] = true
	}

	type candidate struct {
		entry       model.RegistryEntry
		lastRefresh time.Time
	}

	candidates := make([]candidate, 0, len(entries))
	cutoff := now.Add(-params.MaxAge)
	for _, entry := range entries {
		last := status.LastOverview(entry.Name)
		if params.MaxAge > 0 && !forced[entry.Name] && !last.Before(cutoff) {
			continue
		}
		candidates = append(candidates, candidate{entry: entry, lastRefresh: last})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.lastRefresh.Compare(b.lastRefresh)
	})

	if params.BatchSize > 0 && len(candidates) > params.BatchSize {
		candidates = candidates[:params.BatchSize]
	}

	selected := make([]model.RegistryEntry, 0, len(candidates))
	for _, c := range candidates {
		selected = append(selected, c.entry)
	}
	return selected
}
