package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

func entryNames(entries []model.RegistryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestSelectBatch_FullRefreshReturnsAllActive(t *testing.T) {
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/one", Active: true},
		{Name: "acme/two", Active: false},
		{Name: "acme/three", Active: true},
	}}
	status := model.NewRefreshStatus()

	selected := SelectBatch(registry, status, RunParams{}, time.Now())

	assert.Equal(t, []string{"acme/one", "acme/three"}, entryNames(selected))
}

func TestSelectBatch_MaxAgeWithForceInclude(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/a", Active: true}, // never refreshed
		{Name: "acme/b", Active: true}, // refreshed 10 days ago
		{Name: "acme/c", Active: true}, // refreshed 1 hour ago, force-included
	}}
	status := model.NewRefreshStatus()
	status.MarkOverview("acme/b", now.Add(-10*24*time.Hour))
	status.MarkOverview("acme/c", now.Add(-1*time.Hour))

	params := RunParams{MaxAge: 24 * time.Hour, ForceInclude: []string{"acme/c"}}
	selected := SelectBatch(registry, status, params, now)

	// A and B pass the age filter and sort oldest-first; C passes only via
	// force-include and sorts last by its recent refresh time.
	assert.Equal(t, []string{"acme/a", "acme/b", "acme/c"}, entryNames(selected))
}

func TestSelectBatch_MaxAgeExcludesFresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/fresh", Active: true},
		{Name: "acme/stale", Active: true},
	}}
	status := model.NewRefreshStatus()
	status.MarkOverview("acme/fresh", now.Add(-1*time.Hour))
	status.MarkOverview("acme/stale", now.Add(-48*time.Hour))

	selected := SelectBatch(registry, status, RunParams{MaxAge: 24 * time.Hour}, now)

	assert.Equal(t, []string{"acme/stale"}, entryNames(selected))
}

func TestSelectBatch_BatchSizeTruncatesOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/d1", Active: true},
		{Name: "acme/d5", Active: true},
		{Name: "acme/d3", Active: true},
		{Name: "acme/d2", Active: true},
		{Name: "acme/d4", Active: true},
	}}
	status := model.NewRefreshStatus()
	status.MarkOverview("acme/d1", now.Add(-1*24*time.Hour))
	status.MarkOverview("acme/d2", now.Add(-2*24*time.Hour))
	status.MarkOverview("acme/d3", now.Add(-3*24*time.Hour))
	status.MarkOverview("acme/d4", now.Add(-4*24*time.Hour))
	status.MarkOverview("acme/d5", now.Add(-5*24*time.Hour))

	selected := SelectBatch(registry, status, RunParams{BatchSize: 2}, now)

	require.Len(t, selected, 2)
	assert.Equal(t, []string{"acme/d5", "acme/d4"}, entryNames(selected))
}

func TestSelectBatch_BatchSizeAloneStillSortsStalestFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/recent", Active: true},
		{Name: "acme/never", Active: true},
	}}
	status := model.NewRefreshStatus()
	status.MarkOverview("acme/recent", now.Add(-1*time.Hour))

	selected := SelectBatch(registry, status, RunParams{BatchSize: 5}, now)

	assert.Equal(t, []string{"acme/never", "acme/recent"}, entryNames(selected))
}

func TestSelectBatch_EmptySelection(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	registry := &model.Registry{Repos: []model.RegistryEntry{
		{Name: "acme/fresh", Active: true},
	}}
	status := model.NewRefreshStatus()
	status.MarkOverview("acme/fresh", now.Add(-5*time.Minute))

	selected := SelectBatch(registry, status, RunParams{MaxAge: time.Hour}, now)

	assert.Empty(t, selected)
}

func TestRunParams_FullRefresh(t *testing.T) {
	assert.True(t, RunParams{}.FullRefresh())
	assert.True(t, RunParams{ForceInclude: []string{"acme/a"}}.FullRefresh())
	assert.False(t, RunParams{MaxAge: time.Hour}.FullRefresh())
	assert.False(t, RunParams{BatchSize: 3}.FullRefresh())
}
