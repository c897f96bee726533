package driven

import "github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"

// RegistryStore loads the static list of tracked repositories.
type RegistryStore interface {
	// LoadRegistry reads and validates the registry document. A missing
	// registry file is a fatal error.
	LoadRegistry() (*model.Registry, error)
}

// RefreshStore persists per-repository refresh timestamps across runs.
type RefreshStore interface {
	// LoadRefreshStatus reads the refresh-state document. A missing file
	// yields an empty status (first run), not an error.
	LoadRefreshStatus() (*model.RefreshStatus, error)
	// SaveRefreshStatus overwrites the refresh-state document whole.
	SaveRefreshStatus(status *model.RefreshStatus) error
}

// SnapshotStore writes the output documents consumed by the UI layer.
// Each write replaces the previous document in full.
type SnapshotStore interface {
	WriteOverview(doc model.OverviewDocument) error
	WriteUrgentItems(doc model.UrgentItemsDocument) error
	// WriteRepoDetail writes one detail document keyed by the repository's
	// short name.
	WriteRepoDetail(detail *model.RepoDetail) error
}
