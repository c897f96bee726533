// Package datadir implements the registry, refresh-state, and snapshot
// stores as plain JSON documents under a data directory. The UI layer reads
// these files over a simple fetch-by-path interface, so shapes and file
// names are part of the contract.
package datadir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.RegistryStore = (*Store)(nil)
	_ driven.RefreshStore  = (*Store)(nil)
	_ driven.SnapshotStore = (*Store)(nil)
)

const (
	refreshStatusFile = "refresh-status.json"
	overviewFile      = "repos-overview.json"
	urgentItemsFile   = "urgent-items.json"
	reposSubdir       = "repos"
)

// Store reads and writes the dashboard's JSON documents.
type Store struct {
	dataDir      string
	registryPath string
}

// NewStore creates a Store rooted at dataDir. The registry document lives
// outside the data directory (it is operator-maintained config, not output).
func NewStore(dataDir, registryPath string) *Store {
	return &Store{dataDir: dataDir, registryPath: registryPath}
}

// LoadRegistry reads and validates the registry document. A missing file is
// an error: without a registry there is nothing to refresh.
func (s *Store) LoadRegistry() (*model.Registry, error) {
	data, err := os.ReadFile(s.registryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("registry file not found: %s", s.registryPath)
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	var registry model.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", s.registryPath, err)
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid registry %s: %w", s.registryPath, err)
	}
	return &registry, nil
}

// LoadRefreshStatus reads the refresh-state document. A missing file yields
// an empty status; the first run starts from nothing.
func (s *Store) LoadRefreshStatus() (*model.RefreshStatus, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, refreshStatusFile))
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewRefreshStatus(), nil
		}
		return nil, fmt.Errorf("reading refresh status: %w", err)
	}

	var status model.RefreshStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("parsing refresh status: %w", err)
	}
	if status.Repos == nil {
		status.Repos = make(map[string]*model.RepoRefresh)
	}
	return &status, nil
}

// SaveRefreshStatus overwrites the refresh-state document whole.
func (s *Store) SaveRefreshStatus(status *model.RefreshStatus) error {
	return s.writeJSON(filepath.Join(s.dataDir, refreshStatusFile), status)
}

// WriteOverview replaces the repos-overview document.
func (s *Store) WriteOverview(doc model.OverviewDocument) error {
	return s.writeJSON(filepath.Join(s.dataDir, overviewFile), doc)
}

// WriteUrgentItems replaces the urgent-items document.
func (s *Store) WriteUrgentItems(doc model.UrgentItemsDocument) error {
	return s.writeJSON(filepath.Join(s.dataDir, urgentItemsFile), doc)
}

// WriteRepoDetail writes one detail document keyed by the repository's
// short name.
func (s *Store) WriteRepoDetail(detail *model.RepoDetail) error {
	name := detail.ShortName() + ".json"
	return s.writeJSON(filepath.Join(s.dataDir, reposSubdir, name), detail)
}

// writeJSON marshals v and writes it atomically, creating parent directories
// as needed. Readers never observe a half-written document.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
