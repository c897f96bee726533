package model

import "time"

// RepoRefresh holds the last time each granularity of data was fetched for
// one repository. Nil means never fetched.
type RepoRefresh struct {
	Overview *time.Time `json:"overview"`
	Detail   *time.Time `json:"detail"`
}

// RefreshMeta holds run-level refresh bookkeeping.
type RefreshMeta struct {
	LastFullRefresh *time.Time `json:"lastFullRefresh"`
}

// RefreshStatus is the mutable process state persisted across runs. It is
// read at run start, advanced as each stage completes per repository, and
// written back whole at the end of the run.
type RefreshStatus struct {
	Meta  RefreshMeta             `json:"meta"`
	Repos map[string]*RepoRefresh `json:"repos"`
}

// NewRefreshStatus returns an empty status, as used on a first run when no
// state document exists yet.
func NewRefreshStatus() *RefreshStatus {
	return &RefreshStatus{Repos: make(map[string]*RepoRefresh)}
}

func (s *RefreshStatus) entry(repoFullName string) *RepoRefresh {
	if s.Repos == nil {
		s.Repos = make(map[string]*RepoRefresh)
	}
	r, ok := s.Repos[repoFullName]
	if !ok {
		r = &RepoRefresh{}
		s.Repos[repoFullName] = r
	}
	return r
}

// MarkOverview records that the repository's overview data was fetched at
// the given instant.
func (s *RefreshStatus) MarkOverview(repoFullName string, at time.Time) {
	s.entry(repoFullName).Overview = &at
}

// MarkDetail records that the repository's detail document was written at
// the given instant.
func (s *RefreshStatus) MarkDetail(repoFullName string, at time.Time) {
	s.entry(repoFullName).Detail = &at
}

// MarkFullRefresh records the completion of a full (unbatched) refresh.
func (s *RefreshStatus) MarkFullRefresh(at time.Time) {
	s.Meta.LastFullRefresh = &at
}

// LastOverview returns when the repository's overview was last fetched, or
// the zero time if it never was. Never-refreshed repositories therefore sort
// as maximally stale.
func (s *RefreshStatus) LastOverview(repoFullName string) time.Time {
	if r, ok := s.Repos[repoFullName]; ok && r.Overview != nil {
		return *r.Overview
	}
	return time.Time{}
}
