package model

import "fmt"

// Warning is a non-fatal problem recorded during a run: a failed per-repo
// fetch, a failed scan, or a data-quality mismatch. Warnings are reported to
// the operator at the end of the run and never change the exit status.
type Warning struct {
	Repo    string // repository full name, or a scan scope like "issue-scan"
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Repo, w.Message)
}
