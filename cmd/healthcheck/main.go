// Command healthcheck exits 0 when the dashboard's overview snapshot exists
// and is fresh, 1 otherwise. It is intended for container healthchecks and
// cron monitoring of the fetch job.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AaronFeledy/maintainer-dashboard/internal/config"
	"github.com/AaronFeledy/maintainer-dashboard/internal/domain/model"
)

func main() {
	os.Exit(check())
}

func check() int {
	dataDir := "public/data"
	if v, ok := os.LookupEnv("MAINTDASH_DATA_DIR"); ok {
		dataDir = v
	}

	// The fetch job runs on a schedule, so freshness is the health signal:
	// a stale snapshot means runs are failing even if the last one wrote
	// valid JSON. The default allows one missed six-hour run plus slack.
	maxAge := 24 * time.Hour
	if v, ok := os.LookupEnv("MAINTDASH_MAX_DATA_AGE"); ok {
		parsed, err := config.ParseMaxAge(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "healthcheck: %v\n", err)
			return 1
		}
		maxAge = parsed
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "repos-overview.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: %v\n", err)
		return 1
	}

	var doc model.OverviewDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck: parsing overview snapshot: %v\n", err)
		return 1
	}

	age := time.Since(doc.Meta.FetchedAt)
	if age > maxAge {
		fmt.Fprintf(os.Stderr, "healthcheck: overview snapshot is %s old (max %s)\n",
			age.Round(time.Minute), maxAge)
		return 1
	}

	return 0
}
