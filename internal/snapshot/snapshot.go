package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nordicstocks/internal/quote"
)

const dateLayout = "2006-01-02"

// Writer persists a fetched listing as indented JSON, once under a fixed
// "latest" name and once under the snapshot's calendar date. The layout is
// what the snapshot client reads back from the CDN.
type Writer struct {
	Dir string
}

// Write stores rows as latest.json and <date>.json under the output
// directory and returns both paths.
func (w Writer) Write(rows []quote.Quote, date time.Time) (latestPath, datedPath string, err error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encode snapshot: %w", err)
	}

	latestPath = filepath.Join(w.Dir, "latest.json")
	datedPath = filepath.Join(w.Dir, date.Format(dateLayout)+".json")

	if err := os.WriteFile(latestPath, b, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", latestPath, err)
	}
	if err := os.WriteFile(datedPath, b, 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", datedPath, err)
	}
	return latestPath, datedPath, nil
}
