package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultRetention is the number of seasons kept when none is configured.
const DefaultRetention = 10

// Writer persists season archives and the manifest, keeping only the newest seasons.
type Writer struct {
	basePath  string
	retention int
	now       func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, retention int) *Writer {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Writer{basePath: basePath, retention: retention, now: time.Now}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeason writes one season and prunes seasons beyond retention.
func (w *Writer) WriteSeason(s Season) error {
	if w == nil {
		return fmt.Errorf("archive writer not configured")
	}
	if s.Season <= 0 {
		return fmt.Errorf("season required")
	}
	if s.ArchivedAt.IsZero() {
		s.ArchivedAt = w.now().UTC()
	}
	if err := writeJSON(SeasonPath(w.basePath, s.Season), s); err != nil {
		return fmt.Errorf("write season %d: %w", s.Season, err)
	}
	return w.updateManifest(s.ArchivedAt)
}

func (w *Writer) updateManifest(archivedAt time.Time) error {
	m, _ := readManifest(manifestPath(w.basePath), w.retention)

	years, err := listSeasons(w.basePath)
	if err != nil {
		return err
	}
	kept := w.prune(years)

	m.Seasons.Years = kept
	m.Seasons.LastArchived = archivedAt
	m.Retention.Seasons = w.retention
	return writeManifest(w.basePath, m)
}

// prune removes the oldest seasons beyond retention; years must be sorted ascending.
func (w *Writer) prune(years []int) []int {
	if len(years) <= w.retention {
		return years
	}
	drop := years[:len(years)-w.retention]
	for _, y := range drop {
		_ = os.Remove(SeasonPath(w.basePath, y))
	}
	return append([]int(nil), years[len(years)-w.retention:]...)
}

func listSeasons(basePath string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, "seasons"))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, err
	}
	years := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		y, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}
