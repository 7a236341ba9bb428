package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Manifest tracks which seasons are archived.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Retention   Retention   `json:"retention"`
	Seasons     SeasonsMeta `json:"seasons"`
}

type Retention struct {
	Seasons int `json:"seasons"`
}

type SeasonsMeta struct {
	Years        []int     `json:"years"`
	LastArchived time.Time `json:"lastArchived"`
}

func defaultManifest(retention int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{Seasons: retention},
		Seasons:     SeasonsMeta{Years: []int{}},
	}
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, "manifest.json")
}

func readManifest(path string, retention int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retention), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retention), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	return writeJSON(manifestPath(basePath), m)
}

// writeJSON writes atomically through a temp file and rename.
func writeJSON(target string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
