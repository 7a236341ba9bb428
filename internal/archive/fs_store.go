package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotArchived is returned when a season has no archive file.
var ErrNotArchived = errors.New("season not archived")

// Store loads archived seasons.
type Store interface {
	LoadSeason(season int) (Season, error)
	Seasons() ([]int, error)
}

// FSStore loads archives from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed archive store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSeason reads {basePath}/seasons/{season}.json.
func (s *FSStore) LoadSeason(season int) (Season, error) {
	if s == nil {
		return Season{}, errors.New("archive store not configured")
	}
	f, err := os.Open(SeasonPath(s.basePath, season))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Season{}, fmt.Errorf("%w: %d", ErrNotArchived, season)
		}
		return Season{}, err
	}
	defer f.Close()

	var payload Season
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return Season{}, fmt.Errorf("decode season %d: %w", season, err)
	}
	if payload.Season == 0 {
		payload.Season = season
	}
	return payload, nil
}

// Seasons lists archived seasons, oldest first.
func (s *FSStore) Seasons() ([]int, error) {
	if s == nil {
		return nil, errors.New("archive store not configured")
	}
	return listSeasons(s.basePath)
}
