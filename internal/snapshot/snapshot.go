// Package snapshot persists the enriched collection as a pretty-printed JSON
// array. The file on disk is the durable store for the whole pipeline, so
// every write replaces it atomically: a crash mid-write can never corrupt
// the previous snapshot.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

// Load reads a snapshot file. A missing file is not an error and returns
// (nil, nil); a malformed file returns an error so the caller can decide to
// start fresh.
func Load(path string) ([]model.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "snapshot: read %s", path)
	}

	var companies []model.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, eris.Wrapf(err, "snapshot: parse %s", path)
	}
	return companies, nil
}

// Write serializes the full collection and replaces path atomically via a
// sibling temp file and rename.
func Write(path string, companies []model.Company) error {
	// Marshal a non-nil slice so an empty collection serializes as [].
	if companies == nil {
		companies = []model.Company{}
	}
	return writeJSON(path, companies)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "snapshot: marshal")
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrapf(err, "snapshot: create temp in %s", dir)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return eris.Wrapf(err, "snapshot: write %s", tmpPath)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return eris.Wrapf(err, "snapshot: sync %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return eris.Wrapf(err, "snapshot: close %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return eris.Wrapf(err, "snapshot: rename to %s", path)
	}
	return nil
}
