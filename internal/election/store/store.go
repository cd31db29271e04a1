// Package store persists election snapshots. Every backend keeps exactly one
// document per deployment; Save overwrites it and Load returns
// sentinel.ErrNotFound until the first save.
package store

import (
	"encoding/json"
	"fmt"

	"tally/internal/election/models"
	"tally/pkg/platform/sentinel"
)

func encode(snap models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: decode snapshot: %w", sentinel.ErrCorrupt, err)
	}
	if snap.Version != models.SnapshotVersion {
		return models.Snapshot{}, fmt.Errorf("%w: snapshot version %d", sentinel.ErrCorrupt, snap.Version)
	}
	return snap, nil
}
