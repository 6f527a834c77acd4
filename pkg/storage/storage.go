// Package storage keeps archived copies of save files in a pebble database.
//
// Every snapshot is stored under a KSUID, so keys sort by creation time and
// listing the archive returns the oldest backup first. Values are
// codec.Snapshot envelopes and are checksum-validated on read.
package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/cm3d2save/pkg/codec"
)

var ErrNotFound = errors.New("snapshot not found")

var snapshotPrefix = []byte("snap/")

// Entry describes a stored snapshot without its data
type Entry struct {
	ID      ksuid.KSUID `json:"id"`
	Name    string      `json:"name"`
	Version int32       `json:"version"`
	Time    time.Time   `json:"time"`
	Size    int         `json:"size"`
}

// SnapshotStore is a pebble-backed archive of save file snapshots
type SnapshotStore struct {
	db    *pebble.DB
	codec *codec.SnapshotCodec
}

func NewSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	return &SnapshotStore{db: db, codec: codec.NewSnapshotCodec()}, nil
}

func snapshotKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, snapshotPrefix...), id.Bytes()...)
}

// Create stores snap under a new ID
func (s *SnapshotStore) Create(snap *codec.Snapshot) (*ksuid.KSUID, error) {
	data, err := s.codec.Encode(snap)
	if err != nil {
		return nil, err
	}
	id := ksuid.New()
	if err := s.db.Set(snapshotKey(id), data, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return &id, nil
}

// Read returns the snapshot stored under id
func (s *SnapshotStore) Read(id ksuid.KSUID) (*codec.Snapshot, error) {
	data, closer, err := s.db.Get(snapshotKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// Decode copies out of the pebble-owned buffer.
	snap, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return snap, nil
}

// Delete removes a snapshot. Deleting a missing ID fails with ErrNotFound.
func (s *SnapshotStore) Delete(id ksuid.KSUID) error {
	key := snapshotKey(id)
	_, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	closer.Close()
	return s.db.Delete(key, pebble.Sync)
}

// List returns every snapshot, oldest first. Entries that fail validation
// are skipped and counted in the second return value.
func (s *SnapshotStore) List() ([]Entry, int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: snapshotPrefix,
		UpperBound: prefixEnd(snapshotPrefix),
	})
	if err != nil {
		return nil, 0, err
	}
	defer iter.Close()

	var entries []Entry
	damaged := 0
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(snapshotPrefix):])
		if err != nil {
			damaged++
			continue
		}
		snap, err := s.codec.Decode(iter.Value())
		if err != nil {
			damaged++
			continue
		}
		entries = append(entries, Entry{
			ID:      id,
			Name:    snap.Name,
			Version: snap.Version,
			Time:    snap.Time(),
			Size:    len(snap.Data),
		})
	}
	if err := iter.Error(); err != nil {
		return nil, 0, err
	}
	// KSUIDs only order to the second
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
	return entries, damaged, nil
}

// Prune deletes the oldest snapshots of name until at most keep remain and
// returns how many were removed. keep <= 0 disables pruning.
func (s *SnapshotStore) Prune(name string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	entries, _, err := s.List()
	if err != nil {
		return 0, err
	}
	var ids []ksuid.KSUID
	for _, e := range entries {
		if e.Name == name {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) <= keep {
		return 0, nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	drop := ids[:len(ids)-keep]
	for _, id := range drop {
		if err := batch.Delete(snapshotKey(id), nil); err != nil {
			return 0, err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return len(drop), nil
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
