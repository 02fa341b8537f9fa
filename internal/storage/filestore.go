package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"slash-sync-bot/internal/snapshot"
)

// FileStore persists snapshot sets as pretty-printed JSON files, one per
// guild, under a data directory. Used when no database is configured.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveSnapshots(_ context.Context, guildID string, snaps []snapshot.CommandSnapshot) error {
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}
	if err := os.WriteFile(s.path(guildID), data, 0o644); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	return nil
}

func (s *FileStore) LoadSnapshots(_ context.Context, guildID string) ([]snapshot.CommandSnapshot, error) {
	data, err := os.ReadFile(s.path(guildID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshots: %w", err)
	}

	var snaps []snapshot.CommandSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, fmt.Errorf("unmarshal snapshots: %w", err)
	}
	return snaps, nil
}

func (s *FileStore) Close() {}

func (s *FileStore) path(guildID string) string {
	if guildID == "" {
		guildID = "global"
	}
	return filepath.Join(s.dir, guildID+".json")
}
