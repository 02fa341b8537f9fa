package storage

import (
	"context"

	"slash-sync-bot/internal/snapshot"
)

// Store persists the last-known command snapshot set per guild, so a restart
// can diff against what was actually published last. The global command set
// is stored under an empty guild ID.
type Store interface {
	SaveSnapshots(ctx context.Context, guildID string, snaps []snapshot.CommandSnapshot) error
	LoadSnapshots(ctx context.Context, guildID string) ([]snapshot.CommandSnapshot, error)
	Close()
}
