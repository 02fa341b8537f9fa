package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"slash-sync-bot/internal/localization"
	"slash-sync-bot/internal/metrics"
	"slash-sync-bot/internal/registry"
	"slash-sync-bot/internal/snapshot"
	"slash-sync-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// CommandAPI is the slice of the Discord API the syncer needs: listing the
// published command set and overwriting it.
type CommandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Syncer implements the smart sync policy: diff the declared command tree
// against the last observed set and only publish when something changed.
// The watcher invokes it sequentially; the mutex covers the startup call
// racing an early reload.
type Syncer struct {
	api     CommandAPI
	reg     *registry.Registry
	catalog *localization.Catalog
	store   storage.Store
	limiter *rate.Limiter
	appID   string
	guildID string

	mu        sync.Mutex
	lastKnown []snapshot.CommandSnapshot
}

func New(api CommandAPI, reg *registry.Registry, catalog *localization.Catalog, store storage.Store, appID, guildID string, publishRate rate.Limit) *Syncer {
	return &Syncer{
		api:     api,
		reg:     reg,
		catalog: catalog,
		store:   store,
		limiter: rate.NewLimiter(publishRate, 1),
		appID:   appID,
		guildID: guildID,
	}
}

// Restore seeds the last-known set from the store. Missing state is not an
// error; the first sync then treats everything as added.
func (s *Syncer) Restore(ctx context.Context) error {
	snaps, err := s.store.LoadSnapshots(ctx, s.guildID)
	if err != nil {
		return fmt.Errorf("restore snapshots: %w", err)
	}
	s.mu.Lock()
	s.lastKnown = snaps
	s.mu.Unlock()
	return nil
}

// SyncRemote diffs the declared tree against the commands Discord currently
// has published. Used once at startup, before the first publish.
func (s *Syncer) SyncRemote(ctx context.Context) (snapshot.Diff, error) {
	remote, err := s.api.ApplicationCommands(s.appID, s.guildID)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return snapshot.Diff{}, fmt.Errorf("fetch published commands: %w", err)
	}
	return s.sync(ctx, snapshot.FromApplicationCommands(remote))
}

// SyncLocal diffs the declared tree against the last-known set. Used after a
// manifest hot reload.
func (s *Syncer) SyncLocal(ctx context.Context) (snapshot.Diff, error) {
	s.mu.Lock()
	old := s.lastKnown
	s.mu.Unlock()
	return s.sync(ctx, old)
}

func (s *Syncer) sync(ctx context.Context, old []snapshot.CommandSnapshot) (snapshot.Diff, error) {
	defs := s.catalog.ApplyAll(s.reg.Definitions())
	current := snapshot.FromApplicationCommands(defs)

	diff := snapshot.Compare(old, current)
	if !diff.SyncNeeded() {
		slog.Info("No changes to commands detected", "commands", len(current))
		metrics.SyncRuns.WithLabelValues("skipped").Inc()
		s.setLastKnown(current)
		return diff, nil
	}

	slog.Info("Detected changes to commands", "diff", "\n"+diff.String())

	if err := s.limiter.Wait(ctx); err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return diff, fmt.Errorf("wait for publish slot: %w", err)
	}

	published, err := s.api.ApplicationCommandBulkOverwrite(s.appID, s.guildID, defs)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return diff, fmt.Errorf("publish commands: %w", err)
	}
	slog.Info("Successfully synced commands", "count", len(published))

	metrics.SyncRuns.WithLabelValues("needed").Inc()
	metrics.CommandChanges.WithLabelValues(string(snapshot.ChangeAdded)).Add(float64(len(diff.Added)))
	metrics.CommandChanges.WithLabelValues(string(snapshot.ChangeRemoved)).Add(float64(len(diff.Removed)))
	metrics.CommandChanges.WithLabelValues(string(snapshot.ChangeUpdated)).Add(float64(len(diff.Updated)))

	s.setLastKnown(current)
	if err := s.store.SaveSnapshots(ctx, s.guildID, current); err != nil {
		slog.Error("Failed to persist command snapshots", "error", err)
	}
	return diff, nil
}

// setLastKnown refreshes the stored set so the next diff runs against
// up-to-date state.
func (s *Syncer) setLastKnown(snaps []snapshot.CommandSnapshot) {
	s.mu.Lock()
	s.lastKnown = snaps
	s.mu.Unlock()
}

// LastKnown returns a copy of the current last-known set.
func (s *Syncer) LastKnown() []snapshot.CommandSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]snapshot.CommandSnapshot(nil), s.lastKnown...)
}
