package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"slash-sync-bot/internal/manifest"
	"slash-sync-bot/internal/metrics"
	"slash-sync-bot/internal/registry"
	"slash-sync-bot/internal/snapshot"
)

// SyncTrigger is invoked after a reload changed the command tree.
type SyncTrigger interface {
	SyncLocal(ctx context.Context) (snapshot.Diff, error)
}

// Watcher polls the extensions directory for manifest changes and hot-reloads
// them: reload, re-register, then smart sync, sequentially on one goroutine.
// Failures are logged and the next interval retries implicitly.
type Watcher struct {
	dir      string
	interval time.Duration
	reg      *registry.Registry
	syncer   SyncTrigger
	mtimes   map[string]time.Time
}

func New(dir string, interval time.Duration, reg *registry.Registry, syncer SyncTrigger) *Watcher {
	return &Watcher{
		dir:      dir,
		interval: interval,
		reg:      reg,
		syncer:   syncer,
		mtimes:   make(map[string]time.Time),
	}
}

// LoadAll loads every manifest currently in the directory. Called once at
// startup, before the first sync. A missing directory just means no
// extensions.
func (w *Watcher) LoadAll() {
	paths, err := filepath.Glob(filepath.Join(w.dir, "*.toml"))
	if err != nil {
		slog.Error("Failed to list extension manifests", "dir", w.dir, "error", err)
		return
	}
	for _, path := range paths {
		w.load(path)
	}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	slog.Info("Watching for manifest changes", "dir", w.dir, "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Manifest watcher stopped")
			return
		case <-ticker.C:
			if w.Scan() {
				if _, err := w.syncer.SyncLocal(ctx); err != nil {
					slog.Error("Sync after reload failed", "error", err)
				}
			}
		}
	}
}

// Scan reloads changed manifests and unregisters deleted ones. Returns true
// when the command tree changed.
func (w *Watcher) Scan() bool {
	paths, err := filepath.Glob(filepath.Join(w.dir, "*.toml"))
	if err != nil {
		slog.Error("Failed to list extension manifests", "dir", w.dir, "error", err)
		return false
	}

	seen := make(map[string]struct{}, len(paths))
	changed := false

	for _, path := range paths {
		seen[path] = struct{}{}
		info, err := os.Stat(path)
		if err != nil {
			slog.Error("Failed to stat manifest", "path", path, "error", err)
			continue
		}
		if last, ok := w.mtimes[path]; ok && !info.ModTime().After(last) {
			continue
		}
		slog.Info("Reloading manifest", "path", path)
		if w.load(path) {
			changed = true
		}
	}

	for path := range w.mtimes {
		if _, ok := seen[path]; !ok {
			slog.Info("Manifest removed, unregistering its commands", "path", path)
			delete(w.mtimes, path)
			if err := w.reg.ReplaceSource(path, nil); err != nil {
				slog.Error("Failed to unregister manifest commands", "path", path, "error", err)
				continue
			}
			changed = true
		}
	}
	return changed
}

// load parses one manifest and swaps its commands into the registry.
// The mtime is recorded even on failure so a broken file is not re-parsed
// every second until it is edited again.
func (w *Watcher) load(path string) bool {
	if info, err := os.Stat(path); err == nil {
		w.mtimes[path] = info.ModTime()
	}

	cmds, err := manifest.Load(path)
	if err != nil {
		metrics.ManifestReloads.WithLabelValues("error").Inc()
		slog.Error("Failed to load manifest", "path", path, "error", err)
		return false
	}
	if err := w.reg.ReplaceSource(path, cmds); err != nil {
		metrics.ManifestReloads.WithLabelValues("conflict").Inc()
		slog.Error("Failed to register manifest commands", "path", path, "error", err)
		return false
	}
	metrics.ManifestReloads.WithLabelValues("ok").Inc()
	slog.Info("Loaded manifest", "path", path, "commands", len(cmds))
	return true
}
