package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"slash-sync-bot/internal/registry"
	"slash-sync-bot/internal/snapshot"

	"github.com/bwmarrin/discordgo"
)

const greetManifest = `
category = "Fun"

[[commands]]
name = "greet"
description = "Greet someone"
response = "Hello {user}!"
`

const greetManifestV2 = `
category = "Fun"

[[commands]]
name = "greet"
description = "Greet someone politely"
response = "Good day {user}!"

[[commands]]
name = "wave"
description = "Wave back"
response = "👋"
`

type mockSyncer struct {
	calls atomic.Int32
}

func (m *mockSyncer) SyncLocal(_ context.Context) (snapshot.Diff, error) {
	m.calls.Add(1)
	return snapshot.Diff{}, nil
}

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// touch bumps the mtime well past the recorded one; mtime granularity on some
// filesystems is a full second.
func touch(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "fun.toml"), greetManifest)
	writeManifest(t, filepath.Join(dir, "notes.txt"), "not a manifest")

	reg := registry.New()
	w := New(dir, time.Second, reg, &mockSyncer{})
	w.LoadAll()

	if _, ok := reg.Lookup("greet", discordgo.ChatApplicationCommand); !ok {
		t.Error("Expected greet to be registered")
	}
	if reg.Len() != 1 {
		t.Errorf("Expected exactly 1 command, got %d", reg.Len())
	}
}

func TestLoadAll_MissingDir(t *testing.T) {
	reg := registry.New()
	w := New(filepath.Join(t.TempDir(), "absent"), time.Second, reg, &mockSyncer{})
	w.LoadAll()

	if reg.Len() != 0 {
		t.Error("Expected no commands from a missing directory")
	}
}

func TestScan_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	w := New(dir, time.Second, reg, &mockSyncer{})

	if w.Scan() {
		t.Error("Expected no change on an empty directory")
	}

	writeManifest(t, filepath.Join(dir, "fun.toml"), greetManifest)
	if !w.Scan() {
		t.Error("Expected a change after adding a manifest")
	}
	if _, ok := reg.Lookup("greet", discordgo.ChatApplicationCommand); !ok {
		t.Error("Expected greet to be registered")
	}

	if w.Scan() {
		t.Error("Expected no change on an unmodified directory")
	}
}

func TestScan_DetectsEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fun.toml")
	writeManifest(t, path, greetManifest)

	reg := registry.New()
	w := New(dir, time.Second, reg, &mockSyncer{})
	w.LoadAll()

	writeManifest(t, path, greetManifestV2)
	touch(t, path)

	if !w.Scan() {
		t.Error("Expected a change after editing the manifest")
	}
	if _, ok := reg.Lookup("wave", discordgo.ChatApplicationCommand); !ok {
		t.Error("Expected the new command from the edited manifest")
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 commands, got %d", reg.Len())
	}
}

func TestScan_DetectsDeletion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fun.toml")
	writeManifest(t, path, greetManifest)

	reg := registry.New()
	w := New(dir, time.Second, reg, &mockSyncer{})
	w.LoadAll()

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if !w.Scan() {
		t.Error("Expected a change after deleting the manifest")
	}
	if reg.Len() != 0 {
		t.Errorf("Expected no commands left, got %d", reg.Len())
	}
}

func TestScan_BrokenManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	writeManifest(t, path, "category = ")

	reg := registry.New()
	w := New(dir, time.Second, reg, &mockSyncer{})

	if w.Scan() {
		t.Error("Expected no change from a broken manifest")
	}
	// The mtime is recorded anyway, the broken file is not re-parsed until
	// edited again.
	if w.Scan() {
		t.Error("Expected the broken manifest to be skipped on the next scan")
	}
}

func TestScan_ConflictWithBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, filepath.Join(dir, "clash.toml"), `
[[commands]]
name = "ping"
description = "Shadow the builtin"
response = "nope"
`)

	reg := registry.New()
	err := reg.Register(&registry.Command{
		Definition: &discordgo.ApplicationCommand{Name: "ping", Description: "builtin"},
		Handler:    func(s registry.Session, i *discordgo.InteractionCreate) {},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	w := New(dir, time.Second, reg, &mockSyncer{})
	if w.Scan() {
		t.Error("Expected a conflicting manifest not to change the tree")
	}
	cmd, ok := reg.Lookup("ping", discordgo.ChatApplicationCommand)
	if !ok || cmd.Definition.Description != "builtin" {
		t.Error("Expected the builtin to survive the conflict")
	}
}

func TestRun_TriggersSync(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	syncer := &mockSyncer{}
	w := New(dir, 10*time.Millisecond, reg, syncer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	writeManifest(t, filepath.Join(dir, "fun.toml"), greetManifest)

	deadline := time.After(2 * time.Second)
	for syncer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Timed out waiting for the reload to trigger a sync")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
