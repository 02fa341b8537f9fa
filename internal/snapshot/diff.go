package snapshot

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
)

// Diff classifies every command of two snapshot sets into exactly one bucket.
// Updated holds the new version of a changed command, Removed the old version
// of a dropped one.
type Diff struct {
	Same    []CommandSnapshot
	Added   []CommandSnapshot
	Removed []CommandSnapshot
	Updated []CommandSnapshot
}

type commandKey struct {
	name string
	typ  discordgo.ApplicationCommandType
}

// Compare diffs two command sets keyed by (name, type). It is pure: no I/O,
// no mutation of its inputs. Bucket order follows input order (new set first,
// then old for removals), so results are deterministic.
func Compare(old, new []CommandSnapshot) Diff {
	oldByKey := make(map[commandKey]CommandSnapshot, len(old))
	for _, cmd := range old {
		oldByKey[commandKey{cmd.Name, cmd.Type}] = cmd
	}
	newKeys := make(map[commandKey]struct{}, len(new))

	var diff Diff
	for _, cmd := range new {
		key := commandKey{cmd.Name, cmd.Type}
		newKeys[key] = struct{}{}
		oldCmd, ok := oldByKey[key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, cmd)
		case !oldCmd.Equal(cmd):
			diff.Updated = append(diff.Updated, cmd)
		default:
			diff.Same = append(diff.Same, cmd)
		}
	}
	for _, cmd := range old {
		if _, ok := newKeys[commandKey{cmd.Name, cmd.Type}]; !ok {
			diff.Removed = append(diff.Removed, cmd)
		}
	}
	return diff
}

// SyncNeeded reports whether publishing is required: true iff at least one of
// Added, Removed or Updated is non-empty.
func (d Diff) SyncNeeded() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Updated) > 0
}

// Changes returns all changed commands as (snapshot, change kind) rows in
// bucket order: added, removed, updated.
func (d Diff) Changes() []Change {
	changes := make([]Change, 0, len(d.Added)+len(d.Removed)+len(d.Updated))
	for _, cmd := range d.Added {
		changes = append(changes, Change{Command: cmd, Kind: ChangeAdded})
	}
	for _, cmd := range d.Removed {
		changes = append(changes, Change{Command: cmd, Kind: ChangeRemoved})
	}
	for _, cmd := range d.Updated {
		changes = append(changes, Change{Command: cmd, Kind: ChangeUpdated})
	}
	return changes
}

type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeUpdated ChangeKind = "updated"
)

// Change pairs a command snapshot with how it changed between two sets.
type Change struct {
	Command CommandSnapshot
	Kind    ChangeKind
}

// String renders the changed commands as a plain text table for logging.
func (d Diff) String() string {
	changes := d.Changes()
	if len(changes) == 0 {
		return "no changes"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tCHANGE")
	for _, c := range changes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Command.Name, TypeName(c.Command.Type), c.Kind)
	}
	w.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// TypeName returns a readable name for a command type.
func TypeName(t discordgo.ApplicationCommandType) string {
	switch t {
	case discordgo.ChatApplicationCommand:
		return "chat"
	case discordgo.UserApplicationCommand:
		return "user"
	case discordgo.MessageApplicationCommand:
		return "message"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}
