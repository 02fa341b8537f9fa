package registry

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Handler processes one interaction.
type Handler func(s Session, i *discordgo.InteractionCreate)

// SourceBuiltin marks commands compiled into the bot, as opposed to commands
// loaded from a manifest file.
const SourceBuiltin = "builtin"

// Command is one entry in the registry: a slash or context-menu command
// definition together with its category, handlers and origin.
type Command struct {
	Definition   *discordgo.ApplicationCommand
	Category     string
	Handler      Handler
	Autocomplete Handler
	Source       string
}

type commandKey struct {
	name string
	typ  discordgo.ApplicationCommandType
}

// Registry is the local command tree: an explicit, ordered table of declared
// commands keyed by (name, type). It replaces the original's runtime patching
// of live objects with plain data.
type Registry struct {
	mu      sync.RWMutex
	ordered []*Command
	byKey   map[commandKey]*Command
}

func New() *Registry {
	return &Registry{byKey: make(map[commandKey]*Command)}
}

// Register adds a command. The (name, type) pair must be unique across the
// registry.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Definition == nil || cmd.Definition.Name == "" {
		return fmt.Errorf("command definition must have a name")
	}
	if cmd.Source == "" {
		cmd.Source = SourceBuiltin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyFor(cmd.Definition)
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("command %q (type %d) already registered", key.name, key.typ)
	}
	r.byKey[key] = cmd
	r.ordered = append(r.ordered, cmd)
	return nil
}

// ReplaceSource swaps out every command that came from the given source for
// the provided set, in one step. Used by the manifest watcher on reload;
// cmds may be empty to drop the source entirely.
func (r *Registry) ReplaceSource(source string, cmds []*Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate against other sources before touching anything, so a
	// conflicting reload leaves the registry unchanged.
	incoming := make(map[commandKey]struct{}, len(cmds))
	for _, cmd := range cmds {
		key := keyFor(cmd.Definition)
		if _, dup := incoming[key]; dup {
			return fmt.Errorf("command %q (type %d) declared twice", key.name, key.typ)
		}
		incoming[key] = struct{}{}
		if existing, ok := r.byKey[key]; ok && existing.Source != source {
			return fmt.Errorf("command %q (type %d) already registered", key.name, key.typ)
		}
	}

	kept := make([]*Command, 0, len(r.ordered))
	for _, c := range r.ordered {
		if c.Source != source {
			kept = append(kept, c)
		} else {
			delete(r.byKey, keyFor(c.Definition))
		}
	}
	for _, cmd := range cmds {
		cmd.Source = source
		r.byKey[keyFor(cmd.Definition)] = cmd
		kept = append(kept, cmd)
	}
	r.ordered = kept
	return nil
}

// Lookup finds a command by name and type.
func (r *Registry) Lookup(name string, typ discordgo.ApplicationCommandType) (*Command, bool) {
	if typ == 0 {
		typ = discordgo.ChatApplicationCommand
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byKey[commandKey{name, typ}]
	return cmd, ok
}

// Definitions returns the declared command set in registration order, ready
// for snapshotting or publishing.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.ordered))
	for _, c := range r.ordered {
		defs = append(defs, c.Definition)
	}
	return defs
}

// Category groups the commands of one help-menu section.
type Category struct {
	Name     string
	Commands []*Command
}

// Categories returns commands grouped by category, categories ordered by
// first registration and commands in registration order within each.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := make(map[string]int)
	var categories []Category
	for _, c := range r.ordered {
		name := c.Category
		if name == "" {
			name = "General"
		}
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, Category{Name: name})
		}
		categories[i].Commands = append(categories[i].Commands, c)
	}
	return categories
}

// Len reports how many commands are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

func keyFor(def *discordgo.ApplicationCommand) commandKey {
	typ := def.Type
	if typ == 0 {
		typ = discordgo.ChatApplicationCommand
	}
	return commandKey{def.Name, typ}
}
