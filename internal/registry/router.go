package registry

import (
	"log/slog"
	"strings"

	"slash-sync-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// Router dispatches interactions to registered command, autocomplete and
// component handlers. It is an explicit handler table; nothing is discovered
// at runtime.
type Router struct {
	registry   *Registry
	components map[string]Handler
}

func NewRouter(registry *Registry) *Router {
	return &Router{
		registry:   registry,
		components: make(map[string]Handler),
	}
}

// RegisterComponent routes component interactions whose custom ID starts with
// prefix (up to the first ':') to the given handler.
func (r *Router) RegisterComponent(prefix string, handler Handler) {
	r.components[prefix] = handler
}

// Handle dispatches a single interaction. Unknown commands and component IDs
// are logged and dropped.
func (r *Router) Handle(s Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		r.handleCommand(s, i, false)
	case discordgo.InteractionApplicationCommandAutocomplete:
		r.handleCommand(s, i, true)
	case discordgo.InteractionMessageComponent:
		r.handleComponent(s, i)
	}
}

// HandleFunc adapts the router for discordgo.Session.AddHandler.
func (r *Router) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i)
	}
}

func (r *Router) handleCommand(s Session, i *discordgo.InteractionCreate, autocomplete bool) {
	data := i.ApplicationCommandData()
	cmd, ok := r.registry.Lookup(data.Name, data.CommandType)
	if !ok {
		slog.Warn("No handler found for command", "name", data.Name)
		return
	}

	if autocomplete {
		if cmd.Autocomplete != nil {
			metrics.InteractionsHandled.WithLabelValues("autocomplete").Inc()
			cmd.Autocomplete(s, i)
		}
		return
	}
	if cmd.Handler == nil {
		slog.Warn("Command has no handler", "name", data.Name)
		return
	}
	metrics.InteractionsHandled.WithLabelValues("command").Inc()
	cmd.Handler(s, i)
}

func (r *Router) handleComponent(s Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	prefix, _, _ := strings.Cut(customID, ":")
	handler, ok := r.components[prefix]
	if !ok {
		slog.Warn("No handler found for component", "custom_id", customID)
		return
	}
	metrics.InteractionsHandled.WithLabelValues("component").Inc()
	handler(s, i)
}
