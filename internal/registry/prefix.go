package registry

import (
	"strings"
	"time"

	"slash-sync-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// MessageSession widens Session with the channel send used for text replies.
type MessageSession interface {
	Session
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// PrefixRouter makes chat commands invocable from plain messages: with the
// prefix "!", "!echo hi" runs the same handler as /echo. The handler receives
// a synthetic interaction built from the message and replies through the
// channel instead of an interaction response, so command code stays unaware
// of which path invoked it.
type PrefixRouter struct {
	registry *Registry
	prefix   string
}

// NewPrefixRouter returns a router for the given prefix. An empty prefix
// disables text invocation entirely.
func NewPrefixRouter(registry *Registry, prefix string) *PrefixRouter {
	return &PrefixRouter{registry: registry, prefix: prefix}
}

// HandleFunc adapts the router for discordgo.Session.AddHandler.
func (r *PrefixRouter) HandleFunc() func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		r.Handle(s, m)
	}
}

// Handle dispatches a single message. Messages without the prefix, messages
// from bots and names without a matching chat command are ignored.
func (r *PrefixRouter) Handle(s MessageSession, m *discordgo.MessageCreate) {
	if r.prefix == "" || m.Author == nil || m.Author.Bot {
		return
	}
	body, ok := strings.CutPrefix(m.Content, r.prefix)
	if !ok {
		return
	}
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}

	cmd, found := r.registry.Lookup(fields[0], discordgo.ChatApplicationCommand)
	if !found || cmd.Handler == nil {
		return
	}

	metrics.InteractionsHandled.WithLabelValues("prefix").Inc()
	cmd.Handler(
		&textSession{session: s, channelID: m.ChannelID},
		syntheticInteraction(cmd.Definition, m, fields[1:]),
	)
}

// syntheticInteraction shapes a message into the interaction form handlers
// expect. The message ID stands in for the interaction ID, which keeps
// component custom IDs unique per invocation.
func syntheticInteraction(def *discordgo.ApplicationCommand, m *discordgo.MessageCreate, args []string) *discordgo.InteractionCreate {
	interaction := &discordgo.Interaction{
		ID:        m.ID,
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Data: discordgo.ApplicationCommandInteractionData{
			ID:          def.ID,
			Name:        def.Name,
			CommandType: discordgo.ChatApplicationCommand,
			Options:     parseArguments(def.Options, args),
		},
	}

	// Message events carry the author separately from the member.
	switch {
	case m.Member != nil:
		member := *m.Member
		member.User = m.Author
		interaction.Member = &member
	case m.GuildID != "":
		interaction.Member = &discordgo.Member{User: m.Author}
	default:
		interaction.User = m.Author
	}

	return &discordgo.InteractionCreate{Interaction: interaction}
}

// parseArguments assigns whitespace-split arguments to the command's options
// in declaration order. A trailing string option consumes the rest of the
// line, so "!echo hello there" yields message="hello there". Values stay as
// strings; handlers that need numbers parse them the same way they parse
// slash input.
func parseArguments(defs []*discordgo.ApplicationCommandOption, args []string) []*discordgo.ApplicationCommandInteractionDataOption {
	var opts []*discordgo.ApplicationCommandInteractionDataOption
	for n, def := range defs {
		if len(args) == 0 {
			break
		}
		value := args[0]
		args = args[1:]
		if n == len(defs)-1 && def.Type == discordgo.ApplicationCommandOptionString && len(args) > 0 {
			value += " " + strings.Join(args, " ")
			args = nil
		}
		opts = append(opts, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  def.Name,
			Type:  def.Type,
			Value: value,
		})
	}
	return opts
}

// textSession translates interaction responses into channel messages. The
// ephemeral flag has no channel equivalent and is dropped; everything else
// the handlers produce (content, embeds, components) survives the trip.
type textSession struct {
	session   MessageSession
	channelID string
}

func (t *textSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	if resp == nil || resp.Data == nil {
		return nil
	}
	_, err := t.session.ChannelMessageSendComplex(t.channelID, &discordgo.MessageSend{
		Content:    resp.Data.Content,
		Embeds:     resp.Data.Embeds,
		Components: resp.Data.Components,
	}, options...)
	return err
}

func (t *textSession) HeartbeatLatency() time.Duration {
	return t.session.HeartbeatLatency()
}
