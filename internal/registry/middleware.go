package registry

import (
	"log/slog"

	"slash-sync-bot/internal/formatting"

	"github.com/bwmarrin/discordgo"
)

// Middleware wraps a handler with a cross-cutting check.
type Middleware func(Handler) Handler

// WithAdmin rejects the interaction unless the invoking member has the
// Administrator permission.
func WithAdmin(next Handler) Handler {
	return func(s Session, i *discordgo.InteractionCreate) {
		if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			Respond(s, i, formatting.MsgAdminRequired, true)
			return
		}
		next(s, i)
	}
}

// WithGuildOnly rejects interactions invoked outside a guild (DMs).
func WithGuildOnly(next Handler) Handler {
	return func(s Session, i *discordgo.InteractionCreate) {
		if i.GuildID == "" {
			Respond(s, i, formatting.MsgGuildOnly, true)
			return
		}
		next(s, i)
	}
}

// WithLogging logs every invocation with the command name and invoking user.
func WithLogging(next Handler) Handler {
	return func(s Session, i *discordgo.InteractionCreate) {
		name := ""
		if i.Type == discordgo.InteractionApplicationCommand {
			name = i.ApplicationCommandData().Name
		}
		slog.Info("Command invoked", "name", name, "user", invokerID(i), "guild", i.GuildID)
		next(s, i)
	}
}

// Chain applies middlewares right to left, so the first listed runs first.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Respond sends a plain text interaction response, optionally ephemeral.
func Respond(s Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		slog.Error("Failed to respond to interaction", "error", err)
	}
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
