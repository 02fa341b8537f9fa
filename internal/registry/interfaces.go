package registry

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Session defines the Discord API surface handlers need. Narrow on purpose:
// tests substitute a mock instead of a live *discordgo.Session.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	HeartbeatLatency() time.Duration
}
