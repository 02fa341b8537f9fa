package registry

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	interactionRespondFunc  func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	lastInteractionResponse *discordgo.InteractionResponse
	respondCalls            int
	latency                 time.Duration
}

func (m *mockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	m.respondCalls++
	m.lastInteractionResponse = resp
	if m.interactionRespondFunc != nil {
		return m.interactionRespondFunc(interaction, resp)
	}
	return nil
}

func (m *mockSession) HeartbeatLatency() time.Duration {
	return m.latency
}

func commandInteraction(name string, typ discordgo.ApplicationCommandType) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "test-guild",
			Data: discordgo.ApplicationCommandInteractionData{
				Name:        name,
				CommandType: typ,
			},
		},
	}
}
