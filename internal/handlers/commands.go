package handlers

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"slash-sync-bot/internal/components"
	"slash-sync-bot/internal/formatting"
	"slash-sync-bot/internal/registry"

	"github.com/bwmarrin/discordgo"
)

// BotHandler carries the dependencies of the built-in commands.
type BotHandler struct {
	Registry *registry.Registry
	Pager    *components.Manager
}

var diceSuggestions = []string{"d4", "d6", "d8", "d10", "d12", "d20", "d100", "2d6", "3d6", "4d6"}

// RegisterBuiltins adds the compiled-in commands to the registry.
func RegisterBuiltins(reg *registry.Registry, pager *components.Manager) error {
	h := &BotHandler{Registry: reg, Pager: pager}

	minMessage := 1
	builtins := []*registry.Command{
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "ping",
				Description: "Check that the bot is alive",
			},
			Category: "General",
			Handler:  registry.Chain(h.Ping, registry.WithLogging),
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "echo",
				Description: "Repeat a message back to you",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "message",
						Description: "What to repeat",
						Required:    true,
						MinLength:   &minMessage,
						MaxLength:   2000,
					},
				},
			},
			Category: "General",
			Handler:  registry.Chain(h.Echo, registry.WithLogging),
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "roll",
				Description: "Roll some dice",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         "dice",
						Description:  "Dice to roll, like 2d6",
						Required:     true,
						Autocomplete: true,
					},
				},
			},
			Category:     "Fun",
			Handler:      registry.Chain(h.Roll, registry.WithLogging),
			Autocomplete: h.RollAutocomplete,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "help",
				Description: "Browse all commands by category",
			},
			Category: "General",
			Handler:  registry.Chain(h.Help, registry.WithLogging),
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name: "User Ping",
				Type: discordgo.UserApplicationCommand,
			},
			Category: "General",
			Handler:  registry.Chain(h.UserPing, registry.WithLogging),
		},
	}

	for _, cmd := range builtins {
		if err := reg.Register(cmd); err != nil {
			return fmt.Errorf("register builtin %q: %w", cmd.Definition.Name, err)
		}
	}
	return nil
}

func (h *BotHandler) Ping(s registry.Session, i *discordgo.InteractionCreate) {
	registry.Respond(s, i, formatting.MsgPong(s.HeartbeatLatency()), false)
}

func (h *BotHandler) Echo(s registry.Session, i *discordgo.InteractionCreate) {
	message := stringOptionValue(i, "message")
	if message == "" {
		registry.Respond(s, i, formatting.MsgInternalError, true)
		return
	}
	registry.Respond(s, i, message, false)
}

func (h *BotHandler) Roll(s registry.Session, i *discordgo.InteractionCreate) {
	dice := stringOptionValue(i, "dice")
	count, sides, ok := parseDice(dice)
	if !ok {
		registry.Respond(s, i, formatting.MsgInvalidDice, true)
		return
	}

	rolls := make([]int, count)
	total := 0
	for n := range rolls {
		rolls[n] = 1 + rand.Intn(sides)
		total += rolls[n]
	}
	registry.Respond(s, i, formatting.MsgRoll(dice, rolls, total), false)
}

func (h *BotHandler) RollAutocomplete(s registry.Session, i *discordgo.InteractionCreate) {
	prefix := strings.ToLower(stringOptionValue(i, "dice"))

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, suggestion := range diceSuggestions {
		if prefix == "" || strings.HasPrefix(suggestion, prefix) {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  suggestion,
				Value: suggestion,
			})
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		slog.Error("Failed to send autocomplete choices", "error", err)
	}
}

func (h *BotHandler) UserPing(s registry.Session, i *discordgo.InteractionCreate) {
	registry.Respond(s, i, formatting.MsgUserPing(i.ApplicationCommandData().TargetID), false)
}

func stringOptionValue(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return fmt.Sprint(opt.Value)
		}
	}
	return ""
}

// parseDice accepts "d20" and "XdY" forms with sane bounds.
func parseDice(dice string) (count, sides int, ok bool) {
	before, after, found := strings.Cut(strings.ToLower(dice), "d")
	if !found {
		return 0, 0, false
	}
	count = 1
	if before != "" {
		n, err := strconv.Atoi(before)
		if err != nil {
			return 0, 0, false
		}
		count = n
	}
	sides, err := strconv.Atoi(after)
	if err != nil {
		return 0, 0, false
	}
	if count < 1 || count > 100 || sides < 2 || sides > 1000 {
		return 0, 0, false
	}
	return count, sides, true
}
