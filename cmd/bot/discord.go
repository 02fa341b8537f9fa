package main

import (
	"log/slog"

	"slash-sync-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

func NewDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	// Text command dispatch needs message events plus the privileged message
	// content intent; neither is requested when the prefix is disabled.
	intents := discordgo.IntentsGuilds
	if cfg.CommandPrefix != "" {
		intents |= discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
	}
	discord.Identify.Intents = intents

	return discord, nil
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Bot is online!", "user", session.State.User.Username, "id", session.State.User.ID)
}
