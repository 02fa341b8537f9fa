package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"slash-sync-bot/internal/components"
	"slash-sync-bot/internal/registry"
	"slash-sync-bot/internal/snapshot"

	"github.com/bwmarrin/discordgo"
)

const commandsPerPage = 6

// Help opens a paginated category menu over every registered command.
func (h *BotHandler) Help(s registry.Session, i *discordgo.InteractionCreate) {
	pages := BuildHelpPages(h.Registry.Categories())
	if err := h.Pager.StartCategories(s, i, pages); err != nil {
		slog.Error("Failed to open help menu", "error", err)
	}
}

// BuildHelpPages renders one paginator category per registry category, with
// a fixed number of commands per embed page.
func BuildHelpPages(categories []registry.Category) []components.CategoryPage {
	pages := make([]components.CategoryPage, 0, len(categories))
	for _, cat := range categories {
		var embeds []*discordgo.MessageEmbed
		for start := 0; start < len(cat.Commands); start += commandsPerPage {
			end := min(start+commandsPerPage, len(cat.Commands))
			embeds = append(embeds, helpEmbed(cat, cat.Commands[start:end]))
		}
		pages = append(pages, components.CategoryPage{Label: cat.Name, Pages: embeds})
	}
	return pages
}

func helpEmbed(cat registry.Category, cmds []*registry.Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: cat.Name,
		Color: 0x5865F2,
	}
	for _, cmd := range cmds {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  signature(cmd.Definition),
			Value: description(cmd.Definition),
		})
	}
	return embed
}

// signature renders an invocation line: "/echo <message>" with optional
// arguments bracketed, or the command name for context menus.
func signature(def *discordgo.ApplicationCommand) string {
	if def.Type == discordgo.UserApplicationCommand || def.Type == discordgo.MessageApplicationCommand {
		return fmt.Sprintf("%s (%s context menu)", def.Name, snapshot.TypeName(def.Type))
	}

	var sb strings.Builder
	sb.WriteString("/" + def.Name)
	for _, opt := range def.Options {
		if opt.Required {
			sb.WriteString(" <" + opt.Name + ">")
		} else {
			sb.WriteString(" [" + opt.Name + "]")
		}
	}
	return sb.String()
}

func description(def *discordgo.ApplicationCommand) string {
	if len(def.Options) == 0 {
		if def.Description == "" {
			return "​"
		}
		return def.Description
	}

	var sb strings.Builder
	sb.WriteString(def.Description)
	for _, opt := range def.Options {
		marker := "optional"
		if opt.Required {
			marker = "required"
		}
		fmt.Fprintf(&sb, "\n`%s` (%s): %s", opt.Name, marker, opt.Description)
	}
	return sb.String()
}
