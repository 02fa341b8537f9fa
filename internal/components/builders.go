package components

import "github.com/bwmarrin/discordgo"

// Builder functions assembling discordgo component trees. Callers compose
// these instead of declaring components declaratively; the result is plain
// immutable data handed to the API.

// Button builds a labeled button. Emoji may be empty.
func Button(customID, label, emoji string, style discordgo.ButtonStyle) discordgo.Button {
	b := discordgo.Button{
		CustomID: customID,
		Label:    label,
		Style:    style,
	}
	if emoji != "" {
		b.Emoji = &discordgo.ComponentEmoji{Name: emoji}
	}
	return b
}

// DisabledButton builds a button that renders but cannot be clicked.
func DisabledButton(customID, label, emoji string, style discordgo.ButtonStyle) discordgo.Button {
	b := Button(customID, label, emoji, style)
	b.Disabled = true
	return b
}

// ActionRow groups up to five components on one row.
func ActionRow(items ...discordgo.MessageComponent) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: items}
}

// SelectOption builds one entry of a select menu.
func SelectOption(label, value, description string) discordgo.SelectMenuOption {
	return discordgo.SelectMenuOption{
		Label:       label,
		Value:       value,
		Description: description,
	}
}

// SelectMenu builds a string select menu.
func SelectMenu(customID, placeholder string, options []discordgo.SelectMenuOption) discordgo.SelectMenu {
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customID,
		Placeholder: placeholder,
		Options:     options,
	}
}
