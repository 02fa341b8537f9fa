package localization

import "github.com/bwmarrin/discordgo"

// Builtin returns the catalog for the compiled-in commands. Editing a
// translation here changes the published definitions, so the next sync
// reports those commands as updated.
func Builtin() *Catalog {
	c := New()
	add := func(key string, locale discordgo.Locale, text string) {
		// Locales are compile-time constants here, Add cannot fail.
		_ = c.Add(key, locale, text)
	}

	add("command.ping.description", discordgo.German, "Prüfen, ob der Bot erreichbar ist")
	add("command.ping.description", discordgo.French, "Vérifier que le bot est en ligne")
	add("command.ping.description", discordgo.SpanishES, "Comprueba que el bot está en línea")

	add("command.echo.description", discordgo.German, "Eine Nachricht zurückgeben")
	add("command.echo.description", discordgo.French, "Répéter un message")
	add("command.echo.option.message.description", discordgo.German, "Was wiederholt werden soll")
	add("command.echo.option.message.description", discordgo.French, "Quoi répéter")

	add("command.help.description", discordgo.German, "Alle Befehle nach Kategorie durchsuchen")
	add("command.help.description", discordgo.French, "Parcourir les commandes par catégorie")
	add("command.help.description", discordgo.SpanishES, "Explora los comandos por categoría")

	return c
}
