package localization

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
)

// Catalog holds static translations keyed by message key and locale. Applied
// to command definitions before snapshotting, so a translation change shows
// up in the diff the same way any other definition change does.
type Catalog struct {
	entries map[string]map[discordgo.Locale]string
}

func New() *Catalog {
	return &Catalog{entries: make(map[string]map[discordgo.Locale]string)}
}

// Add records one translation. The locale tag must parse as a BCP 47 tag.
func (c *Catalog) Add(key string, locale discordgo.Locale, text string) error {
	if _, err := language.Parse(string(locale)); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	if c.entries[key] == nil {
		c.entries[key] = make(map[discordgo.Locale]string)
	}
	c.entries[key][locale] = text
	return nil
}

// Lookup returns all translations for a key, or nil when none exist.
func (c *Catalog) Lookup(key string) map[discordgo.Locale]string {
	translations := c.entries[key]
	if len(translations) == 0 {
		return nil
	}
	out := make(map[discordgo.Locale]string, len(translations))
	for locale, text := range translations {
		out[locale] = text
	}
	return out
}

// Apply decorates a command definition with name and description
// localizations from the catalog. Keys follow the shape
// "command.<name>.name", "command.<name>.description" and
// "command.<name>.option.<option>.name" (same suffix pattern for option
// descriptions). The definition is modified in place and returned.
func (c *Catalog) Apply(def *discordgo.ApplicationCommand) *discordgo.ApplicationCommand {
	base := "command." + def.Name
	if translations := c.Lookup(base + ".name"); translations != nil {
		def.NameLocalizations = &translations
	}
	if translations := c.Lookup(base + ".description"); translations != nil {
		def.DescriptionLocalizations = &translations
	}
	c.applyOptions(base, def.Options)
	return def
}

func (c *Catalog) applyOptions(base string, opts []*discordgo.ApplicationCommandOption) {
	for _, opt := range opts {
		optBase := base + ".option." + opt.Name
		if translations := c.Lookup(optBase + ".name"); translations != nil {
			opt.NameLocalizations = translations
		}
		if translations := c.Lookup(optBase + ".description"); translations != nil {
			opt.DescriptionLocalizations = translations
		}
		c.applyOptions(optBase, opt.Options)
	}
}

// ApplyAll decorates every definition in place and returns the slice.
func (c *Catalog) ApplyAll(defs []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
	for _, def := range defs {
		c.Apply(def)
	}
	return defs
}
