package localization

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestAdd_InvalidLocale(t *testing.T) {
	c := New()
	if err := c.Add("command.x.name", discordgo.Locale("not a locale!"), "x"); err == nil {
		t.Error("Expected an error for an invalid locale tag")
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c := New()
	if err := c.Add("command.ping.name", discordgo.German, "ping"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got := c.Lookup("command.ping.name")
	got[discordgo.German] = "tampered"

	if c.Lookup("command.ping.name")[discordgo.German] != "ping" {
		t.Error("Expected Lookup to return a copy, not the internal map")
	}
}

func TestLookup_Missing(t *testing.T) {
	if got := New().Lookup("command.absent.name"); got != nil {
		t.Errorf("Expected nil for a missing key, got %v", got)
	}
}

func TestApply(t *testing.T) {
	c := New()
	mustAdd := func(key string, locale discordgo.Locale, text string) {
		t.Helper()
		if err := c.Add(key, locale, text); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	mustAdd("command.echo.description", discordgo.German, "Eine Nachricht zurückgeben")
	mustAdd("command.echo.option.message.name", discordgo.German, "nachricht")
	mustAdd("command.echo.option.message.description", discordgo.French, "Quoi répéter")

	def := &discordgo.ApplicationCommand{
		Name:        "echo",
		Description: "Repeat a message",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "What to repeat"},
		},
	}
	c.Apply(def)

	if def.NameLocalizations != nil {
		t.Error("Expected no name localizations without catalog entries")
	}
	if def.DescriptionLocalizations == nil || (*def.DescriptionLocalizations)[discordgo.German] != "Eine Nachricht zurückgeben" {
		t.Error("Expected German description localization")
	}
	opt := def.Options[0]
	if opt.NameLocalizations[discordgo.German] != "nachricht" {
		t.Error("Expected German option name localization")
	}
	if opt.DescriptionLocalizations[discordgo.French] != "Quoi répéter" {
		t.Error("Expected French option description localization")
	}
}

func TestApply_NestedOptions(t *testing.T) {
	c := New()
	if err := c.Add("command.admin.option.config.option.key.description", discordgo.German, "Schlüssel"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	def := &discordgo.ApplicationCommand{
		Name:        "admin",
		Description: "Admin tools",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "config",
				Description: "Change config",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "key", Description: "Config key"},
				},
			},
		},
	}
	c.Apply(def)

	nested := def.Options[0].Options[0]
	if nested.DescriptionLocalizations[discordgo.German] != "Schlüssel" {
		t.Error("Expected localization on the nested option")
	}
}

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	translations := c.Lookup("command.ping.description")
	if translations == nil {
		t.Fatal("Expected ping description translations")
	}
	for _, locale := range []discordgo.Locale{discordgo.German, discordgo.French, discordgo.SpanishES} {
		if translations[locale] == "" {
			t.Errorf("Expected a %s translation", locale)
		}
	}

	def := &discordgo.ApplicationCommand{Name: "ping", Description: "Check that the bot is alive"}
	c.Apply(def)
	if def.DescriptionLocalizations == nil {
		t.Error("Expected builtin catalog to localize the ping description")
	}
}
