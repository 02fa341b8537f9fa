package manifest

import (
	"fmt"
	"os"
	"strings"

	"slash-sync-bot/internal/registry"

	"github.com/bwmarrin/discordgo"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Manifest is one TOML extension file declaring template-driven commands.
// Manifests are the hot-reloadable unit: editing one while the bot runs
// re-registers its commands and triggers a smart sync.
type Manifest struct {
	Category string    `toml:"category"`
	Commands []Command `toml:"commands"`
}

type Command struct {
	Name                     string            `toml:"name"`
	Description              string            `toml:"description"`
	Response                 string            `toml:"response"`
	Ephemeral                bool              `toml:"ephemeral"`
	AdminOnly                bool              `toml:"admin_only"`
	NSFW                     bool              `toml:"nsfw"`
	Options                  []Option          `toml:"options"`
	NameLocalizations        map[string]string `toml:"name_localizations"`
	DescriptionLocalizations map[string]string `toml:"description_localizations"`
}

type Option struct {
	Name                     string            `toml:"name"`
	Description              string            `toml:"description"`
	Type                     string            `toml:"type"`
	Required                 bool              `toml:"required"`
	MinValue                 *float64          `toml:"min_value"`
	MaxValue                 float64           `toml:"max_value"`
	MinLength                *int              `toml:"min_length"`
	MaxLength                int               `toml:"max_length"`
	Choices                  []Choice          `toml:"choices"`
	NameLocalizations        map[string]string `toml:"name_localizations"`
	DescriptionLocalizations map[string]string `toml:"description_localizations"`
}

type Choice struct {
	Name  string `toml:"name"`
	Value any    `toml:"value"`
}

var optionTypes = map[string]discordgo.ApplicationCommandOptionType{
	"string":      discordgo.ApplicationCommandOptionString,
	"integer":     discordgo.ApplicationCommandOptionInteger,
	"number":      discordgo.ApplicationCommandOptionNumber,
	"boolean":     discordgo.ApplicationCommandOptionBoolean,
	"user":        discordgo.ApplicationCommandOptionUser,
	"channel":     discordgo.ApplicationCommandOptionChannel,
	"role":        discordgo.ApplicationCommandOptionRole,
	"mentionable": discordgo.ApplicationCommandOptionMentionable,
	"attachment":  discordgo.ApplicationCommandOptionAttachment,
}

// Parse decodes and validates one manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads a manifest file and builds registry commands from it. The
// caller registers them under the file's path as source.
func Load(path string) ([]*registry.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m.Build(), nil
}

// Build turns the manifest into registry commands with template handlers.
func (m *Manifest) Build() []*registry.Command {
	cmds := make([]*registry.Command, 0, len(m.Commands))
	for _, mc := range m.Commands {
		handler := templateHandler(mc.Response, mc.Ephemeral)
		if mc.AdminOnly {
			handler = registry.WithAdmin(handler)
		}
		cmds = append(cmds, &registry.Command{
			Definition: mc.definition(),
			Category:   m.Category,
			Handler:    handler,
		})
	}
	return cmds
}

func (m *Manifest) validate() error {
	if len(m.Commands) == 0 {
		return fmt.Errorf("manifest declares no commands")
	}
	for _, mc := range m.Commands {
		if mc.Name == "" {
			return fmt.Errorf("command without a name")
		}
		if mc.Description == "" {
			return fmt.Errorf("command %q: description is required", mc.Name)
		}
		if mc.Response == "" {
			return fmt.Errorf("command %q: response is required", mc.Name)
		}
		if err := validateLocales(mc.NameLocalizations, mc.DescriptionLocalizations); err != nil {
			return fmt.Errorf("command %q: %w", mc.Name, err)
		}
		for _, opt := range mc.Options {
			if opt.Name == "" || opt.Description == "" {
				return fmt.Errorf("command %q: options need a name and description", mc.Name)
			}
			if _, ok := optionTypes[opt.Type]; !ok {
				return fmt.Errorf("command %q, option %q: unknown type %q", mc.Name, opt.Name, opt.Type)
			}
			if err := validateLocales(opt.NameLocalizations, opt.DescriptionLocalizations); err != nil {
				return fmt.Errorf("command %q, option %q: %w", mc.Name, opt.Name, err)
			}
		}
	}
	return nil
}

func validateLocales(localeMaps ...map[string]string) error {
	for _, lm := range localeMaps {
		for tag := range lm {
			if _, err := language.Parse(tag); err != nil {
				return fmt.Errorf("invalid locale %q: %w", tag, err)
			}
		}
	}
	return nil
}

func (mc Command) definition() *discordgo.ApplicationCommand {
	def := &discordgo.ApplicationCommand{
		Name:        mc.Name,
		Type:        discordgo.ChatApplicationCommand,
		Description: mc.Description,
	}
	if mc.NSFW {
		nsfw := true
		def.NSFW = &nsfw
	}
	if mc.AdminOnly {
		perms := int64(discordgo.PermissionAdministrator)
		def.DefaultMemberPermissions = &perms
	}
	if locs := toLocales(mc.NameLocalizations); locs != nil {
		def.NameLocalizations = &locs
	}
	if locs := toLocales(mc.DescriptionLocalizations); locs != nil {
		def.DescriptionLocalizations = &locs
	}
	for _, opt := range mc.Options {
		def.Options = append(def.Options, opt.definition())
	}
	return def
}

func (o Option) definition() *discordgo.ApplicationCommandOption {
	def := &discordgo.ApplicationCommandOption{
		Name:                     o.Name,
		Description:              o.Description,
		Type:                     optionTypes[o.Type],
		Required:                 o.Required,
		MinValue:                 o.MinValue,
		MaxValue:                 o.MaxValue,
		MinLength:                o.MinLength,
		MaxLength:                o.MaxLength,
		NameLocalizations:        toLocales(o.NameLocalizations),
		DescriptionLocalizations: toLocales(o.DescriptionLocalizations),
	}
	for _, c := range o.Choices {
		def.Choices = append(def.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: c.Value,
		})
	}
	return def
}

func toLocales(m map[string]string) map[discordgo.Locale]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[discordgo.Locale]string, len(m))
	for tag, text := range m {
		out[discordgo.Locale(tag)] = text
	}
	return out
}

// templateHandler responds with the manifest's response template rendered
// against the interaction: {user} becomes the invoker mention, {<option>}
// the supplied option value.
func templateHandler(template string, ephemeral bool) registry.Handler {
	return func(s registry.Session, i *discordgo.InteractionCreate) {
		registry.Respond(s, i, Render(template, i), ephemeral)
	}
}

// Render substitutes template placeholders with interaction values.
func Render(template string, i *discordgo.InteractionCreate) string {
	out := strings.ReplaceAll(template, "{user}", mention(i))
	for _, opt := range i.ApplicationCommandData().Options {
		value := fmt.Sprint(opt.Value)
		if opt.Type == discordgo.ApplicationCommandOptionUser {
			value = "<@" + value + ">"
		}
		out = strings.ReplaceAll(out, "{"+opt.Name+"}", value)
	}
	return out
}

func mention(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Mention()
	}
	if i.User != nil {
		return i.User.Mention()
	}
	return "there"
}
