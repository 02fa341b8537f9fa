package snapshot

import (
	"fmt"
	"maps"

	"github.com/bwmarrin/discordgo"
)

// CommandSnapshot is an immutable structural record of one declared command
// at the time it was observed, either fetched from Discord or built from the
// local registry. Snapshots are never mutated after construction; a fresh set
// is built for every diff.
type CommandSnapshot struct {
	Name                     string                           `json:"name"`
	Type                     discordgo.ApplicationCommandType `json:"type"`
	Description              string                           `json:"description"`
	DefaultMemberPermissions *int64                           `json:"default_member_permissions,omitempty"`
	NSFW                     bool                             `json:"nsfw"`
	Options                  []OptionSnapshot                 `json:"options,omitempty"`
	NameLocalizations        map[discordgo.Locale]string      `json:"name_localizations,omitempty"`
	DescriptionLocalizations map[discordgo.Locale]string      `json:"description_localizations,omitempty"`
}

// OptionSnapshot describes one parameter, sub-command or sub-command group.
// Groups recurse through Options.
type OptionSnapshot struct {
	Name                     string                                 `json:"name"`
	Description              string                                 `json:"description"`
	Type                     discordgo.ApplicationCommandOptionType `json:"type"`
	Required                 bool                                   `json:"required"`
	Autocomplete             bool                                   `json:"autocomplete"`
	MinValue                 *float64                               `json:"min_value,omitempty"`
	MaxValue                 float64                                `json:"max_value,omitempty"`
	MinLength                *int                                   `json:"min_length,omitempty"`
	MaxLength                int                                    `json:"max_length,omitempty"`
	ChannelTypes             []discordgo.ChannelType                `json:"channel_types,omitempty"`
	Choices                  []ChoiceSnapshot                       `json:"choices,omitempty"`
	Options                  []OptionSnapshot                       `json:"options,omitempty"`
	NameLocalizations        map[discordgo.Locale]string            `json:"name_localizations,omitempty"`
	DescriptionLocalizations map[discordgo.Locale]string            `json:"description_localizations,omitempty"`
}

// ChoiceSnapshot is one fixed name/value pair offered for an option.
type ChoiceSnapshot struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// FromApplicationCommand converts a discordgo command definition into a
// snapshot. A zero command type is normalized to ChatApplicationCommand,
// matching what Discord assumes when the field is omitted.
func FromApplicationCommand(cmd *discordgo.ApplicationCommand) CommandSnapshot {
	typ := cmd.Type
	if typ == 0 {
		typ = discordgo.ChatApplicationCommand
	}

	snap := CommandSnapshot{
		Name:        cmd.Name,
		Type:        typ,
		Description: cmd.Description,
		Options:     fromOptions(cmd.Options),
	}

	if cmd.DefaultMemberPermissions != nil {
		perms := *cmd.DefaultMemberPermissions
		snap.DefaultMemberPermissions = &perms
	}
	if cmd.NSFW != nil {
		snap.NSFW = *cmd.NSFW
	}
	if cmd.NameLocalizations != nil && len(*cmd.NameLocalizations) > 0 {
		snap.NameLocalizations = maps.Clone(*cmd.NameLocalizations)
	}
	if cmd.DescriptionLocalizations != nil && len(*cmd.DescriptionLocalizations) > 0 {
		snap.DescriptionLocalizations = maps.Clone(*cmd.DescriptionLocalizations)
	}

	return snap
}

// FromApplicationCommands snapshots a whole command set, preserving order.
func FromApplicationCommands(cmds []*discordgo.ApplicationCommand) []CommandSnapshot {
	snaps := make([]CommandSnapshot, 0, len(cmds))
	for _, cmd := range cmds {
		snaps = append(snaps, FromApplicationCommand(cmd))
	}
	return snaps
}

func fromOptions(opts []*discordgo.ApplicationCommandOption) []OptionSnapshot {
	if len(opts) == 0 {
		return nil
	}
	out := make([]OptionSnapshot, len(opts))
	for i, opt := range opts {
		out[i] = OptionSnapshot{
			Name:         opt.Name,
			Description:  opt.Description,
			Type:         opt.Type,
			Required:     opt.Required,
			Autocomplete: opt.Autocomplete,
			MaxValue:     opt.MaxValue,
			MaxLength:    opt.MaxLength,
			ChannelTypes: append([]discordgo.ChannelType(nil), opt.ChannelTypes...),
			Options:      fromOptions(opt.Options),
		}
		if opt.MinValue != nil {
			v := *opt.MinValue
			out[i].MinValue = &v
		}
		if opt.MinLength != nil {
			v := *opt.MinLength
			out[i].MinLength = &v
		}
		if len(opt.Choices) > 0 {
			choices := make([]ChoiceSnapshot, len(opt.Choices))
			for j, c := range opt.Choices {
				choices[j] = ChoiceSnapshot{Name: c.Name, Value: c.Value}
			}
			out[i].Choices = choices
		}
		if len(opt.NameLocalizations) > 0 {
			out[i].NameLocalizations = maps.Clone(opt.NameLocalizations)
		}
		if len(opt.DescriptionLocalizations) > 0 {
			out[i].DescriptionLocalizations = maps.Clone(opt.DescriptionLocalizations)
		}
	}
	return out
}

// Equal reports structural equality over every attribute, including nested
// options. This relation is the basis of the diff: two snapshots that are
// Equal never trigger a re-publish.
func (s CommandSnapshot) Equal(other CommandSnapshot) bool {
	if s.Name != other.Name ||
		s.Type != other.Type ||
		s.Description != other.Description ||
		s.NSFW != other.NSFW {
		return false
	}
	if !int64PtrEqual(s.DefaultMemberPermissions, other.DefaultMemberPermissions) {
		return false
	}
	if !maps.Equal(s.NameLocalizations, other.NameLocalizations) ||
		!maps.Equal(s.DescriptionLocalizations, other.DescriptionLocalizations) {
		return false
	}
	return optionsEqual(s.Options, other.Options)
}

func (o OptionSnapshot) Equal(other OptionSnapshot) bool {
	if o.Name != other.Name ||
		o.Description != other.Description ||
		o.Type != other.Type ||
		o.Required != other.Required ||
		o.Autocomplete != other.Autocomplete ||
		o.MaxValue != other.MaxValue ||
		o.MaxLength != other.MaxLength {
		return false
	}
	if !floatPtrEqual(o.MinValue, other.MinValue) || !intPtrEqual(o.MinLength, other.MinLength) {
		return false
	}
	if len(o.ChannelTypes) != len(other.ChannelTypes) {
		return false
	}
	for i := range o.ChannelTypes {
		if o.ChannelTypes[i] != other.ChannelTypes[i] {
			return false
		}
	}
	if len(o.Choices) != len(other.Choices) {
		return false
	}
	for i := range o.Choices {
		if !o.Choices[i].Equal(other.Choices[i]) {
			return false
		}
	}
	if !maps.Equal(o.NameLocalizations, other.NameLocalizations) ||
		!maps.Equal(o.DescriptionLocalizations, other.DescriptionLocalizations) {
		return false
	}
	return optionsEqual(o.Options, other.Options)
}

// Equal compares choice values through their printed form: a remote set
// decoded from JSON carries float64 where the local definition used int.
func (c ChoiceSnapshot) Equal(other ChoiceSnapshot) bool {
	return c.Name == other.Name && fmt.Sprint(c.Value) == fmt.Sprint(other.Value)
}

func optionsEqual(a, b []OptionSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
