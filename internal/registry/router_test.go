package registry

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestRouter_DispatchesCommand(t *testing.T) {
	reg := New()
	var handlerCalled bool
	cmd := testCommand("test-command")
	cmd.Handler = func(s Session, i *discordgo.InteractionCreate) {
		handlerCalled = true
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	router := NewRouter(reg)
	router.Handle(&mockSession{}, commandInteraction("test-command", 0))

	if !handlerCalled {
		t.Error("Expected registered handler to be called")
	}
}

func TestRouter_UnknownCommand(t *testing.T) {
	router := NewRouter(New())
	session := &mockSession{}

	// Must not panic and must not respond.
	router.Handle(session, commandInteraction("missing", 0))

	if session.respondCalls != 0 {
		t.Error("Expected no response for unknown command")
	}
}

func TestRouter_DispatchesByType(t *testing.T) {
	reg := New()
	var chatCalled, menuCalled bool

	chat := testCommand("ping")
	chat.Handler = func(s Session, i *discordgo.InteractionCreate) { chatCalled = true }
	menu := &Command{
		Definition: &discordgo.ApplicationCommand{Name: "ping", Type: discordgo.UserApplicationCommand},
		Handler:    func(s Session, i *discordgo.InteractionCreate) { menuCalled = true },
	}
	if err := reg.Register(chat); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(menu); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	router := NewRouter(reg)
	router.Handle(&mockSession{}, commandInteraction("ping", discordgo.UserApplicationCommand))

	if menuCalled == false || chatCalled == true {
		t.Error("Expected only the user-type handler to be called")
	}
}

func TestRouter_Autocomplete(t *testing.T) {
	reg := New()
	var completeCalled, handlerCalled bool
	cmd := testCommand("roll")
	cmd.Handler = func(s Session, i *discordgo.InteractionCreate) { handlerCalled = true }
	cmd.Autocomplete = func(s Session, i *discordgo.InteractionCreate) { completeCalled = true }
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	i := commandInteraction("roll", 0)
	i.Type = discordgo.InteractionApplicationCommandAutocomplete

	router := NewRouter(reg)
	router.Handle(&mockSession{}, i)

	if !completeCalled {
		t.Error("Expected autocomplete handler to be called")
	}
	if handlerCalled {
		t.Error("Expected command handler not to be called for autocomplete")
	}
}

func TestRouter_ComponentByPrefix(t *testing.T) {
	router := NewRouter(New())
	var gotCustomID string
	router.RegisterComponent("pager", func(s Session, i *discordgo.InteractionCreate) {
		gotCustomID = i.MessageComponentData().CustomID
	})

	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: "pager:123:next",
			},
		},
	}
	router.Handle(&mockSession{}, i)

	if gotCustomID != "pager:123:next" {
		t.Errorf("Expected component handler to receive interaction, got %q", gotCustomID)
	}
}

func TestRouter_UnknownComponentPrefix(t *testing.T) {
	router := NewRouter(New())
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: "other:1:x"},
		},
	}

	// Must not panic.
	router.Handle(&mockSession{}, i)
}
