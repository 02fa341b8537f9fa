package components

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"slash-sync-bot/internal/formatting"
	"slash-sync-bot/internal/registry"

	"github.com/bwmarrin/discordgo"
)

// CustomIDPrefix routes paginator component interactions; register the
// manager's Handle under this prefix.
const CustomIDPrefix = "pager"

// CategoryPage is one section of a paginated menu: a label shown in the
// select menu and the embed pages under it.
type CategoryPage struct {
	Label string
	Pages []*discordgo.MessageEmbed
}

type pagerState struct {
	userID     string
	categories []CategoryPage
	category   int
	page       int
	lastUsed   time.Time
}

// Manager tracks the live paginator menus of this process, keyed by the
// interaction ID that opened them. Only the invoking user may page; idle
// menus expire after the TTL.
type Manager struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	active map[string]*pagerState
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:    ttl,
		now:    time.Now,
		active: make(map[string]*pagerState),
	}
}

// Start responds to a command interaction with the first page of a single
// sequence of embeds.
func (m *Manager) Start(s registry.Session, i *discordgo.InteractionCreate, pages []*discordgo.MessageEmbed) error {
	return m.StartCategories(s, i, []CategoryPage{{Pages: pages}})
}

// StartCategories responds with a category paginator: buttons page within the
// current category, a select menu switches categories.
func (m *Manager) StartCategories(s registry.Session, i *discordgo.InteractionCreate, categories []CategoryPage) error {
	categories = nonEmpty(categories)
	if len(categories) == 0 {
		registry.Respond(s, i, formatting.MsgNothingToShow, true)
		return nil
	}

	state := &pagerState{
		userID:     invokerID(i),
		categories: categories,
		lastUsed:   m.now(),
	}

	m.mu.Lock()
	m.pruneLocked()
	m.active[i.ID] = state
	m.mu.Unlock()

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{state.currentPage()},
			Components: m.rows(i.ID, state),
		},
	})
}

// Handle processes a paginator component interaction routed by custom ID.
func (m *Manager) Handle(s registry.Session, i *discordgo.InteractionCreate) {
	_, rest, ok := strings.Cut(i.MessageComponentData().CustomID, ":")
	if !ok {
		return
	}
	id, action, ok := strings.Cut(rest, ":")
	if !ok {
		return
	}

	m.mu.Lock()
	m.pruneLocked()
	state, exists := m.active[id]
	m.mu.Unlock()

	if !exists {
		registry.Respond(s, i, formatting.MsgMenuExpired, true)
		return
	}
	if invokerID(i) != state.userID {
		registry.Respond(s, i, formatting.MsgNotYourMenu, true)
		return
	}

	m.mu.Lock()
	state.lastUsed = m.now()
	switch action {
	case "first":
		state.page = 0
	case "prev":
		if state.page > 0 {
			state.page--
		}
	case "next":
		if state.page < len(state.current().Pages)-1 {
			state.page++
		}
	case "last":
		state.page = len(state.current().Pages) - 1
	case "cat":
		if idx, err := strconv.Atoi(firstValue(i)); err == nil && idx >= 0 && idx < len(state.categories) {
			state.category = idx
			state.page = 0
		}
	case "stop":
		delete(m.active, id)
		embed := state.currentPage()
		m.mu.Unlock()
		m.update(s, i, embed, []discordgo.MessageComponent{})
		return
	}
	embed := state.currentPage()
	rows := m.rows(id, state)
	m.mu.Unlock()

	m.update(s, i, embed, rows)
}

// Len reports the number of live menus, for tests and debugging.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

func (m *Manager) update(s registry.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, rows []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: rows,
		},
	})
	if err != nil {
		slog.Error("Failed to update paginator message", "error", err)
	}
}

func (m *Manager) rows(id string, state *pagerState) []discordgo.MessageComponent {
	cid := func(action string) string {
		return fmt.Sprintf("%s:%s:%s", CustomIDPrefix, id, action)
	}

	rows := []discordgo.MessageComponent{
		ActionRow(
			Button(cid("first"), "", "⏮️", discordgo.SecondaryButton),
			Button(cid("prev"), "", "◀️", discordgo.SecondaryButton),
			Button(cid("next"), "", "▶️", discordgo.SecondaryButton),
			Button(cid("last"), "", "⏭️", discordgo.SecondaryButton),
			Button(cid("stop"), "", "🗑️", discordgo.DangerButton),
		),
	}

	if len(state.categories) > 1 {
		options := make([]discordgo.SelectMenuOption, len(state.categories))
		for idx, cat := range state.categories {
			options[idx] = SelectOption(cat.Label, strconv.Itoa(idx), "")
			options[idx].Default = idx == state.category
		}
		rows = append(rows, ActionRow(SelectMenu(cid("cat"), "Category", options)))
	}
	return rows
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, state := range m.active {
		if state.lastUsed.Before(cutoff) {
			delete(m.active, id)
		}
	}
}

func (s *pagerState) current() CategoryPage {
	return s.categories[s.category]
}

func (s *pagerState) currentPage() *discordgo.MessageEmbed {
	return s.current().Pages[s.page]
}

func nonEmpty(categories []CategoryPage) []CategoryPage {
	out := categories[:0:0]
	for _, cat := range categories {
		if len(cat.Pages) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

func firstValue(i *discordgo.InteractionCreate) string {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
