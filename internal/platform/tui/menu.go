package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lys/internal/registry"
	"github.com/vovakirdan/lys/internal/sim"
)

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SimID string
	Quit  bool
}

// MenuModel is the Bubble Tea model for the simulation picker.
type MenuModel struct {
	items       []sim.Info
	cursor      int
	width       int
	height      int
	keys        MenuKeyMap
	keyMapper   *KeyMapper
	help        help.Model
	theme       MenuTheme
	showPreview bool
	preview     *Preview

	// result is shared by every copy of the model so that callers
	// holding the initial value can read the outcome.
	result *MenuResult
}

// NewMenuModel creates a picker over the registered simulations with the
// cursor on initial when it is registered.
func NewMenuModel(theme MenuTheme, initial string) MenuModel {
	items := registry.List()
	cursor := 0
	for i, it := range items {
		if it.ID == initial {
			cursor = i
			break
		}
	}

	keys := DefaultMenuKeyMap()
	h := help.New()
	h.ShowAll = false

	return MenuModel{
		items:       items,
		cursor:      cursor,
		keys:        keys,
		keyMapper:   NewKeyMapper(keys),
		help:        h,
		theme:       theme,
		showPreview: true,
		result:      &MenuResult{},
	}
}

// Init starts the preview animation.
func (m MenuModel) Init() tea.Cmd {
	return tickCmd(PreviewRate)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.result.Quit || m.result.SimID != "" {
			return m, nil
		}
		if m.showPreview {
			m.syncPreview()
			m.preview.Step(time.Second / PreviewRate)
		}
		return m, tickCmd(PreviewRate)
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.result.Quit = true
		m.closePreview()
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.result.SimID = m.items[m.cursor].ID
			m.closePreview()
			return m, tea.Quit
		}

	case MenuActionPreview:
		m.showPreview = !m.showPreview
		if !m.showPreview {
			m.closePreview()
		}
	}

	return m, nil
}

// syncPreview reopens the preview when the cursor moved to another item.
func (m *MenuModel) syncPreview() {
	if len(m.items) == 0 {
		return
	}
	id := m.items[m.cursor].ID
	if m.preview != nil && m.preview.ID() == id {
		return
	}
	m.closePreview()
	m.preview = NewPreview(id, PreviewCols, PreviewRows)
}

func (m *MenuModel) closePreview() {
	if m.preview != nil {
		m.preview.Close()
		m.preview = nil
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.result.Quit || m.result.SimID != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.theme.Title.Render("  L Y S  "))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Subtitle.Render("Select a simulation"))
	b.WriteString("\n\n")

	var list strings.Builder
	if len(m.items) == 0 {
		list.WriteString(m.theme.Error.Render("no simulations registered"))
	}
	for i, item := range m.items {
		line := fmt.Sprintf("%s %s", item.Title, m.theme.ItemID.Render("("+item.ID+")"))
		if i == m.cursor {
			list.WriteString(m.theme.ItemActive.Render("> " + line))
		} else {
			list.WriteString(m.theme.ItemNormal.Render(line))
		}
		list.WriteString("\n")
	}

	body := list.String()
	if m.showPreview && m.preview != nil {
		var pane string
		if err := m.preview.Err(); err != nil {
			pane = m.theme.Error.Render(err.Error())
		} else {
			pane = m.theme.PreviewBox.Render(m.preview.View(m.theme.Renderer()))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "    ", pane)
	} else if !m.showPreview {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "    ", m.theme.PreviewNote.Render("preview off"))
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Result returns the outcome recorded so far.
func (m MenuModel) Result() MenuResult {
	return *m.result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(initial string) (MenuResult, error) {
	model := NewMenuModel(DefaultMenuTheme(nil), initial)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return MenuResult{}, err
	}

	result := model.Result()
	if result.SimID == "" {
		result.Quit = true
	}
	return result, nil
}
