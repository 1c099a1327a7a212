package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 80

// ErrQuit is returned when the player leaves the menu without choosing.
var ErrQuit = errors.New("player left the conversation")

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "reply"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "leave"),
	),
}

// menuModel is the BubbleTea model for one set of replies.
// https://github.com/charmbracelet/bubbletea
type menuModel struct {
	speaker  string
	prompt   string
	options  []string
	cursor   int
	selected int
	quitting bool
	width    int
	keys     keyMap
}

func newMenuModel(speaker, prompt string, options []string) menuModel {
	return menuModel{
		speaker:  speaker,
		prompt:   prompt,
		options:  options,
		selected: -1,
		width:    defaultWidth,
		keys:     defaultKeys,
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(m.options)
		case key.Matches(msg, m.keys.Select):
			m.selected = m.cursor
			return m, tea.Quit
		default:
			// 1-9 picks a reply directly
			if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				if i := int(s[0] - '1'); i < len(m.options) {
					m.cursor, m.selected = i, i
					return m, tea.Quit
				}
			}
		}
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	wrap := max(m.width-4, 20)

	if m.speaker != "" {
		b.WriteString(speakerStyle.Render(m.speaker+":") + " ")
	}
	b.WriteString(npcStyle.Render(wordwrap.String(m.prompt, wrap)) + "\n")

	switch {
	case m.selected >= 0:
		b.WriteString(userStyle.Render("  > "+wordwrap.String(m.options[m.selected], wrap)) + "\n\n")
		return b.String()
	case m.quitting:
		b.WriteString(promptStyle.Render("  (you walk away)") + "\n\n")
		return b.String()
	}

	b.WriteString("\n")
	for i, opt := range m.options {
		line := fmt.Sprintf("%d. %s", i+1, wordwrap.String(opt, wrap-3))
		if i == m.cursor {
			b.WriteString(" " + selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(" " + line + "\n")
		}
	}
	b.WriteString("\n" + promptStyle.Render(helpLine(m.keys)) + "\n")
	return b.String()
}

func helpLine(k keyMap) string {
	bindings := []key.Binding{k.Up, k.Down, k.Select, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// Chooser shows each reply set as an inline BubbleTea menu. It implements
// conversation.Chooser.
type Chooser struct {
	Speaker string    // shown before the prompt
	In      io.Reader // defaults to stdin
	Out     io.Writer // defaults to stdout
}

func (c *Chooser) Choose(ctx context.Context, prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("no options to choose from")
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.In != nil {
		opts = append(opts, tea.WithInput(c.In))
	}
	if c.Out != nil {
		opts = append(opts, tea.WithOutput(c.Out))
	}

	final, err := tea.NewProgram(newMenuModel(c.Speaker, prompt, options), opts...).Run()
	if err != nil {
		return 0, fmt.Errorf("menu failed: %w", err)
	}

	m, ok := final.(menuModel)
	if !ok || m.selected < 0 {
		return 0, ErrQuit
	}
	return m.selected, nil
}
