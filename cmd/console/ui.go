package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/jwebster45206/cipher-engine/pkg/cipher/caesar"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/muesli/reflow/wordwrap"
)

const (
	textPlaceholder = "Type a message..."
	// bruteForceRows is how many Caesar candidates ctrl+b lists
	bruteForceRows = 5
)

// ConsoleUI is the BubbleTea model for the cipher workbench.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ciphers  []ciphers.Transformer
	selected int

	textInput textinput.Model
	keyInput  textinput.Model
	focus     int // 0 text, 1 key
	decrypt   bool

	output     string
	keyError   string
	showBrute  bool
	status     string
	visualView viewport.Model

	ready         bool
	width         int
	height        int
	showQuitModal bool
}

type copiedMsg struct {
	err error
}

var (
	panelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(3).
			PaddingRight(3)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig) ConsoleUI {
	text := textinput.New()
	text.Placeholder = textPlaceholder
	text.Prompt = promptStyle.Render("text :: ")
	text.CharLimit = 2000
	text.Focus()

	key := textinput.New()
	key.Prompt = promptStyle.Render("key  :: ")
	key.CharLimit = 100

	all := ciphers.All()
	selected := 0
	for i, t := range all {
		if t.ID() == cfg.DefaultCipher {
			selected = i
		}
	}

	m := ConsoleUI{
		ciphers:    all,
		selected:   selected,
		textInput:  text,
		keyInput:   key,
		visualView: viewport.New(60, 20),
	}
	m.keyInput.Placeholder = keyPlaceholder(m.current().ID())
	m.recompute()
	return m
}

func keyPlaceholder(id ciphers.ID) string {
	switch id {
	case ciphers.Caesar:
		return "shift, e.g. 3"
	case ciphers.RailFence:
		return "rails, 2 to 10"
	default:
		return "keyword"
	}
}

func (m ConsoleUI) current() ciphers.Transformer {
	return m.ciphers[m.selected]
}

// recompute refreshes the output, key error and visualization from the inputs.
func (m *ConsoleUI) recompute() {
	t := m.current()
	text, key := m.textInput.Value(), m.keyInput.Value()

	m.keyError = ""
	if key != "" {
		if v := cipher.ValidationOf(t.ValidateKey(key)); !v.Valid {
			m.keyError = v.Error
		}
	}

	m.output = ""
	if key != "" && m.keyError == "" {
		run := t.Encrypt
		if m.decrypt {
			run = t.Decrypt
		}
		if out, err := run(text, key); err == nil {
			m.output = out
		}
	}

	m.visualView.SetContent(m.visualization())
}

func (m ConsoleUI) visualization() string {
	t := m.current()
	text, key := m.textInput.Value(), m.keyInput.Value()
	width := max(m.visualView.Width-2, 20)

	if m.showBrute && t.ID() == ciphers.Caesar {
		var b strings.Builder
		b.WriteString(labelStyle.Render("Brute force") + "\n\n")
		for i, c := range caesar.BruteForce(text) {
			if i == bruteForceRows {
				break
			}
			b.WriteString(fmt.Sprintf("%2d  %s\n", c.Shift, wordwrap.String(c.Text, width-4)))
		}
		return b.String()
	}

	if key == "" {
		return promptStyle.Render("Enter a key to see how the cipher works.")
	}
	if m.keyError != "" {
		return promptStyle.Render("Fix the key to see how the cipher works.")
	}

	var b strings.Builder
	if vis, err := ciphers.Visualize(t, text, key, m.decrypt); err == nil && vis != "" {
		b.WriteString(wordwrap.String(vis, width))
		b.WriteString("\n\n")
	}
	if t.ID() != ciphers.Vigenere {
		if g, err := t.Grid(text, key); err == nil && len(g) > 0 {
			b.WriteString(labelStyle.Render("Grid") + "\n")
			b.WriteString(renderGrid(g))
		}
	}
	return b.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.visualView.Width = max(m.width-8, 20)
		m.visualView.Height = max(m.height-16, 5)
		m.textInput.Width = max(m.width-16, 10)
		m.keyInput.Width = max(m.width-16, 10)
		m.ready = true
		m.recompute()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied output to clipboard"
		}
		return m, nil

	case tea.MouseMsg:
		m.visualView, cmd = m.visualView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyTab, tea.KeyShiftTab:
			step := 1
			if msg.Type == tea.KeyShiftTab {
				step = len(m.ciphers) - 1
			}
			m.selected = (m.selected + step) % len(m.ciphers)
			m.keyInput.Placeholder = keyPlaceholder(m.current().ID())
			m.showBrute = false
			m.status = ""
			m.recompute()
			return m, nil
		case tea.KeyUp, tea.KeyDown, tea.KeyEnter:
			m.setFocus(1 - m.focus)
			return m, textinput.Blink
		case tea.KeyCtrlD:
			m.decrypt = !m.decrypt
			m.recompute()
			return m, nil
		case tea.KeyCtrlB:
			m.showBrute = !m.showBrute && m.current().ID() == ciphers.Caesar
			m.recompute()
			return m, nil
		case tea.KeyCtrlY:
			return m, copyToClipboard(m.output)
		case tea.KeyPgUp, tea.KeyPgDown:
			m.visualView, cmd = m.visualView.Update(msg)
			return m, cmd
		}

		m.status = ""
		if m.focus == 0 {
			m.textInput, cmd = m.textInput.Update(msg)
		} else {
			m.keyInput, cmd = m.keyInput.Update(msg)
		}
		m.recompute()
		return m, cmd
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *ConsoleUI) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.textInput.Focus()
		m.keyInput.Blur()
	} else {
		m.keyInput.Focus()
		m.textInput.Blur()
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				return m, textinput.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Leave the cipher workbench?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderTabs() string {
	tabs := make([]string, 0, len(m.ciphers))
	for i, t := range m.ciphers {
		style := tabStyle
		if i == m.selected {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(t.Name()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	direction := "Encrypt"
	if m.decrypt {
		direction = "Decrypt"
	}
	lineWidth := max(m.width-8, 10)

	var b strings.Builder
	b.WriteString(titleStyle.Render("CIPHER ENGINE") + "  " + promptStyle.Render(direction) + "\n\n")
	b.WriteString(m.renderTabs() + "\n\n")
	b.WriteString(m.textInput.View() + "\n")
	b.WriteString(m.keyInput.View() + "\n")
	if m.keyError != "" {
		b.WriteString(errorStyle.Render("  "+m.keyError) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n" + labelStyle.Render("Output: ") + outputStyle.Render(wordwrap.String(m.output, lineWidth-8)) + "\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", lineWidth)) + "\n")
	b.WriteString(m.visualView.View() + "\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", lineWidth)) + "\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	b.WriteString(promptStyle.Render("Tab: cipher • ↑/↓: field • Ctrl+D: encrypt/decrypt • Ctrl+B: brute force • Ctrl+Y: copy • Esc: quit"))

	return panelStyle.Render(b.String())
}
