package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/cipher-engine/pkg/cipher"
	"github.com/jwebster45206/cipher-engine/pkg/ciphers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T, id ciphers.ID) ConsoleUI {
	t.Helper()
	m := NewConsoleUI(&ConsoleConfig{DefaultCipher: id})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(ConsoleUI)
}

func typeInto(m ConsoleUI, s string) ConsoleUI {
	for _, r := range s {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(ConsoleUI)
	}
	return m
}

func press(m ConsoleUI, k tea.KeyType) ConsoleUI {
	model, _ := m.Update(tea.KeyMsg{Type: k})
	return model.(ConsoleUI)
}

func TestConsoleUI_DefaultCipher(t *testing.T) {
	m := newTestUI(t, ciphers.Playfair)
	assert.Equal(t, ciphers.Playfair, m.current().ID())
	assert.Equal(t, "keyword", m.keyInput.Placeholder)
}

func TestConsoleUI_LiveOutput(t *testing.T) {
	m := newTestUI(t, ciphers.Caesar)
	m = typeInto(m, "Hello")
	assert.Empty(t, m.output, "no key yet")

	m = press(m, tea.KeyDown)
	m = typeInto(m, "3")
	assert.Equal(t, "Khoor", m.output)

	m = press(m, tea.KeyCtrlD)
	assert.True(t, m.decrypt)
	assert.Equal(t, "Ebiil", m.output)
}

func TestConsoleUI_KeyError(t *testing.T) {
	m := newTestUI(t, ciphers.RailFence)
	m = press(m, tea.KeyDown)
	m = typeInto(m, "x")
	assert.Contains(t, m.keyError, cipher.ErrInvalidKey.Error())
	assert.Empty(t, m.output)

	m = press(m, tea.KeyBackspace)
	m = typeInto(m, "3")
	assert.Empty(t, m.keyError)
}

func TestConsoleUI_RailCountOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"one above max", "11", "too many rails"},
		{"huge", "2000000000", "too many rails"},
		{"too few", "1", "too few rails"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestUI(t, ciphers.RailFence)
			m = typeInto(m, "people power")
			m = press(m, tea.KeyDown)
			m = typeInto(m, tt.key)

			assert.Contains(t, m.keyError, tt.want)
			assert.Empty(t, m.output)
			vis := m.visualization()
			assert.NotContains(t, vis, "Grid")
			assert.Contains(t, vis, "Fix the key")
		})
	}
}

func TestConsoleUI_SwitchCipher(t *testing.T) {
	m := newTestUI(t, ciphers.Caesar)
	m = press(m, tea.KeyTab)
	assert.Equal(t, ciphers.Vigenere, m.current().ID())

	m = press(m, tea.KeyShiftTab)
	m = press(m, tea.KeyShiftTab)
	assert.Equal(t, ciphers.Columnar, m.current().ID())

	m = press(m, tea.KeyTab)
	assert.Equal(t, ciphers.Caesar, m.current().ID())
	assert.Equal(t, "shift, e.g. 3", m.keyInput.Placeholder)
}

func TestConsoleUI_BruteForce(t *testing.T) {
	m := newTestUI(t, ciphers.Caesar)
	m = typeInto(m, "WKH DPXOHW")
	m = press(m, tea.KeyCtrlB)
	require.True(t, m.showBrute)
	assert.Contains(t, m.visualization(), "THE AMULET")

	// Only Caesar has a brute-force view
	m = press(m, tea.KeyTab)
	assert.False(t, m.showBrute)
	m = press(m, tea.KeyCtrlB)
	assert.False(t, m.showBrute)
}

func TestConsoleUI_Visualization(t *testing.T) {
	m := newTestUI(t, ciphers.Columnar)
	m = typeInto(m, "I AM THE SAME AS YOUR LOLA")
	m = press(m, tea.KeyDown)
	m = typeInto(m, "EDSA")

	vis := m.visualization()
	assert.Contains(t, vis, "Read columns in order:")
	assert.Contains(t, vis, "Grid")
	assert.Equal(t, "TASRAAEEOOIHMYLMSAUL", m.output)
}

func TestConsoleUI_VigenereVisualizationFollowsDirection(t *testing.T) {
	m := newTestUI(t, ciphers.Vigenere)
	m = typeInto(m, "LXFOPVEFRNHR")
	m = press(m, tea.KeyDown)
	m = typeInto(m, "LEMON")
	assert.Contains(t, m.visualization(), "Encrypted:")

	m = press(m, tea.KeyCtrlD)
	assert.Equal(t, "ATTACKATDAWN", m.output)
	vis := m.visualization()
	assert.Contains(t, vis, "Decrypted: ATTACKATDAWN")
	assert.NotContains(t, vis, "Encrypted:")
}

func TestConsoleUI_QuitModal(t *testing.T) {
	m := newTestUI(t, ciphers.Caesar)
	m = press(m, tea.KeyEsc)
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit?")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = model.(ConsoleUI)
	assert.False(t, m.showQuitModal)

	m = press(m, tea.KeyCtrlC)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestConsoleUI_CopiedStatus(t *testing.T) {
	m := newTestUI(t, ciphers.Caesar)
	model, _ := m.Update(copiedMsg{})
	m = model.(ConsoleUI)
	assert.Equal(t, "Copied output to clipboard", m.status)
	assert.True(t, strings.Contains(m.View(), "Copied"))
}

func TestRenderGrid(t *testing.T) {
	g := cipher.Grid{
		{"A", "B"},
		{"中", ""},
	}
	lines := strings.Split(renderGrid(g), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "A  B", lines[0])
	assert.Equal(t, "中 ·", lines[1])
	assert.Empty(t, renderGrid(nil))
}
