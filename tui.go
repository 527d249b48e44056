// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybrota/avlkit/avl"
	"github.com/cybrota/avlkit/script"
)

// Model is the state of the interactive shell
type Model struct {
	ready bool

	input    textinput.Model
	treeView viewport.Model

	runner *script.Runner
	report script.Report

	status      string
	statusError bool
	showHelp    bool
	history     []string

	styles          *Styles
	glamourRenderer *glamour.TermRenderer
	// copy is swapped out in tests
	copy func(string) error

	width  int
	height int
}

// Styles holds all the styling for the shell
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor()).
			Bold(true),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// copiedMsg reports the result of a clipboard write
type copiedMsg struct {
	text string
	err  error
}

// InitialModel creates the shell model around tree. The logger must be
// initialised.
func InitialModel(tree *avl.Tree) Model {
	ti := textinput.New()
	ti.Placeholder = "i 5, d 5, s 5, clear..."
	ti.Prompt = "avl> "
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 50

	treeView := viewport.New(0, 0)

	m := Model{
		input:    ti,
		treeView: treeView,
		runner:   script.NewRunner(tree, script.Options{KeepGoing: true}),
		styles:   NewStyles(),
		copy:     clipboard.WriteAll,
		status:   "Type a command and press enter",
	}
	m.refreshTree()
	return m
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			cmd = m.execute(line)
			return m, cmd
		case "ctrl+y":
			text := m.runner.Tree().String()
			return m, func() tea.Msg {
				return copiedMsg{text: text, err: m.copy(text)}
			}
		case "f1":
			m.showHelp = !m.showHelp
			m.refreshTree()
			return m, nil
		case "pgup", "pgdown":
			m.treeView, cmd = m.treeView.Update(msg)
			return m, cmd
		case "up":
			// recall the previous command
			if n := len(m.history); n > 0 {
				m.input.SetValue(m.history[n-1])
				m.input.CursorEnd()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
		m.refreshTree()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Copy failed: %s", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("Copied %q to clipboard", msg.text), false)
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs one shell line against the tree
func (m *Model) execute(line string) tea.Cmd {
	m.history = append(m.history, line)

	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return tea.Quit
	case "clear":
		m.runner.Tree().Clear()
		m.report = script.Report{}
		m.setStatus("Cleared the tree", false)
		m.refreshTree()
		return nil
	case "help":
		m.showHelp = true
		m.refreshTree()
		return nil
	}

	command, ok, err := script.ParseLine(line, 0)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	if !ok {
		return nil
	}

	step := m.runner.Apply(command, &m.report)
	switch {
	case command.Op == script.OpInsert && step.Changed:
		m.setStatus(fmt.Sprintf("Inserted %d", command.Key), false)
	case command.Op == script.OpInsert:
		m.setStatus(fmt.Sprintf("%d is already in the tree", command.Key), true)
	case command.Op == script.OpDelete && step.Changed:
		m.setStatus(fmt.Sprintf("Deleted %d", command.Key), false)
	case command.Op == script.OpDelete:
		m.setStatus(fmt.Sprintf("%d is not in the tree", command.Key), true)
	case step.Found:
		m.setStatus(fmt.Sprintf("Found %d", command.Key), false)
	default:
		m.setStatus(fmt.Sprintf("%d not found", command.Key), true)
	}
	if !step.Balanced {
		m.setStatus(fmt.Sprintf("%s: %s", command, script.ErrNotBalanced), true)
	}

	m.showHelp = false
	m.refreshTree()
	return nil
}

func (m *Model) setStatus(s string, isError bool) {
	m.status = s
	m.statusError = isError
}

// refreshTree redraws the viewport with the tree or the help page
func (m *Model) refreshTree() {
	if m.showHelp {
		m.treeView.SetContent(m.renderHelpPage())
		m.treeView.GotoTop()
		return
	}
	var b strings.Builder
	_ = m.runner.Tree().Fprint(&b)
	m.treeView.SetContent(b.String())
}

func (m *Model) renderHelpPage() string {
	if m.glamourRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(72),
		)
		if err != nil {
			return shellHelpMarkdown
		}
		m.glamourRenderer = r
	}
	if rendered, err := m.glamourRenderer.Render(shellHelpMarkdown); err == nil {
		return rendered
	}
	return shellHelpMarkdown
}

func (m *Model) updateLayout() {
	// title, input box and footer
	treeHeight := m.height - 10
	if treeHeight < 1 {
		treeHeight = 1
	}
	m.input.Width = m.width - 12
	m.treeView.Width = m.width - 4
	m.treeView.Height = treeHeight
}

// statusLine shows size, height and balance of the tree
func (m Model) statusLine() string {
	tree := m.runner.Tree()
	balanced := "balanced ✓"
	if !tree.IsBalanced() {
		balanced = "NOT balanced ✗"
	}
	info := fmt.Sprintf("size %d • height %d • %s", tree.Len(), tree.Height(), balanced)

	style := m.styles.SuccessMessage
	if m.statusError {
		style = m.styles.ErrorMessage
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.HelpDesc.Render(info),
		"   ",
		style.Render(m.status),
	)
}

// View renders the shell
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 20 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	title := " 🌳 Tree "
	if m.showHelp {
		title = " 📖 Help "
	}
	treeBox := m.styles.BorderBlurred.
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(title),
			m.treeView.View(),
		))

	inputBox := m.styles.BorderFocused.
		Width(m.width - 2).
		Padding(0, 1).
		Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		treeBox,
		inputBox,
		m.statusLine(),
		m.renderShellHelp(),
	)
}

// renderShellHelp renders the key binding footer
func (m Model) renderShellHelp() string {
	keys := []string{"enter", "up", "ctrl+y", "f1", "pgup/pgdown", "esc"}
	descs := []string{"run command", "previous command", "copy level order", "toggle help", "scroll", "quit"}

	var helpEntries []string
	for i, key := range keys {
		helpEntries = append(helpEntries,
			fmt.Sprintf("%s %s",
				m.styles.HelpKey.Render(key),
				m.styles.HelpDesc.Render(descs[i])))
	}

	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Render(strings.Join(helpEntries, " • "))
}

// runShell starts the Bubble Tea application
func runShell(tree *avl.Tree) error {
	program := tea.NewProgram(
		InitialModel(tree),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
