// Package ui implements the interactive project creation wizard.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kryonlabs/kryon/cmd/kryon/internal/scaffold"
)

// Step represents the current step in the creation flow.
type Step int

const (
	StepName Step = iota
	StepTemplate
	StepPort
	StepSummary
	StepComplete
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

// Model is the wizard state.
type Model struct {
	step     Step
	config   scaffold.ProjectConfig
	input    textinput.Model
	selected int
	errMsg   string
	quitting bool
}

// NewModel creates the wizard, pre-filling the project name when given.
func NewModel(projectName string) Model {
	input := textinput.New()
	input.Placeholder = "my-app"
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	m := Model{
		step: StepName,
		config: scaffold.ProjectConfig{
			Template: "hello",
			Port:     5173,
			GitInit:  true,
		},
		input: input,
	}
	if projectName != "" {
		m.config.Name = projectName
		m.step = StepTemplate
	}
	return m
}

// GetConfig returns the assembled project configuration.
func (m Model) GetConfig() scaffold.ProjectConfig {
	return m.config
}

// Done reports whether the wizard ran to completion.
func (m Model) Done() bool {
	return m.step == StepComplete
}

// Cancelled reports whether the user quit before finishing.
func (m Model) Cancelled() bool {
	return m.quitting && m.step != StepComplete
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.step == StepTemplate && m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.step == StepTemplate && m.selected < len(scaffold.Templates)-1 {
				m.selected++
			}
			return m, nil
		case "enter":
			return m.advance()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch m.step {
	case StepName:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.errMsg = "Project name cannot be empty"
			return m, nil
		}
		if strings.ContainsAny(name, " /\\") {
			m.errMsg = "Project name cannot contain spaces or slashes"
			return m, nil
		}
		m.config.Name = name
		m.step = StepTemplate
	case StepTemplate:
		m.config.Template = scaffold.Templates[m.selected]
		m.input.SetValue(fmt.Sprintf("%d", m.config.Port))
		m.step = StepPort
	case StepPort:
		port := 0
		if _, err := fmt.Sscanf(strings.TrimSpace(m.input.Value()), "%d", &port); err != nil || port <= 0 || port > 65535 {
			m.errMsg = "Enter a port between 1 and 65535"
			return m, nil
		}
		m.config.Port = port
		m.step = StepSummary
	case StepSummary:
		m.step = StepComplete
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✨ Create a new Kryon project"))
	b.WriteString("\n\n")

	switch m.step {
	case StepName:
		b.WriteString("Project name:\n")
		b.WriteString(m.input.View())
	case StepTemplate:
		b.WriteString("Choose a template:\n\n")
		for i, t := range scaffold.Templates {
			cursor := "  "
			line := t
			if i == m.selected {
				cursor = selectedStyle.Render("▸ ")
				line = selectedStyle.Render(t)
			}
			b.WriteString(cursor + line + "\n")
		}
	case StepPort:
		b.WriteString("Preview server port:\n")
		b.WriteString(m.input.View())
	case StepSummary:
		b.WriteString("Ready to create:\n\n")
		b.WriteString(fmt.Sprintf("  Name:     %s\n", m.config.Name))
		b.WriteString(fmt.Sprintf("  Template: %s\n", m.config.Template))
		b.WriteString(fmt.Sprintf("  Port:     %d\n", m.config.Port))
		b.WriteString("\n" + dimStyle.Render("Press enter to create, esc to cancel"))
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render("✗ "+m.errMsg))
	}
	if m.step != StepSummary {
		b.WriteString("\n\n" + dimStyle.Render("enter: confirm • esc: cancel"))
	}
	return b.String()
}
