package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analysisCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.scene = SceneForm
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.scene = SceneResults
		return m, nil
	}

	return m.updateFocusedField(msg)
}

// handleKeyPress processes keyboard input for the current scene.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.scene {
	case SceneForm:
		switch msg.String() {
		case "esc":
			return m, tea.Quit
		case "enter":
			if m.focused == fieldCount-1 {
				return m, m.analyzeCmd()
			}
			return m.focusField(m.focused + 1)
		case "ctrl+r":
			return m, m.analyzeCmd()
		case "tab", "down":
			return m.focusField((m.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return m.focusField((m.focused + fieldCount - 1) % fieldCount)
		}
		return m.updateFocusedField(msg)

	case SceneResults:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "e", "enter":
			// Back to the form to tweak parameters.
			m.scene = SceneForm
			return m, nil
		}
	}

	return m, nil
}

// focusField moves keyboard focus to the given field index.
func (m Model) focusField(idx int) (tea.Model, tea.Cmd) {
	m.fields[m.focused].Blur()
	m.focused = idx
	cmd := m.fields[m.focused].Focus()
	return m, cmd
}

// updateFocusedField forwards remaining messages to the focused text input.
func (m Model) updateFocusedField(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.scene != SceneForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused], cmd = m.fields[m.focused].Update(msg)
	return m, cmd
}
