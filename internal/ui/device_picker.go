// Package ui provides a small terminal picker for choosing a MIDI output
// device when mdlc play is run without one named on the command line: a
// centered lipgloss dialog driven by a bubbletea program, with
// up/down/enter selection.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DevicePickerModel lets the user choose one of a fixed list of device
// names with the arrow keys or j/k, confirming with enter.
type DevicePickerModel struct {
	width, height int
	devices       []string
	selected      int
	done          bool
	quit          bool
}

// NewDevicePickerModel returns a picker over devices. devices must be
// non-empty.
func NewDevicePickerModel(devices []string) DevicePickerModel {
	return DevicePickerModel{devices: devices}
}

func (m DevicePickerModel) Init() tea.Cmd { return nil }

func (m DevicePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.devices)-1 {
				m.selected++
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			m.done = true
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DevicePickerModel) View() string {
	itemStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := itemStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))

	lines := make([]string, 0, len(m.devices)+2)
	lines = append(lines, "Select a MIDI output device:", "")
	for i, d := range m.devices {
		line := fmt.Sprintf("  %s", d)
		if i == m.selected {
			line = selectedStyle.Render(fmt.Sprintf("> %s", d))
		} else {
			line = itemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Render(content)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(dialog)
}

// Done reports whether the user confirmed a selection.
func (m DevicePickerModel) Done() bool { return m.done }

// Cancelled reports whether the user backed out without choosing.
func (m DevicePickerModel) Cancelled() bool { return m.quit }

// Selected returns the chosen device name. Valid only when Done() is true
// and Cancelled() is false.
func (m DevicePickerModel) Selected() string {
	if m.selected < 0 || m.selected >= len(m.devices) {
		return ""
	}
	return m.devices[m.selected]
}

// Pick runs the picker program to completion and returns the chosen
// device name, or an error if the user cancelled.
func Pick(devices []string) (string, error) {
	if len(devices) == 0 {
		return "", fmt.Errorf("ui: no MIDI output devices available")
	}
	if len(devices) == 1 {
		return devices[0], nil
	}
	p := tea.NewProgram(NewDevicePickerModel(devices))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("ui: device picker: %w", err)
	}
	m := final.(DevicePickerModel)
	if m.Cancelled() || !m.Done() {
		return "", fmt.Errorf("ui: no device selected")
	}
	return m.Selected(), nil
}
