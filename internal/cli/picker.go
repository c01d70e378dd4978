package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/canopyhq/canopy/pkg/pipeline"
)

var (
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	pickerDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// attrPickerModel is the bubbletea model for interactive attribute selection.
// Space toggles the attribute under the cursor, enter confirms, q cancels.
type attrPickerModel struct {
	attrs     []string
	checked   map[string]bool
	cursor    int
	confirmed bool
}

// newAttrPickerModel creates a picker with the given attributes pre-checked.
func newAttrPickerModel(preselected []string) attrPickerModel {
	checked := make(map[string]bool, len(preselected))
	for _, a := range preselected {
		checked[a] = true
	}
	return attrPickerModel{
		attrs:   pipeline.AllAttributes,
		checked: checked,
	}
}

func (m attrPickerModel) Init() tea.Cmd {
	return nil
}

func (m attrPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.attrs)-1 {
				m.cursor++
			}
		case " ":
			attr := m.attrs[m.cursor]
			m.checked[attr] = !m.checked[attr]
		case "a":
			for _, attr := range m.attrs {
				m.checked[attr] = true
			}
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m attrPickerModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select attributes") + "\n\n")

	for i, attr := range m.attrs {
		cursor := "  "
		style := pickerNormalStyle
		if i == m.cursor {
			cursor = StyleHighlight.Render("> ")
			style = pickerSelectedStyle
		}
		box := "[ ]"
		if m.checked[attr] {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, pickerDimStyle.Render(box), style.Render(attr))
	}

	b.WriteString("\n" + pickerDimStyle.Render("space toggle · a all · enter confirm · q cancel") + "\n")
	return b.String()
}

// selected returns the checked attributes in canonical order.
func (m attrPickerModel) selected() []string {
	var out []string
	for _, attr := range m.attrs {
		if m.checked[attr] {
			out = append(out, attr)
		}
	}
	return out
}

// pickAttributes runs the interactive picker and returns the chosen
// attributes. Cancelling returns nil without error.
func pickAttributes(preselected []string) ([]string, error) {
	p := tea.NewProgram(newAttrPickerModel(preselected))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	m, ok := final.(attrPickerModel)
	if !ok || !m.confirmed {
		return nil, nil
	}
	return m.selected(), nil
}
