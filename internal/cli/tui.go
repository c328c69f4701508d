package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/prismaflow/pkg/variant"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// =============================================================================
// ArmPickerModel - Interactive arm selection
// =============================================================================

// arm is one optional column of the diagram.
type arm struct {
	name string
	desc string
	on   bool
}

// ArmPickerModel is the bubbletea model for choosing which optional arms
// the diagram shows.
type ArmPickerModel struct {
	arms      [2]arm
	Cursor    int
	Confirmed bool
}

// NewArmPickerModel creates a picker with the given arms preselected.
func NewArmPickerModel(previous, other bool) ArmPickerModel {
	return ArmPickerModel{
		arms: [2]arm{
			{name: "previous", desc: "studies from the previous version of the review", on: previous},
			{name: "other", desc: "records identified by other methods", on: other},
		},
	}
}

// Previous reports whether the previous studies arm is selected.
func (m ArmPickerModel) Previous() bool { return m.arms[0].on }

// Other reports whether the other methods arm is selected.
func (m ArmPickerModel) Other() bool { return m.arms[1].on }

// Variant returns the layout the current selection maps to.
func (m ArmPickerModel) Variant() variant.Params {
	return variant.Select(m.Previous(), m.Other())
}

func (m ArmPickerModel) Init() tea.Cmd {
	return nil
}

func (m ArmPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.arms)-1 {
			m.Cursor++
		}
	case " ", "space", "x":
		m.arms[m.Cursor].on = !m.arms[m.Cursor].on
	case "enter":
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ArmPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Arms"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ render  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.arms))
	for i, a := range m.arms {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if a.on {
			check = "[x]"
		}
		rows[i] = []string{cursor, check, a.name, a.desc}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("", "", "Arm", "Boxes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			case row >= 0 && row < len(m.arms) && m.arms[row].on:
				return listNormalStyle
			default:
				return listDimStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	p := m.Variant()
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("layout"),
		StyleHighlight.Render(p.Kind.String())))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes · %d edges", len(p.Nodes), len(p.Edges))))
	b.WriteString("\n")

	return b.String()
}
