package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

// SimulateState is the lifecycle state of the simulation form.
type SimulateState int

const (
	// SimulateStateEditing accepts input.
	SimulateStateEditing SimulateState = iota
	// SimulateStateQuitting renders nothing and exits.
	SimulateStateQuitting
)

type simulateField int

const (
	fieldGas simulateField = iota
	fieldYear
	fieldValue
	fieldCount
)

const (
	yearInputWidth  = 6
	valueInputWidth = 14
)

// SimulateModel is a Bubble Tea form for what-if edits over a fetched
// statistics snapshot. Each submitted edit replaces the working snapshot
// with the result of emissions.ApplyEdit; ctrl+r restores the fetched one.
type SimulateModel struct {
	country   string
	yearRange emissions.YearRange
	formatter *format.Formatter

	baseline emissions.StatsByGas
	current  emissions.StatsByGas
	edits    []emissions.Edit

	gasIdx     int
	focus      simulateField
	yearInput  textinput.Model
	valueInput textinput.Model

	state SimulateState
	err   error
	width int
}

// NewSimulateModel returns a form over stats for country and r. The year
// field starts at the end of the range.
func NewSimulateModel(
	country string,
	r emissions.YearRange,
	stats emissions.StatsByGas,
	f *format.Formatter,
) *SimulateModel {
	year := textinput.New()
	year.Prompt = ""
	year.CharLimit = 4
	year.Width = yearInputWidth
	year.SetValue(strconv.Itoa(r.End))

	value := textinput.New()
	value.Prompt = ""
	value.Placeholder = "MtCO2"
	value.Width = valueInputWidth

	if f == nil {
		f = format.New(format.DefaultLocale)
	}
	if stats == nil {
		stats = emissions.StatsByGas{}
	}

	return &SimulateModel{
		country:    country,
		yearRange:  r,
		formatter:  f,
		baseline:   stats,
		current:    stats,
		yearInput:  year,
		valueInput: value,
		state:      SimulateStateEditing,
	}
}

// Current returns the working snapshot, including every applied edit.
func (m *SimulateModel) Current() emissions.StatsByGas { return m.current }

// Edits returns the edits applied since the last reset, oldest first.
func (m *SimulateModel) Edits() []emissions.Edit { return m.edits }

// Err returns the error from the last rejected submission, if any.
func (m *SimulateModel) Err() error { return m.err }

// SelectedGas returns the gas the next edit targets.
func (m *SimulateModel) SelectedGas() emissions.GasKey {
	return emissions.DisplayOrder[m.gasIdx]
}

// Init starts the cursor blinking.
func (m *SimulateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and resize messages.
func (m *SimulateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *SimulateModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.state = SimulateStateQuitting
		return m, tea.Quit
	case "ctrl+r":
		m.Reset()
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		m.Submit()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldGas:
		m.cycleGas(msg.String())
	case fieldYear:
		m.yearInput, cmd = m.yearInput.Update(msg)
	case fieldValue:
		m.valueInput, cmd = m.valueInput.Update(msg)
	case fieldCount:
	}
	return m, cmd
}

func (m *SimulateModel) cycleGas(key string) {
	n := len(emissions.DisplayOrder)
	switch key {
	case "right", "l", " ":
		m.gasIdx = (m.gasIdx + 1) % n
	case "left", "h":
		m.gasIdx = (m.gasIdx + n - 1) % n
	}
}

func (m *SimulateModel) setFocus(f simulateField) tea.Cmd {
	m.focus = f
	m.yearInput.Blur()
	m.valueInput.Blur()
	switch f {
	case fieldYear:
		return m.yearInput.Focus()
	case fieldValue:
		return m.valueInput.Focus()
	case fieldGas, fieldCount:
	}
	return nil
}

// Submit applies the form as an edit. Invalid input leaves the working
// snapshot untouched and records the error for display.
func (m *SimulateModel) Submit() {
	edit, err := emissions.ParseEdit(
		string(m.SelectedGas()),
		m.yearInput.Value(),
		m.valueInput.Value(),
	)
	if err != nil {
		m.err = err
		return
	}

	next, err := emissions.ApplyEdit(m.current, edit)
	if err != nil {
		m.err = err
		return
	}

	m.current = next
	m.edits = append(m.edits, edit)
	m.err = nil
	m.valueInput.SetValue("")
}

// Reset discards every edit and restores the fetched snapshot.
func (m *SimulateModel) Reset() {
	m.current = m.baseline
	m.edits = nil
	m.err = nil
	m.valueInput.SetValue("")
}

// View renders the form above the recomputed dashboard.
func (m *SimulateModel) View() string {
	if m.state == SimulateStateQuitting {
		return ""
	}

	cards := emissions.BuildCards(m.current, m.yearRange, m.country)

	var sb strings.Builder
	sb.WriteString(RenderHeader(m.country, m.yearRange))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderForm())
	sb.WriteString("\n\n")
	sb.WriteString(RenderCards(cards, m.formatter))
	sb.WriteString("\n\n")
	sb.WriteString(RenderDetails(cards, m.formatter))
	sb.WriteString("\n\n")
	if out, err := TotalEquivalents(cards); err == nil && !out.IsEmpty {
		sb.WriteString(RenderEquivalents(out))
		sb.WriteString("\n\n")
	}
	sb.WriteString(mutedStyle.Render(
		"tab/↑↓ move • ←/→ change gas • enter apply • ctrl+r reset • esc quit"))
	return sb.String()
}

func (m *SimulateModel) renderForm() string {
	gasLabels := make([]string, len(emissions.DisplayOrder))
	for i, g := range emissions.DisplayOrder {
		label := g.Label()
		if i == m.gasIdx {
			label = focusStyle.Render("[" + label + "]")
		} else {
			label = mutedStyle.Render(" " + label + " ")
		}
		gasLabels[i] = label
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Simulate an edit"))
	if n := len(m.edits); n > 0 {
		sb.WriteString(mutedStyle.Render("  (" + strconv.Itoa(n) + " applied)"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.fieldLabel(fieldGas, "Gas:   "))
	sb.WriteString(strings.Join(gasLabels, " "))
	sb.WriteString("\n")
	sb.WriteString(m.fieldLabel(fieldYear, "Year:  "))
	sb.WriteString(m.yearInput.View())
	sb.WriteString("\n")
	sb.WriteString(m.fieldLabel(fieldValue, "Value: "))
	sb.WriteString(m.valueInput.View())
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	}
	return sb.String()
}

func (m *SimulateModel) fieldLabel(f simulateField, label string) string {
	if m.focus == f {
		return focusStyle.Render(IconCursor + " " + label)
	}
	return labelStyle.Render("  " + label)
}
