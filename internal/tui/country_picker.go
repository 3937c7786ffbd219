package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ghgdash/internal/apiclient"
	listview "github.com/rshade/ghgdash/internal/tui/list"
)

const pickerListHeight = 12

// CountryPickerModel lets the user filter the country catalogue and pick
// one entry with enter.
type CountryPickerModel struct {
	all      []apiclient.Country
	filter   textinput.Model
	list     *listview.Model[apiclient.Country]
	chosen   *apiclient.Country
	quitting bool
}

// NewCountryPickerModel returns a picker over countries.
func NewCountryPickerModel(countries []apiclient.Country) *CountryPickerModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Focus()

	return &CountryPickerModel{
		all:    countries,
		filter: filter,
		list:   listview.New(countries, pickerListHeight, renderCountry),
	}
}

func renderCountry(c apiclient.Country, selected bool) string {
	line := c.Name + " " + mutedStyle.Render("("+c.Code+")")
	if selected {
		return focusStyle.Render(IconCursor+" ") + valueStyle.Render(c.Name) + " " + mutedStyle.Render("("+c.Code+")")
	}
	return "  " + line
}

// Chosen returns the picked country, or nil when the user quit.
func (m *CountryPickerModel) Chosen() *apiclient.Country { return m.chosen }

// Init starts the cursor blinking.
func (m *CountryPickerModel) Init() tea.Cmd { return textinput.Blink }

// Update routes navigation keys to the list and everything else to the
// filter input.
func (m *CountryPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, isSize := msg.(tea.WindowSizeMsg); isSize {
			m.list.SetHeight(min(pickerListHeight, max(size.Height-4, 1)))
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if c, found := m.list.SelectedItem(); found {
			m.chosen = &c
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case "up", "down", "pgup", "pgdown":
		m.list.Update(keyMsg)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(keyMsg)
	if m.filter.Value() != before {
		m.list.SetItems(FilterCountries(m.all, m.filter.Value()))
	}
	return m, cmd
}

// View renders the filter line above the visible slice of the list.
func (m *CountryPickerModel) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Select a country"))
	sb.WriteString("\n")
	sb.WriteString(m.filter.View())
	sb.WriteString("\n\n")
	if m.list.Len() == 0 {
		sb.WriteString(mutedStyle.Render("no matches"))
	} else {
		sb.WriteString(m.list.View())
	}
	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("↑/↓ move • enter select • esc cancel"))
	return sb.String()
}

// FilterCountries keeps countries whose name or code contains query,
// ignoring case.
func FilterCountries(countries []apiclient.Country, query string) []apiclient.Country {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return countries
	}
	out := make([]apiclient.Country, 0, len(countries))
	for _, c := range countries {
		if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(strings.ToLower(c.Code), query) {
			out = append(out, c)
		}
	}
	return out
}
