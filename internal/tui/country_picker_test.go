package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgdash/internal/apiclient"
)

func catalogue() []apiclient.Country {
	return []apiclient.Country{
		{Name: "World", Code: "WLD"},
		{Name: "Indonesia", Code: "IDN"},
		{Name: "India", Code: "IND"},
		{Name: "Germany", Code: "DEU"},
	}
}

func TestFilterCountries(t *testing.T) {
	assert.Len(t, FilterCountries(catalogue(), ""), 4)
	assert.Len(t, FilterCountries(catalogue(), "ind"), 2)
	assert.Len(t, FilterCountries(catalogue(), " deu "), 1)
	assert.Empty(t, FilterCountries(catalogue(), "atlantis"))
}

func TestCountryPicker(t *testing.T) {
	m := NewCountryPickerModel(catalogue())

	for _, r := range "ind" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Contains(t, m.View(), "India")
	assert.NotContains(t, m.View(), "Germany")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, m.Chosen())
	assert.Equal(t, "IND", m.Chosen().Code)
}

func TestCountryPicker_Cancel(t *testing.T) {
	m := NewCountryPickerModel(catalogue())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.Chosen())
	assert.Empty(t, m.View())
}
