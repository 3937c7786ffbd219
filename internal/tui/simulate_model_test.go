package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgdash/internal/emissions"
	"github.com/rshade/ghgdash/internal/format"
)

func typeText(m *SimulateModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *SimulateModel, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func first(t *testing.T, stats emissions.StatsByGas, gas emissions.GasKey, year int) float64 {
	t.Helper()
	v, ok := stats[gas].RawValues.First(year)
	require.True(t, ok)
	return v
}

func TestSimulateModel_SubmitEdit(t *testing.T) {
	baseline := sampleStats()
	m := NewSimulateModel("World", emissions.DefaultYearRange(), baseline, format.New("en"))
	require.Equal(t, emissions.GasTotal, m.SelectedGas())

	// Select CO2.
	press(m, tea.KeyRight)
	assert.Equal(t, emissions.GasCO2, m.SelectedGas())

	// Year field defaults to the end of the range; move to value.
	press(m, tea.KeyTab)
	press(m, tea.KeyTab)
	typeText(m, "50")
	press(m, tea.KeyEnter)

	require.NoError(t, m.Err())
	require.Len(t, m.Edits(), 1)
	assert.InDelta(t, 50.0, first(t, m.Current(), emissions.GasCO2, 2023), 1e-9)
	assert.InDelta(t, 52.0, first(t, m.Current(), emissions.GasTotal, 2023), 1e-9, "50 + ch4 2")
	assert.InDelta(t, 25.0, first(t, baseline, emissions.GasCO2, 2023), 1e-9, "fetched snapshot untouched")
	assert.Contains(t, m.View(), "+150.00%")
}

func TestSimulateModel_InvalidValue(t *testing.T) {
	m := NewSimulateModel("World", emissions.DefaultYearRange(), sampleStats(), nil)
	before := m.Current()

	press(m, tea.KeyShiftTab)
	typeText(m, "abc")
	press(m, tea.KeyEnter)

	require.ErrorIs(t, m.Err(), emissions.ErrInvalidEdit)
	assert.Equal(t, before, m.Current())
	assert.Empty(t, m.Edits())
	assert.Contains(t, m.View(), "invalid edit")
}

func TestSimulateModel_Reset(t *testing.T) {
	baseline := sampleStats()
	m := NewSimulateModel("World", emissions.DefaultYearRange(), baseline, nil)

	press(m, tea.KeyShiftTab)
	typeText(m, "1")
	press(m, tea.KeyEnter)
	require.Len(t, m.Edits(), 1)

	press(m, tea.KeyCtrlR)
	assert.Empty(t, m.Edits())
	assert.Equal(t, baseline, m.Current())
	assert.NoError(t, m.Err())
}

func TestSimulateModel_Quit(t *testing.T) {
	m := NewSimulateModel("World", emissions.DefaultYearRange(), nil, nil)
	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
