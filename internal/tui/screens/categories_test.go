package screens

import (
	"testing"

	"github.com/Levipasha/retrend/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesModel_ChoosesItem(t *testing.T) {
	m := NewCategoriesModel(catalog.Default())
	assert.Contains(t, m.View(), "CHOOSE A CATEGORY")

	// Mobiles is the fourth category
	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Mobiles")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenSell, msg.Screen)
	assert.Equal(t, SellTarget{Category: "Mobiles", Item: "Mobile Phones"}, msg.Data)
}

func TestCategoriesModel_BackSteps(t *testing.T) {
	m := NewCategoriesModel(catalog.Default())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.category)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, -1, m.category)
	assert.Equal(t, 1, m.cursor)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg, ok := hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenListings, msg.Screen)
}

func TestCategoriesModel_CursorWraps(t *testing.T) {
	m := NewCategoriesModel(catalog.Default())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(catalog.Default().Categories)-1, m.cursor)
}

func TestAdSuccessModel(t *testing.T) {
	m := NewAdSuccessModel(nil)
	assert.Contains(t, m.View(), "Congratulations")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	msg, ok := hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenCategories, msg.Screen)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok = hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenListings, msg.Screen)
}
