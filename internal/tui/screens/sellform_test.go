package screens

import (
	"errors"
	"testing"

	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/Levipasha/retrend/internal/tui/widgets"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mobiles = SellTarget{Category: "Mobiles", Item: "Mobile Phones"}

func newTestSellForm(poster *fakePoster, uploader *fakeUploader, target SellTarget) SellFormModel {
	sub := sell.NewSubmitter(poster, uploader, nil)
	return NewSellFormModel(catalog.Default(), target, sub, "Koramangala, Bengaluru", "Asha", nil)
}

func fill(t *testing.T, m SellFormModel) SellFormModel {
	t.Helper()
	for _, msg := range []tea.Msg{
		sell.DetailsChanged{Title: "iPhone 12", Description: "Mint condition"},
		sell.PriceChanged{Price: "45000"},
		sell.AddressChanged{Mode: sell.ModeLocation, Location: "Koramangala, Bengaluru"},
		widgets.ImageSelectedMsg{Slot: 0, Ref: "/tmp/front.jpg"},
	} {
		m, _ = m.Update(msg)
	}
	return m
}

func ctrl(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestSellFormModel_Seeded(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, mobiles)

	d := m.Form().Draft()
	assert.Equal(t, "Mobiles", d.Category)
	assert.Equal(t, "Mobile Phones", d.Subcategory)
	assert.Equal(t, "Asha", d.Name)
	assert.Equal(t, "Koramangala, Bengaluru", d.Location)
	assert.Equal(t, sell.ModeLocation, d.Mode)
	assert.Equal(t, []string{""}, d.Images)

	view := m.View()
	for _, heading := range []string{"INCLUDE SOME DETAILS", "CATEGORY DETAILS", "SET A PRICE", "UPLOAD UP TO 12 PHOTOS", "CONFIRM YOUR LOCATION", "REVIEW YOUR DETAILS", "POST"} {
		assert.Contains(t, view, heading)
	}
}

func TestSellFormModel_VehicleSection(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, SellTarget{Category: "OLX Autos (Cars)", Item: "Cars"})
	assert.True(t, m.Form().IsVehicle())
	assert.Contains(t, m.View(), "VEHICLE DETAILS")
}

func TestSellFormModel_UnknownCategory(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, SellTarget{Category: "Spaceships", Item: "Rockets"})
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "Category not found")

	_, cmd := m.Update(ctrl(tea.KeyCtrlS))
	assert.Nil(t, cmd)

	_, cmd = m.Update(ctrl(tea.KeyCtrlK))
	msg, ok := hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenCategories, msg.Screen)
}

func TestSellFormModel_FocusCycles(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, mobiles)
	m.Init()

	// details 2 + mobiles fields 2 + price 1 + photos 1 + address 3 + reviewer 2
	require.Equal(t, 11, m.fieldCount())

	m, _ = m.Update(ctrl(tea.KeyShiftTab))
	assert.Equal(t, 10, m.focus)
	m, _ = m.Update(ctrl(tea.KeyTab))
	assert.Equal(t, 0, m.focus)
}

func TestSellFormModel_TypingReachesDraft(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, mobiles)
	m.Init()

	_, cmd := m.Update(typed("iPhone 12"))
	for _, msg := range collect(cmd) {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, "iPhone 12", m.Form().Draft().Title)
}

func TestSellFormModel_ValidationToast(t *testing.T) {
	poster := &fakePoster{}
	m := newTestSellForm(poster, &fakeUploader{}, mobiles)

	m, _ = m.Update(ctrl(tea.KeyCtrlS))
	assert.Equal(t, sell.StatusIdle, m.Form().Status())
	assert.True(t, m.toast.Visible())
	assert.Contains(t, m.toast.Message(), sell.MsgTitle)
	assert.Contains(t, m.toast.Message(), sell.MsgImage)
	assert.Empty(t, poster.payloads)
}

func TestSellFormModel_SubmitSuccess(t *testing.T) {
	poster := &fakePoster{}
	uploader := &fakeUploader{}
	m := fill(t, newTestSellForm(poster, uploader, mobiles))

	m, cmd := m.Update(ctrl(tea.KeyCtrlS))
	require.Equal(t, sell.StatusPost, m.Form().Status())

	// edits are ignored while posting
	m2, keyCmd := m.Update(ctrl(tea.KeyCtrlS))
	assert.Nil(t, keyCmd)
	assert.Equal(t, sell.StatusPost, m2.Form().Status())

	done, ok := hasMsg[submitDoneMsg](collect(cmd))
	require.True(t, ok)
	require.NoError(t, done.result.Err)

	m, cmd = m.Update(done)
	assert.Equal(t, sell.StatusRedirect, m.Form().Status())
	nav, ok := hasMsg[NavigateMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenAdSuccess, nav.Screen)

	require.Len(t, poster.payloads, 1)
	p := poster.payloads[0]
	assert.Equal(t, []string{"https://cdn.example/tmp/front.jpg"}, p.UploadedFiles)
	assert.Equal(t, "Koramangala, Bengaluru", p.Address)
	assert.Equal(t, "Asha", p.Name)
}

func TestSellFormModel_FailureReusesUploads(t *testing.T) {
	poster := &fakePoster{err: errors.New("server down")}
	uploader := &fakeUploader{}
	m := fill(t, newTestSellForm(poster, uploader, mobiles))

	m, cmd := m.Update(ctrl(tea.KeyCtrlS))
	done, ok := hasMsg[submitDoneMsg](collect(cmd))
	require.True(t, ok)

	m, _ = m.Update(done)
	assert.Equal(t, sell.StatusIdle, m.Form().Status())
	assert.Equal(t, sell.FailureMessage, m.toast.Message())
	assert.Equal(t, []string{"https://cdn.example/tmp/front.jpg"}, m.Form().Draft().Images)
	assert.Contains(t, m.View(), "uploaded")

	poster.err = nil
	_, cmd = m.Update(ctrl(tea.KeyCtrlS))
	done, ok = hasMsg[submitDoneMsg](collect(cmd))
	require.True(t, ok)
	require.NoError(t, done.result.Err)

	assert.Equal(t, []string{"/tmp/front.jpg"}, uploader.paths)
	assert.Len(t, poster.payloads, 2)
}

func TestSellFormModel_PhotoLimit(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, mobiles)

	for i := 1; i < sell.MaxImages; i++ {
		m, _ = m.Update(ctrl(tea.KeyCtrlN))
	}
	assert.Len(t, m.Form().Draft().Images, sell.MaxImages)
	assert.False(t, m.toast.Visible())

	m, _ = m.Update(ctrl(tea.KeyCtrlN))
	assert.Len(t, m.Form().Draft().Images, sell.MaxImages)
	assert.True(t, m.toast.Visible())
}

func TestSellFormModel_AddedSlotIsFocused(t *testing.T) {
	m := newTestSellForm(&fakePoster{}, &fakeUploader{}, mobiles)

	m, _ = m.Update(ctrl(tea.KeyCtrlN))
	// details 2 + mobiles fields 2 + price 1 + first photo slot
	assert.Equal(t, 6, m.focus)

	_, cmd := m.Update(typed("/tmp/back.jpg"))
	msg, ok := hasMsg[widgets.ImageSelectedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, 1, msg.Slot)
}

func TestScrollWindow(t *testing.T) {
	s := "0\n1\n2\n3\n4\n5\n6\n7\n8\n9"
	assert.Equal(t, s, scrollWindow(s, 5, 20))
	assert.Equal(t, "3\n4\n5", scrollWindow(s, 5, 3))
	assert.Equal(t, "7\n8\n9", scrollWindow(s, 9, 3))
	assert.Equal(t, "0\n1\n2", scrollWindow(s, 0, 3))
}
