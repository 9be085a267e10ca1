package screens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/Levipasha/retrend/internal/tui/components"
	"github.com/Levipasha/retrend/internal/tui/widgets"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const submitTimeout = 3 * time.Minute

// submitDoneMsg carries the outcome of a background submit.
type submitDoneMsg struct {
	result sell.Result
}

type formSection struct {
	title  string
	widget widgets.Widget
}

// SellFormModel is the sell form for one category/item.
type SellFormModel struct {
	form      *sell.Form
	submitter *sell.Submitter
	target    SellTarget
	logger    logrus.FieldLogger

	details  *widgets.Details
	extra    widgets.Widget
	price    *widgets.Price
	images   *widgets.Images
	address  *widgets.Address
	reviewer *widgets.Reviewer

	// flat index over every widget field
	focus int

	toast   components.ToastModel
	spinner spinner.Model
	keys    common.FormKeyMap

	width  int
	height int
}

// NewSellFormModel creates a sell form. location prefills the location field
// and userName the reviewer name.
func NewSellFormModel(cat *catalog.Catalog, target SellTarget, submitter *sell.Submitter, location, userName string, logger logrus.FieldLogger) SellFormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorSecondary)

	m := SellFormModel{
		form:      sell.NewForm(cat, target.Category, target.Item),
		submitter: submitter,
		target:    target,
		logger: logging.OrDiscard(logger).WithFields(logrus.Fields{
			"component":   "sellform",
			"category":    target.Category,
			"subcategory": target.Item,
		}),
		details:  widgets.NewDetails(),
		price:    widgets.NewPrice(),
		images:   widgets.NewImages(),
		address:  widgets.NewAddress(location),
		reviewer: widgets.NewReviewer(userName),
		spinner:  sp,
		keys:     common.DefaultFormKeyMap(),
	}

	if opts, ok := cat.VehicleOptions(target.Category); ok {
		m.extra = widgets.NewVehicle(opts)
	} else if fields := cat.Fields(target.Category); len(fields) > 0 {
		m.extra = widgets.NewCategoryFields(fields)
	}

	m.apply(m.address.Changed())
	m.apply(m.reviewer.Changed())
	if _, err := m.form.AddImageSlot(); err == nil {
		m.images.AddSlot()
	}
	return m
}

// Init focuses the first field
func (m SellFormModel) Init() tea.Cmd {
	if !m.form.Known() {
		return nil
	}
	return m.focusField(0)
}

// Form returns the underlying form.
func (m SellFormModel) Form() *sell.Form { return m.form }

func (m SellFormModel) sections() []formSection {
	out := []formSection{{"INCLUDE SOME DETAILS", m.details}}
	if m.extra != nil {
		title := "CATEGORY DETAILS"
		if m.form.IsVehicle() {
			title = "VEHICLE DETAILS"
		}
		out = append(out, formSection{title, m.extra})
	}
	return append(out,
		formSection{"SET A PRICE", m.price},
		formSection{fmt.Sprintf("UPLOAD UP TO %d PHOTOS", sell.MaxImages), m.images},
		formSection{"CONFIRM YOUR LOCATION", m.address},
		formSection{"REVIEW YOUR DETAILS", m.reviewer},
	)
}

func (m SellFormModel) fieldCount() int {
	n := 0
	for _, s := range m.sections() {
		n += s.widget.FieldCount()
	}
	return n
}

// locate maps a flat field index to its section and field.
func (m SellFormModel) locate(index int) (section, field int) {
	for i, s := range m.sections() {
		if index < s.widget.FieldCount() {
			return i, index
		}
		index -= s.widget.FieldCount()
	}
	return -1, 0
}

func (m *SellFormModel) focusField(index int) tea.Cmd {
	n := m.fieldCount()
	if n == 0 {
		return nil
	}
	index = ((index % n) + n) % n
	m.focus = index

	for _, s := range m.sections() {
		s.widget.Blur()
	}
	section, field := m.locate(index)
	return m.sections()[section].widget.Focus(field)
}

func (m SellFormModel) focused() widgets.Widget {
	section, _ := m.locate(m.focus)
	if section < 0 {
		return nil
	}
	return m.sections()[section].widget
}

func (m SellFormModel) apply(c sell.Change) {
	if err := m.form.Apply(c); err != nil {
		m.logger.WithError(err).Debug("change ignored")
	}
}

// Update handles messages for the sell form
func (m SellFormModel) Update(msg tea.Msg) (SellFormModel, tea.Cmd) {
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sell.Change:
		m.apply(msg)
		return m, nil

	case widgets.ImageSelectedMsg:
		if err := m.form.SetImage(msg.Slot, msg.Ref); err != nil {
			m.logger.WithError(err).WithField("slot", msg.Slot).Debug("image change ignored")
		}
		return m, nil

	case submitDoneMsg:
		return m.complete(msg.result)

	case spinner.TickMsg:
		if m.form.Status() == sell.StatusPost {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, toastCmd
}

func (m SellFormModel) handleKey(msg tea.KeyMsg) (SellFormModel, tea.Cmd) {
	if m.form.Status() == sell.StatusPost {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, navigate(ScreenListings, nil)

	case key.Matches(msg, m.keys.Change):
		return m, navigate(ScreenCategories, nil)
	}

	if !m.form.Known() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m, m.focusField(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.focusField(m.focus - 1)

	case key.Matches(msg, m.keys.AddImage):
		return m.addImageSlot()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if w := m.focused(); w != nil {
		return m, w.Update(msg)
	}
	return m, nil
}

func (m SellFormModel) addImageSlot() (SellFormModel, tea.Cmd) {
	slot, err := m.form.AddImageSlot()
	if err != nil {
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(components.ToastInfo, "Photos", fmt.Sprintf("You can upload up to %d photos.", sell.MaxImages))
		return m, cmd
	}
	m.images.AddSlot()

	// focus the new slot
	index := 0
	for _, s := range m.sections() {
		if s.widget == widgets.Widget(m.images) {
			index += slot
			break
		}
		index += s.widget.FieldCount()
	}
	return m, m.focusField(index)
}

func (m SellFormModel) submit() (SellFormModel, tea.Cmd) {
	draft, err := m.form.Begin()
	if err != nil {
		var verrs sell.ValidationErrors
		title := "Error"
		if errors.As(err, &verrs) {
			title = "Please fix the following"
		}
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(components.ToastError, title, err.Error())
		return m, cmd
	}

	m.toast = m.toast.Dismiss()
	submitter := m.submitter
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		if submitter == nil {
			return submitDoneMsg{result: sell.Result{Err: fmt.Errorf("no submitter")}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return submitDoneMsg{result: submitter.Submit(ctx, draft)}
	})
}

func (m SellFormModel) complete(r sell.Result) (SellFormModel, tea.Cmd) {
	m.form.Complete(r)

	d := m.form.Draft()
	for i, ref := range d.Images {
		if assets.IsUploaded(ref) {
			m.images.SetRef(i, ref)
		}
	}
	if assets.IsUploaded(d.ProfileImage) {
		m.reviewer.SetPhoto(d.ProfileImage)
	}

	if m.form.Status() == sell.StatusRedirect {
		product := r.Product
		if product == nil {
			product = &models.Product{Title: d.Title}
		}
		return m, navigate(ScreenAdSuccess, product)
	}

	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(components.ToastError, "Error", sell.FailureMessage)
	return m, cmd
}

// View renders the sell form
func (m SellFormModel) View() string {
	if !m.form.Known() {
		return m.notFoundView()
	}

	var body strings.Builder
	focusLine := 0

	body.WriteString(common.TitleStyle.Render("POST YOUR AD"))
	body.WriteString("\n")
	body.WriteString(common.SectionStyle.Render("SELECTED CATEGORY"))
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("%s / %s  ", m.target.Category, m.target.Item))
	body.WriteString(common.MutedTextStyle.Render("(ctrl+k to change)"))
	body.WriteString("\n\n")

	focusSection, _ := m.locate(m.focus)
	for i, s := range m.sections() {
		if i == focusSection {
			focusLine = strings.Count(body.String(), "\n")
		}
		body.WriteString(common.SectionStyle.Render(s.title))
		body.WriteString("\n")
		body.WriteString(s.widget.View())
		body.WriteString("\n\n")
	}

	body.WriteString(common.SectionStyle.Render("POST"))
	body.WriteString("\n")
	if m.form.Status() == sell.StatusPost {
		body.WriteString(fmt.Sprintf("%s Posting your ad...", m.spinner.View()))
	} else {
		body.WriteString(common.ButtonStyle.Render("  Post now  "))
	}

	content := scrollWindow(body.String(), focusLine, m.bodyHeight())

	var out strings.Builder
	out.WriteString(content)
	out.WriteString("\n")
	if m.toast.Visible() {
		out.WriteString(m.toast.View())
		out.WriteString("\n")
	}
	out.WriteString(strings.Join([]string{
		common.FormatHelp("tab", "next"),
		common.FormatHelp("←/→", "choose"),
		common.FormatHelp("ctrl+n", "add photo"),
		common.FormatHelp("ctrl+s", "post"),
		common.FormatHelp("esc", "cancel"),
	}, "  "))

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Render(out.String())
}

func (m SellFormModel) bodyHeight() int {
	h := m.height - 2
	if m.toast.Visible() {
		h -= 4
	}
	return h
}

// scrollWindow returns at most height lines of s, keeping the line at focus
// near the top.
func scrollWindow(s string, focus, height int) string {
	lines := strings.Split(s, "\n")
	if height <= 0 || len(lines) <= height {
		return s
	}
	start := focus - 2
	if start > len(lines)-height {
		start = len(lines) - height
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:start+height], "\n")
}

func (m SellFormModel) notFoundView() string {
	var content strings.Builder
	content.WriteString(common.ErrorTextStyle.Render("Category not found"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("%q / %q is not a category you can post in.", m.target.Category, m.target.Item))
	content.WriteString("\n\n")
	content.WriteString(strings.Join([]string{
		common.FormatHelp("ctrl+k", "choose a category"),
		common.FormatHelp("esc", "back"),
	}, "  "))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content.String())
}
