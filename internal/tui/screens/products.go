package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/table"
)

const (
	priceWidth    = 14
	categoryWidth = 18
)

func newProductTable() table.Model {
	t := table.New(
		table.WithColumns(productColumns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(common.TableStyles())
	return t
}

// productColumns splits the free width between title and address.
func productColumns(width int) []table.Column {
	available := width - priceWidth - categoryWidth - 10
	titleWidth, addrWidth := 30, 24
	if available > titleWidth+addrWidth {
		titleWidth = available * 55 / 100
		addrWidth = available - titleWidth
	}
	return []table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Price", Width: priceWidth},
		{Title: "Location", Width: addrWidth},
		{Title: "Category", Width: categoryWidth},
	}
}

func productRows(products []models.Product, cols []table.Column) []table.Row {
	rows := make([]table.Row, len(products))
	for i, p := range products {
		category := p.Subcategory
		if category == "" {
			category = p.Category
		}
		rows[i] = table.Row{
			common.Truncate(p.Title, cols[0].Width),
			formatPrice(p.Price),
			common.Truncate(orDash(p.Address), cols[2].Width),
			common.Truncate(orDash(category), cols[3].Width),
		}
	}
	return rows
}

// formatPrice renders a price in rupees with Indian digit grouping.
func formatPrice(p models.Price) string {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return "-"
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "₹ " + s
	}
	return "₹ " + groupIndian(n)
}

// groupIndian groups digits as 12,34,567: the last three, then pairs.
func groupIndian(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return sign + strings.Join(parts, ",") + "," + tail
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// matchesQuery reports whether p's title, description or category contains
// query, ignoring case.
func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Title, p.Description, p.Category, p.Subcategory} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// productDetail renders one product for the detail pane.
func productDetail(p models.Product) string {
	var b strings.Builder
	b.WriteString(common.TitleStyle.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(common.PrimaryTextStyle.Render(formatPrice(p.Price)))
	b.WriteString("\n\n")
	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Location: %s\n", orDash(p.Address))
	fmt.Fprintf(&b, "Category: %s / %s\n", orDash(p.Category), orDash(p.Subcategory))
	if p.VehicleData != nil {
		fmt.Fprintf(&b, "Vehicle:  %s %s (%s)\n", p.VehicleData.Brand, p.VehicleData.Model, p.VehicleData.VehicleType)
	}
	for k, v := range p.CategoryData {
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}
	if p.Name != "" {
		fmt.Fprintf(&b, "Seller:   %s\n", p.Name)
	}
	if n := len(p.UploadedFiles); n > 0 {
		b.WriteString(common.MutedTextStyle.Render(fmt.Sprintf("%d photo(s)", n)))
		b.WriteString("\n")
		for _, u := range p.UploadedFiles {
			b.WriteString(common.MutedTextStyle.Render("  " + u))
			b.WriteString("\n")
		}
	}
	return b.String()
}
