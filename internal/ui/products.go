package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleProductsKey processes keyboard input for the product list.
func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Products)

	switch {
	case key.Matches(msg, m.keys.Search):
		m.prompt = newPrompt(promptSearch, "Search", "", m.searchQuery)
		m.prompt.input.ShowSuggestions = true
		m.prompt.input.SetSuggestions(m.recentSearches)
		return m, m.prompt.focus()

	case key.Matches(msg, m.keys.Refresh):
		m.searchQuery = ""
		m.savePrefs()
		return m, m.refreshProductsCmd()

	case key.Matches(msg, m.keys.LoadMore):
		if m.searchQuery != "" {
			m.status = statusMsg{text: "Clear the search (r) to page the catalog", err: true}
			return m, nil
		}
		return m, m.loadMoreCmd()
	}

	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedProduct < count-1 {
			m.selectedProduct++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedProduct > 0 {
			m.selectedProduct--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedProduct = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedProduct = count - 1
	case key.Matches(msg, m.keys.Open):
		return m.openSelectedProduct()
	}
	return m, nil
}

func (m Model) openSelectedProduct() (tea.Model, tea.Cmd) {
	products := m.snapshot.Products
	if len(products) == 0 {
		return m, nil
	}
	id := string(products[clamp(m.selectedProduct, len(products))].ID)
	m.openProductID = id
	m.currentView = ViewDetail
	m.detailFocus = paneReviews
	m.selectedReview = 0
	m.selectedComment = 0
	m.detailViewport.GotoTop()
	m.syncDetailViewport()
	return m, m.openProductCmd(id)
}

// renderProducts renders the catalog table.
func (m Model) renderProducts() string {
	styles := m.theme.Styles()
	products := m.snapshot.Products
	height := m.contentHeight()

	if len(products) == 0 {
		msg := "No products loaded"
		if m.searchQuery != "" {
			msg = fmt.Sprintf("No products match %q", m.searchQuery)
		}
		return styles.MutedText.Render(msg)
	}

	titleWidth := m.width - 52
	if titleWidth < 20 {
		titleWidth = 20
	}

	var b strings.Builder
	header := fmt.Sprintf("  %s %s %s %s %s",
		padRight("Title", titleWidth), padRight("Brand", 14), padRight("Price", 16), padRight("Rating", 7), "Stock")
	b.WriteString(styles.FaintText.Render(header))
	b.WriteString("\n")

	rows := height - 1
	start := 0
	if m.selectedProduct >= rows {
		start = m.selectedProduct - rows + 1
	}
	end := start + rows
	if end > len(products) {
		end = len(products)
	}

	for i := start; i < end; i++ {
		p := products[i]
		line := fmt.Sprintf("  %s %s %s %s %d",
			padRight(truncate(p.Title, titleWidth), titleWidth),
			padRight(truncate(p.Brand, 14), 14),
			padRight(formatPrice(p.Price, p.DiscountPercentage), 16),
			padRight(fmt.Sprintf("%.1f", p.Rating), 7),
			p.Stock)
		if i == m.selectedProduct {
			b.WriteString(styles.Selected.Width(m.width).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
