package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderPage())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	switch m.mode {
	case modeSearch, modeGoto, modeSave:
		b.WriteString(m.styles.Prompt.Render(m.input.View()))
	case modeConfirmClose:
		b.WriteString(m.styles.Prompt.Render("Document has unsaved changes. Close anyway? [y/n]"))
	case modeConfirmQuit:
		b.WriteString(m.styles.Prompt.Render("Unsaved changes in open documents. Quit anyway? [y/n]"))
	default:
		b.WriteString(m.renderHelp())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderTabs() string {
	docs := m.set.Documents()
	if len(docs) == 0 {
		return m.styles.Muted.Render("no documents open")
	}

	tabs := make([]string, 0, len(docs))
	for _, d := range docs {
		label := d.DisplayName()
		if d.Modified() {
			label += " *"
		}
		switch {
		case d == m.set.Focused():
			tabs = append(tabs, m.styles.TabActive.Render(label))
		case d.Modified():
			tabs = append(tabs, m.styles.TabModified.Render(label))
		default:
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPage() string {
	d := m.set.Focused()
	if d == nil {
		return m.styles.Muted.Render("Open a PDF to get started.")
	}
	if !d.Loaded() {
		return m.styles.Muted.Render("(empty document)")
	}
	if d.IsAssembly() && d.PageCount() == 0 {
		return m.styles.Muted.Render("(empty assembly, move pages here with t)")
	}

	page, _ := d.PageInfo()
	text, err := d.PageText(page)
	if err != nil {
		return m.styles.Error.Render("cannot read page: " + err.Error())
	}
	if strings.TrimSpace(text) == "" {
		text = "(no extractable text on this page)"
		return m.styles.Muted.Render(text)
	}

	return m.highlightMatches(text, page)
}

// highlightMatches styles every search hit in the page text, the active
// one distinctly. Hits are matched in reading order, the same order the
// page's match list was built in.
func (m Model) highlightMatches(text string, page int) string {
	d := m.set.Focused()
	res := d.Results()
	if !res.HasResults() || len(res.PageMatches(page)) == 0 {
		return m.styles.Normal.Render(m.clip(text))
	}

	query := strings.ToLower(res.Query)
	lower := strings.ToLower(text)

	var b strings.Builder
	occurrence := 0
	off := 0
	for {
		i := strings.Index(lower[off:], query)
		if i < 0 {
			b.WriteString(m.styles.Normal.Render(text[off:]))
			break
		}
		start := off + i
		end := start + len(query)
		b.WriteString(m.styles.Normal.Render(text[off:start]))
		if res.IsCurrent(page, occurrence) {
			b.WriteString(m.styles.ActiveMatch.Render(text[start:end]))
		} else {
			b.WriteString(m.styles.Match.Render(text[start:end]))
		}
		occurrence++
		off = end
	}
	return m.clip(b.String())
}

// clip bounds the page text to the space between the tab bar and the
// status bar.
func (m Model) clip(s string) string {
	lines := strings.Split(s, "\n")
	max := m.height - 5
	if max < 3 {
		max = 3
	}
	if len(lines) > max {
		lines = lines[:max]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	d := m.set.Focused()
	if d == nil || !d.Loaded() {
		if m.status != "" {
			return m.styles.StatusBar.Render(m.status)
		}
		return m.styles.StatusBar.Render("ready")
	}

	page, total := d.PageInfo()
	parts := []string{
		fmt.Sprintf("Page %d of %d", page+1, total),
		fmt.Sprintf("Zoom %.0f%%", d.Zoom()*100),
	}
	if d.Results().HasResults() {
		parts = append(parts, d.Results().StatusText())
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return m.styles.StatusBar.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderHelp() string {
	return m.styles.Help.Render(
		"[←/→] page  [g] goto  [+/-] zoom  [/] search  [n/N] match  [d] delete  " +
			"[K/J] move  [a] assembly  [t/T] transplant  [s] save  [tab] switch  [w] close  [q] quit")
}
