package ui

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgallion1/freebird/internal/doc"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeView:
			return m.updateView(msg)
		case modeSearch, modeGoto, modeSave:
			return m.updatePrompt(msg)
		case modeConfirmClose, modeConfirmQuit:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	d := m.set.Focused()

	switch msg.String() {
	case "q", "ctrl+c":
		if len(m.set.ModifiedDocuments()) > 0 {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.set.CloseAll()
		return m, tea.Quit

	case "tab":
		m.cycleFocus(1)
	case "shift+tab":
		m.cycleFocus(-1)

	case "right", "l", "pgdown":
		if d != nil {
			d.NextPage()
		}
	case "left", "h", "pgup":
		if d != nil {
			d.PrevPage()
		}
	case "g":
		if d != nil && d.Loaded() {
			return m.prompt(modeGoto, "page number", "")
		}

	case "+", "=":
		if d != nil {
			d.SetZoom(d.Zoom() + 0.25)
		}
	case "-":
		if d != nil {
			d.SetZoom(d.Zoom() - 0.25)
		}

	case "d":
		if d != nil {
			if err := d.DeletePage(); err != nil {
				if errors.Is(err, doc.ErrCannotDelete) {
					m.status = "cannot delete the only page"
				} else {
					m.status = err.Error()
				}
			}
		}

	case "J":
		if d != nil && !d.MoveDown() {
			m.status = "page is already last"
		}
	case "K":
		if d != nil && !d.MoveUp() {
			m.status = "page is already first"
		}

	case "a":
		if _, err := m.set.CreateAssembly(); err != nil {
			m.status = err.Error()
		}

	case "t":
		m = m.transplant(false)
	case "T":
		m = m.transplant(true)

	case "/":
		if d != nil && d.Loaded() {
			return m.prompt(modeSearch, "search", d.Results().Query)
		}
	case "n":
		m = m.findNext(true)
	case "N":
		m = m.findNext(false)

	case "s":
		if d != nil && d.Loaded() {
			return m.prompt(modeSave, "save as", d.SuggestedSaveName())
		}

	case "w":
		if d != nil {
			if d.Modified() {
				m.mode = modeConfirmClose
				return m, nil
			}
			m.set.Close(d)
		}
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.leavePrompt(), nil
	case "enter":
		value := m.input.Value()
		target := m.mode
		m = m.leavePrompt()
		return m.submitPrompt(target, value), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(target mode, value string) Model {
	d := m.set.Focused()
	if d == nil {
		return m
	}

	switch target {
	case modeGoto:
		n, err := strconv.Atoi(value)
		if err != nil {
			m.status = fmt.Sprintf("not a page number: %s", value)
			return m
		}
		if !d.GotoPage(n - 1) {
			_, total := d.PageInfo()
			m.status = fmt.Sprintf("page %d out of range 1-%d", n, total)
		}

	case modeSearch:
		if value == "" {
			return m
		}
		if !d.Search(value, false, false) {
			m.status = fmt.Sprintf("no matches for %q", value)
		} else {
			m.status = d.Results().StatusText()
		}

	case modeSave:
		if value == "" {
			return m
		}
		if err := d.Save(value); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved " + value
		}
	}
	return m
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := m.mode
	switch msg.String() {
	case "y", "Y":
		m.mode = modeView
		if confirm == modeConfirmQuit {
			m.set.CloseAll()
			return m, tea.Quit
		}
		if d := m.set.Focused(); d != nil {
			m.set.Close(d)
		}
	case "n", "N", "esc":
		m.mode = modeView
	}
	return m, nil
}

func (m Model) cycleFocus(delta int) {
	docs := m.set.Documents()
	if len(docs) == 0 {
		return
	}
	cur := 0
	for i, d := range docs {
		if d == m.set.Focused() {
			cur = i
			break
		}
	}
	m.set.Focus(docs[(cur+delta+len(docs))%len(docs)])
}

func (m Model) transplant(all bool) Model {
	var moved bool
	var err error
	if all {
		moved, err = m.set.TransplantAll(m.set.Focused())
	} else {
		moved, err = m.set.TransplantPage(m.set.Focused())
	}
	switch {
	case err != nil:
		m.status = err.Error()
	case !moved:
		m.status = "no assembly open"
	}
	return m
}

func (m Model) findNext(forward bool) Model {
	d := m.set.Focused()
	if d == nil || !d.Results().HasResults() {
		m.status = "no active search"
		return m
	}
	d.FindNext(forward)
	m.status = d.Results().StatusText()
	return m
}
