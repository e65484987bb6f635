// Package ui is the terminal front end for the viewer. It drives a
// document set through a tabbed bubbletea program: one tab per open
// document, a text rendering of the current page with search matches
// highlighted, and prompts for search, page jumps and saving.
package ui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgallion1/freebird/internal/docset"
)

type mode int

const (
	modeView mode = iota
	modeSearch
	modeGoto
	modeSave
	modeConfirmClose
	modeConfirmQuit
)

// Model is the root bubbletea model.
type Model struct {
	set    *docset.Controller
	log    *slog.Logger
	styles *Styles

	mode   mode
	input  textinput.Model
	status string

	width  int
	height int
}

func New(set *docset.Controller, log *slog.Logger) Model {
	in := textinput.New()
	in.CharLimit = 256
	return Model{
		set:    set,
		log:    log,
		styles: DefaultStyles(),
		input:  in,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// prompt switches into an input mode with the given placeholder and
// initial value.
func (m Model) prompt(target mode, placeholder, value string) (Model, tea.Cmd) {
	m.mode = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) leavePrompt() Model {
	m.mode = modeView
	m.input.Blur()
	m.input.SetValue("")
	return m
}
