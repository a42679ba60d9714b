package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// main TUI application model
type Model struct {
	client    *Client
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	products  []string
	product   int // index into products, -1 for all products
	width     int
	height    int
	ready     bool
	fetching  bool
	lastQuery string
	answer    string
	err       error
}

// sent when the server answers a question
type AnswerMsg struct {
	query  string
	answer string
}

// sent when asking fails
type AnswerErrorMsg struct {
	query string
	err   error
}
