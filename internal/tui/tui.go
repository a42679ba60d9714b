package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/lbliii/milodocs/internal/products"
)

// lines taken by the header, input box, status and help
const chromeHeight = 9

func NewApp(client *Client) *Model {
	ti := textinput.New()
	ti.Placeholder = "ask about the docs..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return &Model{
		client:   client,
		input:    ti,
		viewport: viewport.New(80, 10),
		spinner:  sp,
		products: products.All(),
		product:  -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// returns the selected product filter, empty for all products
func (m *Model) ProductFilter() string {
	if m.product < 0 || m.product >= len(m.products) {
		return ""
	}

	return m.products[m.product]
}

// selects a product filter by name, unknown names select all products
func (m *Model) SetProductFilter(name string) {
	m.product = slices.Index(m.products, name)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+p":
			// cycles all -> each product -> all
			m.product++
			if m.product >= len(m.products) {
				m.product = -1
			}

			return m, nil

		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query == "" || m.fetching {
				return m, nil
			}

			m.fetching = true
			m.err = nil
			m.lastQuery = query
			m.input.SetValue("")

			return m, tea.Batch(m.spinner.Tick, m.client.AskCmd(query, m.ProductFilter()))

		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)

			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(10, msg.Width-8)
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, msg.Height-chromeHeight)
		m.refreshAnswer()

		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case AnswerMsg:
		m.fetching = false
		m.answer = msg.answer
		m.refreshAnswer()
		m.viewport.GotoTop()

		return m, nil

	case AnswerErrorMsg:
		m.fetching = false
		m.err = msg.err

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) refreshAnswer() {
	if m.answer == "" {
		m.viewport.SetContent(infoStyle.Render("answers appear here"))
		return
	}

	m.viewport.SetContent(renderMarkdown(m.answer, m.viewport.Width-2))
}

// renders md for the terminal, falling back to the raw text
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(20, width)),
	)
	if err != nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}

	return strings.TrimRight(out, "\n")
}

func (m *Model) View() string {
	var b strings.Builder

	filter := "all products"
	if p := m.ProductFilter(); p != "" {
		filter = p
	}

	b.WriteString(titleStyle.Render("milodocs"))
	b.WriteString("  ")
	b.WriteString(filterStyle.Render("[" + filter + "]"))
	b.WriteString("\n")

	if m.lastQuery != "" {
		b.WriteString(infoStyle.Render("Q: " + m.lastQuery))
	}
	b.WriteString("\n")

	b.WriteString(answerBoxStyle.Width(max(20, m.width-2)).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(inputBoxStyle.Width(max(20, m.width-2)).Render(m.input.View()))
	b.WriteString("\n")

	switch {
	case m.fetching:
		b.WriteString(m.spinner.View() + infoStyle.Render(" asking milo..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("[enter: ask] [ctrl+p: product filter] [up/down: scroll] [esc: quit]"))

	return b.String()
}
