package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/gs1"
)

// inputLimit leaves room for <GS> tokens around the largest DataMatrix
// payload (2335 alphanumeric characters).
const inputLimit = 4096

var limitToast = fmt.Sprintf("Input limit reached (%d characters)", inputLimit)

type model struct {
	theme Theme
	deps  Deps

	input   textinput.Model
	spin    spinner.Model
	format  domain.Format
	gsToken string

	running bool
	seq     int
	cancel  context.CancelFunc

	saved  *domain.SavedExport
	errMsg string
	toast  string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	ti := textinput.New()
	ti.Placeholder = "(01)09506000134352(17)201225<GS>(10)ABC123"
	ti.Prompt = "GS1 › "
	ti.CharLimit = inputLimit
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	token := deps.Config.Export.GSToken
	if token == "" {
		token = gs1.DefaultToken
	}

	return model{
		theme:   DefaultTheme(),
		deps:    deps,
		input:   ti,
		spin:    sp,
		format:  deps.Config.Export.DefaultFormat.Normalize(),
		gsToken: token,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) payload() string {
	return gs1.Expand(strings.TrimSpace(m.input.Value()), m.gsToken)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 16; w > 20 {
			m.input.Width = w
		}
		return m, nil

	case exportDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.running = false
		m.cancel = nil
		if msg.err != nil {
			m.saved = nil
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		saved := msg.saved
		m.saved = &saved
		m.errMsg = ""
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stop()
			return m, tea.Quit

		case "esc":
			if m.running {
				m.stop()
				m.seq++
				m.running = false
				m.errMsg = userMessage(context.Canceled)
				return m, nil
			}
			return m, tea.Quit

		case "tab":
			if m.running {
				return m, nil
			}
			m.format = toggle(m.format)
			return m, nil

		case "enter":
			if m.running {
				return m, nil
			}
			p := m.payload()
			if p == "" {
				m.toast = "Type a GS1 payload first"
				return m, nil
			}

			ctx, cancel := context.WithCancel(context.Background())
			m.seq++
			m.cancel = cancel
			m.running = true
			m.saved = nil
			m.errMsg = ""
			m.toast = ""
			return m, tea.Batch(m.spin.Tick, cmdExport(ctx, m.deps, m.seq, p, m.format))
		}
	}

	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if utf8.RuneCountInString(m.input.Value()) >= inputLimit {
		m.toast = limitToast
	} else if m.toast == limitToast {
		m.toast = ""
	}
	return m, cmd
}

func (m *model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func toggle(f domain.Format) domain.Format {
	if f.Normalize() == domain.FormatPNG {
		return domain.FormatPDF
	}
	return domain.FormatPNG
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("gs1dm") + "\n" +
		m.theme.Subtitle.Render("GS1 DataMatrix export via "+m.deps.Config.Server.BaseURL) + "\n" +
		m.theme.Help.Render("Config: "+configLabel(m.deps.ConfigPath)) + "\n"

	var body strings.Builder
	body.WriteString(m.input.View())
	body.WriteString("\n\n")
	body.WriteString("Format: ")
	body.WriteString(m.renderFormat(domain.FormatPNG))
	body.WriteString("  ")
	body.WriteString(m.renderFormat(domain.FormatPDF))

	if fields := renderFields(m.payload()); fields != "" {
		body.WriteString("\n")
		body.WriteString(m.theme.Help.Render("Fields: " + clampString(fields, 120)))
	}

	body.WriteString("\n\n")
	switch {
	case m.running:
		body.WriteString(m.spin.View() + " Exporting " + string(m.format) + "…")
	case m.errMsg != "":
		body.WriteString(m.theme.Error.Render("✗ " + m.errMsg))
	case m.saved != nil:
		body.WriteString(m.theme.OK.Render("✓ " + renderSaved(*m.saved)))
	case m.toast != "":
		body.WriteString(m.theme.Help.Render(m.toast))
	}

	helpText := fmt.Sprintf("enter export • tab png/pdf • %s = 0x1D • esc quit", m.gsToken)
	if m.deps.Debug {
		helpText += " • debug log on"
	}
	help := m.theme.Help.Render(helpText)
	return wrap.Render(header + "\n" + m.theme.Card.Render(body.String()) + "\n" + help)
}

func configLabel(path string) string {
	if strings.TrimSpace(path) == "" {
		return "built-in defaults"
	}
	return path
}

func (m model) renderFormat(f domain.Format) string {
	label := "[ ] " + string(f)
	if m.format == f {
		return m.theme.Active.Render("[x] " + string(f))
	}
	return label
}
