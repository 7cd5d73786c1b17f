package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type row struct {
	key   string
	value string
}

// model renders a single snapshot of a finished run as a bordered table of
// flattened bundle keys, with a spinner kept ticking only while interactive.
type model struct {
	title   string
	rows    []row
	spinner spinner.Model
	quit    bool
}

func newModel(title string, data map[string]any) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return model{
		title:   title,
		rows:    flatten("", data),
		spinner: s,
	}
}

func flatten(prefix string, value any) []row {
	var rows []row
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			rows = append(rows, flatten(path, v[k])...)
		}
	default:
		rows = append(rows, row{key: prefix, value: fmt.Sprintf("%v", v)})
	}
	return rows
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.quit {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var body strings.Builder
	body.WriteString(titleStyle.Render(m.title))
	body.WriteString("\n")

	if len(m.rows) == 0 {
		body.WriteString(valueStyle.Render("(empty bundle)"))
	} else {
		for _, r := range m.rows {
			body.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
				keyStyle.Render(r.key),
				valueStyle.Render(r.value),
			))
			body.WriteString("\n")
		}
	}

	status := fmt.Sprintf("%s run complete", m.spinner.View())
	body.WriteString(footerStyle.Render(status + "  •  q: quit"))

	return boxStyle.Render(body.String())
}
