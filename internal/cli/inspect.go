package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/plan"
)

// inspectCommand creates the inspect command for interactive schedule browsing.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a schedule in an interactive terminal UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, p, err := plan.Load(args[0])
			if err != nil {
				return err
			}
			sched, err := cpm.Compute(g.Snapshot())
			if err != nil {
				return err
			}

			name := p.Name
			if name == "" {
				name = args[0]
			}
			model := NewActivityListModel(name, sched)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// ActivityListModel is the bubbletea model for browsing scheduled activities.
type ActivityListModel struct {
	Name         string
	Schedule     *cpm.Result
	Activities   []cpm.Activity // view after filtering
	Cursor       int
	Offset       int
	Height       int
	CriticalOnly bool
}

// NewActivityListModel creates a model over all activities of a schedule.
func NewActivityListModel(name string, sched *cpm.Result) ActivityListModel {
	return ActivityListModel{
		Name:       name,
		Schedule:   sched,
		Activities: sched.Activities,
		Height:     15,
	}
}

func (m ActivityListModel) Init() tea.Cmd {
	return nil
}

func (m ActivityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Activities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "c":
			m.CriticalOnly = !m.CriticalOnly
			m.Activities = m.filtered()
			m.Cursor = 0
			m.Offset = 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ActivityListModel) filtered() []cpm.Activity {
	if !m.CriticalOnly {
		return m.Schedule.Activities
	}
	var out []cpm.Activity
	for _, a := range m.Schedule.Activities {
		if a.Critical {
			out = append(out, a)
		}
	}
	return out
}

func (m ActivityListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  duration %s", formatFloat(m.Schedule.Duration))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  c critical only  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Activities) {
		end = len(m.Activities)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		a := m.Activities[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if a.Critical {
			mark = "*"
		}
		rows = append(rows, []string{
			cursor,
			a.From + " " + iconArrow + " " + a.To,
			formatFloat(a.Weight),
			formatFloat(a.EarlyStart),
			formatFloat(a.LateFinish),
			formatFloat(a.Slack),
			mark,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Activity", "Dur", "ES", "LF", "Slack", "Crit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Activities) {
				return lipgloss.NewStyle()
			}
			a := m.Activities[actualIdx]
			base := lipgloss.NewStyle().Foreground(colorWhite)
			if a.Critical {
				base = base.Foreground(colorRed)
			}
			if actualIdx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Cursor < len(m.Activities) {
		a := m.Activities[m.Cursor]
		b.WriteString(StyleDim.Render(fmt.Sprintf(
			"  %s %s %s: start in [%s, %s], finish in [%s, %s]",
			a.From, iconArrow, a.To,
			formatFloat(a.EarlyStart), formatFloat(a.LateStart),
			formatFloat(a.EarlyFinish), formatFloat(a.LateFinish))))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Activities))))

	return b.String()
}
