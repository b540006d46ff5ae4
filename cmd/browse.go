package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive designer browser",
	Long: `Browse registered designers in an interactive table.

Controls:
  - ↑/↓   : Navigate
  - Enter : Show dataset
  - c     : Copy hash to clipboard
  - q     : Quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	resp, err := listService.Execute(ctx, services.ListRequest{SortBy: "name"})
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No designers registered"))
		return nil
	}

	p := tea.NewProgram(initialBrowseModel(resp.Designers))
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(browseModel)
	if !ok || m.selected == "" {
		return nil
	}

	dataset, err := listService.Get(ctx, m.selected)
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}
	printDataset(dataset)
	return nil
}

// --- TUI Model ---

type browseModel struct {
	table     table.Model
	designers []domain.Designer
	selected  string
	status    string
}

func initialBrowseModel(designers []domain.Designer) browseModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Hash", Width: domain.HashLength},
		{Title: "Images", Width: 6},
	}

	rows := make([]table.Row, 0, len(designers))
	for _, d := range designers {
		rows = append(rows, table.Row{
			truncate(d.Name, 30),
			d.Hash,
			fmt.Sprintf("%d", d.ImageCount),
		})
	}

	height := len(rows)
	if height > 15 {
		height = 15
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	return browseModel{
		table:     t,
		designers: designers,
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if d, ok := m.current(); ok {
				m.selected = d.Hash
				return m, tea.Quit
			}

		case "c":
			if d, ok := m.current(); ok {
				if err := clipboard.WriteAll(d.Hash); err != nil {
					m.status = "Clipboard access failed"
				} else {
					m.status = "Copied " + d.Hash
				}
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) current() (domain.Designer, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.designers) {
		return domain.Designer{}, false
	}
	return m.designers[idx], true
}

func (m browseModel) View() string {
	view := "\n" +
		ui.StyleTitle.Render(" Designers ") + "\n\n" +
		m.table.View() + "\n\n" +
		ui.FormatMuted(" [Enter] Show  [c] Copy Hash  [q] Quit") + "\n"
	if m.status != "" {
		view += ui.FormatMuted(" "+m.status) + "\n"
	}
	return view
}
