package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/export"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(16)
)

// =============================================================================
// RecordListModel - Interactive catalog browser
// =============================================================================

// RecordListModel lists catalog records; enter opens the full metadata of
// the selected record.
type RecordListModel struct {
	Records []catalog.Record
	Cursor  int
	Offset  int
	Height  int
	Detail  bool
}

// NewRecordListModel creates a browser over records.
func NewRecordListModel(records []catalog.Record) RecordListModel {
	return RecordListModel{Records: records, Height: 15}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Detail {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "backspace", "left", "h":
				m.Detail = false
			}
			return m, nil
		}
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
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if len(m.Records) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	if len(m.Records) == 0 {
		return StyleTitle.Render("Asset Catalog") + "\n\n" + listDimStyle.Render("No records. Press q to quit.") + "\n"
	}
	if m.Detail {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Asset Catalog"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, export.SectionTitle(r.Section), r.File, r.Description, r.Usage})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Section", "File", "Description", "Usage").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			current := m.Offset+row == m.Cursor
			switch {
			case current && col == 2:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case current:
				return lipgloss.NewStyle().Bold(true)
			case col == 1 || col == 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))
	return b.String()
}

func (m RecordListModel) detailView() string {
	r := m.Records[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(r.File))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
	b.WriteString("\n\n")

	line := func(k, v string) {
		b.WriteString(detailKeyStyle.Render(k) + " " + StyleValue.Render(v) + "\n")
	}
	line("Section", export.SectionTitle(r.Section))
	if r.Name != "" {
		line("Entry", r.Name)
	}
	line("Description", r.Description)
	line("Usage", r.Usage)

	if len(r.Specifications) > 0 {
		b.WriteString("\n" + listHeaderStyle.Render("Specifications") + "\n")
		for _, f := range r.Specifications {
			switch v := f.Value.(type) {
			case []string:
				line(f.Key, strings.Join(v, ", "))
			default:
				line(f.Key, fmt.Sprint(v))
			}
		}
	}
	return b.String()
}
