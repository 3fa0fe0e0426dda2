package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/babarot/tt/internal/config"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// listDelegate manages the rendering of list items: density, cursor and
// multi-selection highlighting.
type listDelegate struct {
	showDescription bool
	height          int
	spacing         int
	styles          delegateStyles
	selection       *selection
}

type delegateStyles struct {
	NormalTitle         lipgloss.Style
	NormalDesc          lipgloss.Style
	SelectedTitle       lipgloss.Style
	SelectedDesc        lipgloss.Style
	DimmedTitle         lipgloss.Style
	DimmedDesc          lipgloss.Style
	CursorTitle         lipgloss.Style
	CursorDesc          lipgloss.Style
	SelectedCursorTitle lipgloss.Style
	SelectedCursorDesc  lipgloss.Style
	FilterMatch         lipgloss.Style
}

func newListDelegate(cfg config.UI, sel *selection) *listDelegate {
	height := 2
	spacing := 1
	showDescription := true
	if cfg.Density == "compact" {
		showDescription = false
		height = 1
		spacing = 0
	}

	cursor := lipgloss.Color(cfg.Style.ListView.Cursor)
	selected := lipgloss.Color(cfg.Style.ListView.Selected)

	styles := delegateStyles{
		NormalTitle: lipgloss.NewStyle().
			Padding(0, 0, 0, 2),

		NormalDesc: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}).
			Padding(0, 0, 0, 2),

		SelectedTitle: lipgloss.NewStyle().
			Foreground(selected).
			Padding(0, 0, 0, 2),

		SelectedDesc: lipgloss.NewStyle().
			Foreground(selected).
			Padding(0, 0, 0, 2),

		DimmedTitle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}).
			Padding(0, 0, 0, 2),

		DimmedDesc: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"}).
			Padding(0, 0, 0, 2),

		CursorTitle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(cursor).
			Foreground(cursor).
			Padding(0, 0, 0, 1),

		CursorDesc: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(cursor).
			Foreground(cursor).
			Padding(0, 0, 0, 1),

		SelectedCursorTitle: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(cursor).
			Foreground(selected).
			Padding(0, 0, 0, 1),

		SelectedCursorDesc: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(cursor).
			Foreground(selected).
			Padding(0, 0, 0, 1),

		FilterMatch: lipgloss.NewStyle().
			Underline(true),
	}

	return &listDelegate{
		showDescription: showDescription,
		height:          height,
		spacing:         spacing,
		styles:          styles,
		selection:       sel,
	}
}

func (d *listDelegate) Height() int  { return d.height }
func (d *listDelegate) Spacing() int { return d.spacing }

func (d *listDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d *listDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(*Item)
	if !ok {
		return
	}

	styles := d.styles
	title := item.Title()
	desc := item.Description()

	if m.Width() <= 0 {
		return
	}

	textWidth := m.Width() - styles.NormalTitle.GetPaddingLeft() - styles.NormalTitle.GetPaddingRight()
	title = truncate.StringWithTail(title, uint(textWidth), ellipsis)
	if d.showDescription {
		var lines []string
		for i, line := range strings.Split(desc, "\n") {
			if i >= d.height-1 {
				break
			}
			lines = append(lines, truncate.StringWithTail(line, uint(textWidth), ellipsis))
		}
		desc = strings.Join(lines, "\n")
	}

	var (
		isSelected   = d.selection.Has(item)
		onCursor     = index == m.Index()
		emptyFilter  = m.FilterState() == list.Filtering && m.FilterValue() == ""
		isFiltered   = m.FilterState() == list.Filtering || m.FilterState() == list.FilterApplied
		matchedRunes []int
	)

	if isFiltered {
		matchedRunes = m.MatchesForItem(index)
	}

	switch {
	case emptyFilter:
		title = styles.DimmedTitle.Render(title)
		desc = styles.DimmedDesc.Render(desc)

	case onCursor:
		if isSelected {
			title = styles.SelectedCursorTitle.Render(title)
			desc = styles.SelectedCursorDesc.Render(desc)
		} else {
			title = styles.CursorTitle.Render(title)
			desc = styles.CursorDesc.Render(desc)
		}

	case isSelected:
		title = styles.SelectedTitle.Render(title)
		desc = styles.SelectedDesc.Render(desc)

	default:
		if isFiltered {
			unmatched := styles.NormalTitle.Inline(true)
			matched := unmatched.Inherit(styles.FilterMatch)
			title = lipgloss.StyleRunes(title, matchedRunes, matched, unmatched)
		}
		title = styles.NormalTitle.Render(title)
		desc = styles.NormalDesc.Render(desc)
	}

	if d.showDescription {
		fmt.Fprintf(w, "%s\n%s", title, desc)
		return
	}
	fmt.Fprintf(w, "%s", title)
}
