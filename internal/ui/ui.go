// Package ui implements the interactive restore selector: a filterable list
// of trashed files with multi-selection.
package ui

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/babarot/tt/internal/config"
	"github.com/babarot/tt/internal/trash"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 66
	defaultHeight = 26
)

type keyMap struct {
	Select   key.Binding
	DeSelect key.Binding
	Enter    key.Binding
	Quit     key.Binding
}

var listKeys = keyMap{
	Select:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select")),
	DeSelect: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("s-tab", "deselect")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "restore")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// selection tracks the multi-selected items independent of the list cursor.
type selection struct {
	items map[*Item]struct{}
	order []*Item
}

func newSelection() *selection {
	return &selection{items: make(map[*Item]struct{})}
}

func (s *selection) Has(i *Item) bool {
	_, ok := s.items[i]
	return ok
}

func (s *selection) Add(i *Item) {
	if s.Has(i) {
		return
	}
	s.items[i] = struct{}{}
	s.order = append(s.order, i)
}

func (s *selection) Remove(i *Item) {
	if !s.Has(i) {
		return
	}
	delete(s.items, i)
	for n, it := range s.order {
		if it == i {
			s.order = append(s.order[:n], s.order[n+1:]...)
			break
		}
	}
}

type Model struct {
	list      list.Model
	selection *selection
	config    config.UI

	choices  []*Item
	quitting bool
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		filtering := m.list.FilterState() == list.Filtering

		switch {
		case key.Matches(msg, listKeys.Quit):
			if filtering {
				break
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, listKeys.Select):
			if filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(*Item); ok {
				if m.selection.Has(item) {
					m.selection.Remove(item)
				} else {
					m.selection.Add(item)
				}
				m.list.CursorDown()
			}
			return m, nil

		case key.Matches(msg, listKeys.DeSelect):
			if filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(*Item); ok {
				m.selection.Remove(item)
				m.list.CursorUp()
			}
			return m, nil

		case key.Matches(msg, listKeys.Enter):
			if filtering {
				break
			}
			if len(m.selection.order) > 0 {
				m.choices = m.selection.order
			} else if item, ok := m.list.SelectedItem().(*Item); ok {
				m.choices = []*Item{item}
			}
			slog.Debug("selection confirmed", "count", len(m.choices))
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting || len(m.choices) > 0 {
		return ""
	}
	return m.list.View()
}

// RenderList shows the trashed entries in an interactive list and returns the
// ones picked for restoration. A quit returns an empty slice and no error.
func RenderList(entries []*trash.Entry, cfg config.UI) ([]*trash.Entry, error) {
	// Newest first; the file just trashed by accident is the common case.
	sorted := make([]*trash.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].GetDeletedAt().After(sorted[j].GetDeletedAt())
	})

	sel := newSelection()
	items := make([]list.Item, len(sorted))
	for i, e := range sorted {
		items[i] = NewItem(e)
	}

	d := newListDelegate(cfg, sel)
	l := list.New(items, d, defaultWidth, defaultHeight)
	switch cfg.Paginator {
	case "arabic":
		l.Paginator.Type = paginator.Arabic
	default:
		l.Paginator.Type = paginator.Dots
	}
	l.Title = ""
	l.DisableQuitKeybindings()
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{listKeys.Enter, listKeys.Select, listKeys.Quit}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{listKeys.Enter, listKeys.Select, listKeys.DeSelect, listKeys.Quit}
	}

	m := Model{
		list:      l,
		selection: sel,
		config:    cfg,
	}

	returnModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	final := returnModel.(Model)
	if final.quitting {
		if msg := cfg.ExitMessage; msg != "" {
			fmt.Println(msg)
		}
		return nil, nil
	}

	chosen := make([]*trash.Entry, len(final.choices))
	for i, item := range final.choices {
		chosen[i] = item.Entry()
	}
	return chosen, nil
}
