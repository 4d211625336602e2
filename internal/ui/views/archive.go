// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/ui/components"
	"github.com/motourapp/admin-tui/internal/ui/styles"
	"github.com/motourapp/admin-tui/internal/util"
)

// =============================================================================
// ARCHIVE VIEW
// =============================================================================

// archiveLoadedMsg delivers the document list.
type archiveLoadedMsg struct {
	list api.ArchiveList
}

// documentLoadedMsg delivers one document with content for preview.
type documentLoadedMsg struct {
	doc api.ArchiveDocument
}

// Archive browses stored documents (magazines, catalogs, training
// material) with an inline rendered preview.
type Archive struct {
	client *api.Client

	tbl       table.Model
	list      api.ArchiveList
	preview   viewport.Model
	showing   bool
	docName   string
	typeIdx   int // index into archiveTypes
	search    textinput.Model
	searching bool
	query     string

	Width  int
	Height int
}

// archiveTypes are the document type filters, cycled with "f".
var archiveTypes = []string{"", "magazine", "document", "catalog", "training"}

// NewArchive creates the archive view.
func NewArchive(client *api.Client) *Archive {
	cols := []table.Column{
		{Title: "Name", Width: 32},
		{Title: "Type", Width: 10},
		{Title: "Size", Width: 10},
		{Title: "Uploaded", Width: 12},
		{Title: "Downloads", Width: 10},
	}
	search := textinput.New()
	search.Placeholder = "document name"
	search.CharLimit = 120
	return &Archive{
		client:  client,
		tbl:     newTable(cols, 10),
		preview: viewport.New(80, 20),
		search:  search,
	}
}

// Typing reports whether the view currently owns text input, so global
// digit shortcuts must not steal keystrokes.
func (v *Archive) Typing() bool {
	return v.searching
}

// Init triggers the first load.
func (v *Archive) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the document list with the active type filter and search.
func (v *Archive) Reload() tea.Cmd {
	params := api.ArchiveListParams{Type: archiveTypes[v.typeIdx], Search: v.query}
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		list, err := v.client.ListArchive(ctx, params)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return archiveLoadedMsg{list: *list}
	}
}

func (v *Archive) selected() *api.ArchiveDocument {
	i := v.tbl.Cursor()
	if i < 0 || i >= len(v.list.Documents) {
		return nil
	}
	return &v.list.Documents[i]
}

// Update handles messages.
func (v *Archive) Update(msg tea.Msg) (*Archive, tea.Cmd) {
	switch msg := msg.(type) {
	case archiveLoadedMsg:
		v.list = msg.list
		rows := make([]table.Row, len(msg.list.Documents))
		for i, d := range msg.list.Documents {
			rows[i] = table.Row{
				d.Name, d.Type,
				util.FormatBytes(d.SizeBytes),
				d.UploadDate.Format("2006-01-02"),
				fmt.Sprintf("%d", d.Downloads),
			}
		}
		v.tbl.SetRows(rows)
		v.tbl.SetHeight(tableHeight(v.Height))
		return v, nil

	case documentLoadedMsg:
		v.showing = true
		v.docName = msg.doc.Name
		v.preview.Width = v.Width - 4
		v.preview.Height = v.Height - 5
		v.preview.SetContent(components.RenderDocument(msg.doc.Name, msg.doc.Content))
		v.preview.GotoTop()
		return v, nil

	case tea.KeyMsg:
		if v.showing {
			if msg.String() == "esc" || msg.String() == "q" {
				v.showing = false
				return v, nil
			}
			var cmd tea.Cmd
			v.preview, cmd = v.preview.Update(msg)
			return v, cmd
		}
		if v.searching {
			switch msg.String() {
			case "enter":
				v.searching = false
				v.query = strings.TrimSpace(v.search.Value())
				v.search.Blur()
				return v, v.Reload()
			case "esc":
				v.searching = false
				v.search.Blur()
				return v, nil
			}
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case "/":
			v.searching = true
			v.search.SetValue(v.query)
			v.search.Focus()
			return v, textinput.Blink
		case "enter":
			if d := v.selected(); d != nil {
				id := d.ID
				return v, func() tea.Msg {
					ctx, cancel := apiCtx()
					defer cancel()
					doc, err := v.client.GetArchiveDocument(ctx, id)
					if err != nil {
						return ErrMsg{Err: err}
					}
					return documentLoadedMsg{doc: *doc}
				}
			}
			return v, nil
		case "f":
			v.typeIdx = (v.typeIdx + 1) % len(archiveTypes)
			return v, v.Reload()
		case "r":
			return v, v.Reload()
		}

		var cmd tea.Cmd
		v.tbl, cmd = v.tbl.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the archive screen.
func (v *Archive) View() string {
	if v.showing {
		var b strings.Builder
		b.WriteString(styles.Title.Render(v.docName) + "\n")
		b.WriteString(v.preview.View() + "\n")
		b.WriteString(styles.Help.Render("up/down: scroll  esc: back to list"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Archive"))
	note := fmt.Sprintf("  %d documents", len(v.list.Documents))
	if t := archiveTypes[v.typeIdx]; t != "" {
		note += ", " + t + " only"
	}
	if v.query != "" {
		note += fmt.Sprintf(", matching %q", v.query)
	}
	b.WriteString(styles.Subtitle.Render(note) + "\n")
	if v.searching {
		b.WriteString(styles.Label.Render("Search: ") + v.search.View() + "\n")
	}
	b.WriteString(v.tbl.View() + "\n")
	b.WriteString(styles.Help.Render("enter: preview  /: search  f: type filter  r: refresh"))
	return b.String()
}
