// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// =============================================================================
// DESTINATIONS VIEW
// =============================================================================

// destinationsLoadedMsg delivers a page of destinations.
type destinationsLoadedMsg struct {
	list api.DestinationList
}

// destinationMutatedMsg reports a completed mutation; the view reloads.
type destinationMutatedMsg struct {
	note string
}

type destMode int

const (
	destBrowse destMode = iota
	destForm
	destConfirmDelete
)

// fields shown in the create/edit form, in focus order
const (
	destFieldName = iota
	destFieldCategory
	destFieldAddress
	destFieldTags
	destFieldDescription
	destFieldCount
)

// Destinations manages travel destinations: list, filter by category,
// create, edit and delete.
type Destinations struct {
	client *api.Client

	tbl  table.Model
	list api.DestinationList
	mode destMode
	page int

	// form state
	inputs  [destFieldCount]textinput.Model
	focus   int
	editing string // destination ID being edited, "" when creating
	catIdx  int    // index into api.Categories for the category field

	Width  int
	Height int
}

// NewDestinations creates the destinations view.
func NewDestinations(client *api.Client) *Destinations {
	cols := []table.Column{
		{Title: "Name", Width: 26},
		{Title: "Category", Width: 14},
		{Title: "Address", Width: 28},
		{Title: "Rating", Width: 7},
	}

	var inputs [destFieldCount]textinput.Model
	placeholders := [destFieldCount]string{
		"name", "category (left/right to change)", "address",
		"tags, comma separated", "description",
	}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].CharLimit = 300
	}

	return &Destinations{
		client: client,
		tbl:    newTable(cols, 10),
		inputs: inputs,
		page:   1,
	}
}

// Init triggers the first load.
func (v *Destinations) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the current page.
func (v *Destinations) Reload() tea.Cmd {
	page := v.page
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		list, err := v.client.ListDestinations(ctx, api.DestinationListParams{Page: page, Limit: 20})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return destinationsLoadedMsg{list: *list}
	}
}

// Typing reports whether the view currently owns text input.
func (v *Destinations) Typing() bool {
	return v.mode == destForm
}

func (v *Destinations) selected() *api.Destination {
	i := v.tbl.Cursor()
	if i < 0 || i >= len(v.list.Destinations) {
		return nil
	}
	return &v.list.Destinations[i]
}

// Update handles messages.
func (v *Destinations) Update(msg tea.Msg) (*Destinations, tea.Cmd) {
	switch msg := msg.(type) {
	case destinationsLoadedMsg:
		v.list = msg.list
		rows := make([]table.Row, len(msg.list.Destinations))
		for i, d := range msg.list.Destinations {
			rows[i] = table.Row{d.Name, d.Category, d.Address, fmt.Sprintf("%.1f", d.AverageRating)}
		}
		v.tbl.SetRows(rows)
		v.tbl.SetHeight(tableHeight(v.Height))
		return v, nil

	case destinationMutatedMsg:
		return v, tea.Batch(v.Reload(), func() tea.Msg { return StatusMsg{Text: msg.note} })

	case tea.KeyMsg:
		switch v.mode {
		case destForm:
			return v.updateForm(msg)
		case destConfirmDelete:
			return v.updateConfirm(msg)
		}
		return v.updateBrowse(msg)
	}
	return v, nil
}

func (v *Destinations) updateBrowse(msg tea.KeyMsg) (*Destinations, tea.Cmd) {
	switch msg.String() {
	case "n":
		v.openForm(nil)
		return v, textinput.Blink
	case "e", "enter":
		if d := v.selected(); d != nil {
			v.openForm(d)
			return v, textinput.Blink
		}
		return v, nil
	case "d", "delete":
		if v.selected() != nil {
			v.mode = destConfirmDelete
		}
		return v, nil
	case "r":
		return v, v.Reload()
	case "left", "h":
		if v.page > 1 {
			v.page--
			return v, v.Reload()
		}
		return v, nil
	case "right", "l":
		if v.page < v.list.Pagination.Pages {
			v.page++
			return v, v.Reload()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.tbl, cmd = v.tbl.Update(msg)
	return v, cmd
}

// openForm prepares the form for create (d == nil) or edit.
func (v *Destinations) openForm(d *api.Destination) {
	v.mode = destForm
	v.editing = ""
	v.catIdx = 0
	for i := range v.inputs {
		v.inputs[i].Reset()
		v.inputs[i].Blur()
	}
	if d != nil {
		v.editing = d.ID
		v.inputs[destFieldName].SetValue(d.Name)
		v.inputs[destFieldAddress].SetValue(d.Address)
		v.inputs[destFieldTags].SetValue(strings.Join(d.Tags, ", "))
		v.inputs[destFieldDescription].SetValue(d.Description)
		for i, c := range api.Categories {
			if c == d.Category {
				v.catIdx = i
				break
			}
		}
	}
	v.focus = destFieldName
	v.inputs[destFieldName].Focus()
}

func (v *Destinations) updateForm(msg tea.KeyMsg) (*Destinations, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = destBrowse
		return v, nil

	case "tab", "down":
		v.moveFocus(1)
		return v, nil

	case "shift+tab", "up":
		v.moveFocus(-1)
		return v, nil

	case "left", "right":
		if v.focus == destFieldCategory {
			delta := 1
			if msg.String() == "left" {
				delta = len(api.Categories) - 1
			}
			v.catIdx = (v.catIdx + delta) % len(api.Categories)
			return v, nil
		}

	case "enter":
		if v.focus == destFieldDescription {
			return v.submitForm()
		}
		v.moveFocus(1)
		return v, nil
	}

	if v.focus == destFieldCategory {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *Destinations) moveFocus(dir int) {
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + dir + destFieldCount) % destFieldCount
	if v.focus != destFieldCategory {
		v.inputs[v.focus].Focus()
	}
}

func (v *Destinations) submitForm() (*Destinations, tea.Cmd) {
	name := strings.TrimSpace(v.inputs[destFieldName].Value())
	if name == "" {
		return v, errCmd(fmt.Errorf("destination name is required"))
	}

	in := api.DestinationInput{
		Name:        name,
		Category:    api.Categories[v.catIdx],
		Address:     strings.TrimSpace(v.inputs[destFieldAddress].Value()),
		Description: strings.TrimSpace(v.inputs[destFieldDescription].Value()),
	}
	for _, tag := range strings.Split(v.inputs[destFieldTags].Value(), ",") {
		if t := strings.TrimSpace(tag); t != "" {
			in.Tags = append(in.Tags, t)
		}
	}

	editing := v.editing
	v.mode = destBrowse
	return v, func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if editing != "" {
			if _, err := v.client.UpdateDestination(ctx, editing, in); err != nil {
				return ErrMsg{Err: err}
			}
			return destinationMutatedMsg{note: "Updated " + in.Name}
		}
		if _, err := v.client.CreateDestination(ctx, in); err != nil {
			return ErrMsg{Err: err}
		}
		return destinationMutatedMsg{note: "Created " + in.Name}
	}
}

func (v *Destinations) updateConfirm(msg tea.KeyMsg) (*Destinations, tea.Cmd) {
	d := v.selected()
	v.mode = destBrowse
	if d == nil {
		return v, nil
	}
	if msg.String() == "y" || msg.String() == "enter" {
		id, name := d.ID, d.Name
		return v, func() tea.Msg {
			ctx, cancel := apiCtx()
			defer cancel()
			if err := v.client.DeleteDestination(ctx, id); err != nil {
				return ErrMsg{Err: err}
			}
			return destinationMutatedMsg{note: "Deleted " + name}
		}
	}
	return v, nil
}

// View renders the destinations screen.
func (v *Destinations) View() string {
	if v.mode == destForm {
		return v.viewForm()
	}

	var b strings.Builder
	title := styles.Title.Render("Destinations")
	count := styles.Subtitle.Render(fmt.Sprintf("  %d total", v.list.Pagination.Total))
	b.WriteString(title + count + "\n")
	b.WriteString(v.tbl.View() + "\n")

	if v.mode == destConfirmDelete {
		if d := v.selected(); d != nil {
			b.WriteString(styles.Warning.Render(fmt.Sprintf("Delete %q and all its ratings? y/n", d.Name)))
		}
	} else {
		b.WriteString(styles.Help.Render("n: new  e: edit  d: delete  h/l: page  r: refresh"))
	}
	return b.String()
}

func (v *Destinations) viewForm() string {
	var b strings.Builder
	heading := "New destination"
	if v.editing != "" {
		heading = "Edit destination"
	}
	b.WriteString(styles.Title.Render(heading) + "\n\n")

	labels := [destFieldCount]string{"Name", "Category", "Address", "Tags", "Description"}
	for i := 0; i < destFieldCount; i++ {
		b.WriteString(styles.Label.Render(labels[i]) + "\n")
		if i == destFieldCategory {
			cat := api.Categories[v.catIdx]
			if v.focus == destFieldCategory {
				cat = styles.Selected.Render(" " + cat + " ")
			}
			b.WriteString(cat + "\n\n")
			continue
		}
		b.WriteString(v.inputs[i].View() + "\n\n")
	}

	b.WriteString(styles.Help.Render("tab: next field  enter on description: save  esc: cancel"))
	return styles.Panel.Render(b.String())
}
