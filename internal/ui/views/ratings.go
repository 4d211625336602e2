// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/ui/styles"
	"github.com/motourapp/admin-tui/internal/util"
)

// =============================================================================
// RATINGS VIEW
// =============================================================================

// ratingsLoadedMsg delivers a page of ratings.
type ratingsLoadedMsg struct {
	list api.RatingList
}

// ratingDeletedMsg reports a completed moderation delete.
type ratingDeletedMsg struct{}

// Ratings lists user reviews for moderation. The only mutation is
// removal; reviews are user content and never edited by admins.
type Ratings struct {
	client *api.Client

	tbl        table.Model
	list       api.RatingList
	page       int
	minStars   int // 0 = all
	confirming bool

	Width  int
	Height int
}

// NewRatings creates the ratings view.
func NewRatings(client *api.Client) *Ratings {
	cols := []table.Column{
		{Title: "Destination", Width: 24},
		{Title: "User", Width: 20},
		{Title: "Stars", Width: 6},
		{Title: "Comment", Width: 40},
	}
	return &Ratings{client: client, tbl: newTable(cols, 10), page: 1}
}

// Init triggers the first load.
func (v *Ratings) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the current page with the active star filter.
func (v *Ratings) Reload() tea.Cmd {
	page, minStars := v.page, v.minStars
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		list, err := v.client.ListRatings(ctx, api.RatingListParams{Page: page, Limit: 20, MinStars: minStars})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return ratingsLoadedMsg{list: *list}
	}
}

func (v *Ratings) selected() *api.Rating {
	i := v.tbl.Cursor()
	if i < 0 || i >= len(v.list.Ratings) {
		return nil
	}
	return &v.list.Ratings[i]
}

// Update handles messages.
func (v *Ratings) Update(msg tea.Msg) (*Ratings, tea.Cmd) {
	switch msg := msg.(type) {
	case ratingsLoadedMsg:
		v.list = msg.list
		rows := make([]table.Row, len(msg.list.Ratings))
		for i, r := range msg.list.Ratings {
			rows[i] = table.Row{
				r.Destination,
				r.UserName,
				strings.Repeat("*", max(r.Rating, 0)),
				util.TruncateWidth(r.Comment, 40),
			}
		}
		v.tbl.SetRows(rows)
		v.tbl.SetHeight(tableHeight(v.Height))
		return v, nil

	case ratingDeletedMsg:
		return v, tea.Batch(v.Reload(), func() tea.Msg { return StatusMsg{Text: "Rating removed"} })

	case tea.KeyMsg:
		if v.confirming {
			v.confirming = false
			if msg.String() == "y" || msg.String() == "enter" {
				if r := v.selected(); r != nil {
					id := r.ID
					return v, func() tea.Msg {
						ctx, cancel := apiCtx()
						defer cancel()
						if err := v.client.DeleteRating(ctx, id); err != nil {
							return ErrMsg{Err: err}
						}
						return ratingDeletedMsg{}
					}
				}
			}
			return v, nil
		}

		switch msg.String() {
		case "d", "delete":
			if v.selected() != nil {
				v.confirming = true
			}
			return v, nil
		case "r":
			return v, v.Reload()
		case "f":
			// cycle star filter: all -> 1 -> 2 ... 5 -> all
			v.minStars = (v.minStars + 1) % 6
			v.page = 1
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
	return v, nil
}

// View renders the ratings screen.
func (v *Ratings) View() string {
	var b strings.Builder
	title := styles.Title.Render("Ratings")
	filter := ""
	if v.minStars > 0 {
		filter = fmt.Sprintf(", %d+ stars", v.minStars)
	}
	b.WriteString(title + styles.Subtitle.Render(fmt.Sprintf("  %d total%s", v.list.Pagination.Total, filter)) + "\n")
	b.WriteString(v.tbl.View() + "\n")

	if v.confirming {
		if r := v.selected(); r != nil {
			b.WriteString(styles.Warning.Render(fmt.Sprintf("Remove %s's review of %s? y/n", r.UserName, r.Destination)))
		}
	} else {
		b.WriteString(styles.Help.Render("d: remove  f: star filter  h/l: page  r: refresh"))
	}
	return b.String()
}
