// Paddock - Formula 1 Season Standings and Points Progression
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paddock

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tomtom215/paddock/internal/models"
	"github.com/tomtom215/paddock/internal/standings"
)

// defaultProgressionDrivers is how many leaders -progression shows by default.
const defaultProgressionDrivers = 10

var tableStyles = map[string]table.Style{
	"rounded":  table.StyleRounded,
	"light":    table.StyleLight,
	"ascii":    table.StyleDefault,
	"markdown": table.StyleDefault,
}

type renderer struct {
	out      io.Writer
	style    table.Style
	markdown bool
}

func newRenderer(out io.Writer, style string) *renderer {
	s, ok := tableStyles[style]
	if !ok {
		s = table.StyleRounded
	}
	return &renderer{out: out, style: s, markdown: style == "markdown"}
}

func (r *renderer) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(r.style)
	t.SetTitle(title)
	return t
}

func (r *renderer) render(t table.Writer) {
	if r.markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	fmt.Fprintln(r.out)
}

// standings prints the drivers' and constructors' tables.
func (r *renderer) standings(season *models.SeasonTable) {
	drivers := r.newTable(fmt.Sprintf("%d Drivers' Championship", season.Season))
	drivers.AppendHeader(table.Row{"Pos", "Driver", "Points", "Wins", "Podiums", "Races"})
	for i, d := range standings.DriverStats(season) {
		drivers.AppendRow(table.Row{i + 1, d.Driver, formatPoints(d.TotalPoints), d.Wins, d.Podiums, d.Races})
	}
	drivers.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	if len(season.FailedRounds()) > 0 {
		drivers.SetCaption("Rounds missing after retries: %v", season.FailedRounds())
	}
	r.render(drivers)

	constructors := r.newTable(fmt.Sprintf("%d Constructors' Championship", season.Season))
	constructors.AppendHeader(table.Row{"Pos", "Constructor", "Points", "Wins", "Entries"})
	for i, c := range standings.ConstructorStats(season) {
		constructors.AppendRow(table.Row{i + 1, c.Constructor, formatPoints(c.TotalPoints), c.Wins, c.Races})
	}
	constructors.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	r.render(constructors)
}

// progression prints cumulative points per round for drivers, defaulting to
// the championship leaders.
func (r *renderer) progression(season *models.SeasonTable, drivers []string) {
	if len(drivers) == 0 {
		for i, d := range standings.DriverStats(season) {
			if i == defaultProgressionDrivers {
				break
			}
			drivers = append(drivers, d.Driver)
		}
	}

	series := standings.Progression(season, drivers, 0)
	if len(series) == 0 {
		fmt.Fprintln(r.out, "No results for the selected drivers.")
		return
	}

	t := r.newTable(fmt.Sprintf("%d Points Progression", season.Season))
	header := table.Row{"Driver"}
	for _, round := range series[0].Rounds {
		header = append(header, "R"+strconv.Itoa(round))
	}
	t.AppendHeader(header)

	for _, s := range series {
		row := table.Row{s.Driver}
		for _, total := range s.Cumulative {
			row = append(row, formatPoints(total))
		}
		t.AppendRow(row)
	}
	r.render(t)
}

// formatPoints drops the decimal for whole numbers: 25 and 0.5 stay readable.
func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
