// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shotgunsoftware/tk-framework-editorial/edl"
)

// renderList renders the edits of a list as a table, one row per edit.
func renderList(list *edl.EditList) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title := list.Title(); title != "" {
		tw.SetTitle(title)
	}
	tw.AppendHeader(table.Row{"ID", "Reel", "Ch", "Source In", "Source Out", "Record In", "Record Out", "Shot"})

	for _, e := range list.Edits() {
		shot := ""
		if v, ok := e.Meta("shot_name"); ok {
			shot = v.String()
		}
		tw.AppendRow(table.Row{
			e.ID(),
			e.Reel(),
			e.Channels(),
			e.SourceIn().String(),
			e.SourceOut().String(),
			e.RecordIn().String(),
			e.RecordOut().String(),
			shot,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	return tw.Render()
}
