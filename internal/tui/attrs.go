package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

var selectionColumns = []table.Column{
	{Title: "#", Width: 5},
	{Title: "id", Width: 10},
	{Title: "latentx1", Width: 12},
	{Title: "latentx2", Width: 12},
	{Title: "design_var_1", Width: 14},
	{Title: "design_var_2", Width: 14},
	{Title: "feasible", Width: 8},
}

// refreshSelectionTable rebuilds the table rows from the current selection.
func (m *Model) refreshSelectionTable() {
	recs := m.sel.Records()
	rows := make([]table.Row, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.ID,
			strconv.FormatFloat(r.X, 'g', 6, 64),
			strconv.FormatFloat(r.Y, 'g', 6, 64),
			r.Attr1,
			r.Attr2,
			strconv.FormatBool(r.Feasible),
		})
	}
	// clear rows first so the column change never sees mismatched rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(selectionColumns)
	m.tbl.SetRows(rows)
}

func tableWidth() int {
	w := 0
	for _, c := range selectionColumns {
		w += c.Width + 2
	}
	return w
}
