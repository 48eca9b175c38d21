package report

import (
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/mirekslouf/mcreep/pkg/results"
)

// TableView is a rendered snapshot of a results table.
type TableView struct {
	Caption string
	Columns []string
	Rows    []RowView
}

// RowView is one dataset's row.
type RowView struct {
	ID     string
	Values []string
}

// NewTableView snapshots a results table with fixed decimal formatting.
func NewTableView(caption string, t *results.Table, decimals int) TableView {
	v := TableView{Caption: caption, Columns: t.Columns()}
	for _, id := range t.IDs() {
		row, _ := t.Row(id)
		values := make([]string, len(row))
		for i, x := range row {
			if math.IsNaN(x) {
				values[i] = "NaN"
			} else {
				values[i] = strconv.FormatFloat(x, 'f', decimals, 64)
			}
		}
		v.Rows = append(v.Rows, RowView{ID: id, Values: values})
	}
	return v
}

// HTMLData feeds the HTML report template.
type HTMLData struct {
	Title       string
	Description []string
	Results     TableView
	Physical    *TableView // EVP families only
}

// WriteHTML writes a standalone HTML report with the model description and
// the result tables.
func WriteHTML(w io.Writer, d HTMLData) error {
	return tpl.Execute(w, d)
}

var tpl = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;font-size:14px;margin-bottom:18px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
p.small{color:#555}
</style>

<h1>{{.Title}}</h1>
{{range .Description}}<p class="small">{{.}}</p>
{{end}}

<h2>Fitting results and statistics</h2>
<table>
<thead><tr><th>dataset</th>{{range .Results.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Results.Rows}}<tr><td>{{.ID}}</td>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>

{{with .Physical}}
<h2>{{.Caption}}</h2>
<table>
<thead><tr><th>dataset</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td>{{range .Values}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}
</html>`))
