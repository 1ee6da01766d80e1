// Package render turns a status report into terminal text or an HTML page
package render

import (
	"fmt"
	"html/template"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slotwatch/internal/core/classify"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/services/status/domain"
)

var titler = cases.Title(language.English)

// Badge maps a status to its display glyph
func Badge(s classify.Status) string {
	switch s {
	case classify.StatusOK:
		return "✅"
	case classify.StatusNOK:
		return "❌"
	default:
		return "⏳"
	}
}

// slotHeading is the column label for a checkpoint
func slotHeading(s markerpack.Slot) string {
	switch s {
	case markerpack.SlotEarly:
		return "Early"
	case markerpack.SlotLatest1:
		return "Latest 1"
	case markerpack.SlotLatest2:
		return "Latest 2"
	default:
		return "Final"
	}
}

func regionLabel(row domain.Row) string {
	if row.RegionLabel != "" {
		return row.RegionLabel
	}
	return titler.String(row.Region)
}

func kindLabel(row domain.Row) string {
	if row.KindLabel != "" {
		return row.KindLabel
	}
	return titler.String(strings.ReplaceAll(row.Kind, "_", " "))
}

// Text renders the report as an aligned terminal table with notes underneath
func Text(rep domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Price submission status for %s (run %s, generated %s)\n\n",
		rep.Date, rep.RunID, rep.GeneratedAt.Format(time.RFC3339))

	tw := tabwriter.NewWriter(&sb, 2, 4, 2, ' ', 0)
	fmt.Fprint(tw, "Region\tKind")
	for _, slot := range markerpack.Slots() {
		fmt.Fprintf(tw, "\t%s", slotHeading(slot))
	}
	fmt.Fprintln(tw)

	for _, row := range rep.Rows {
		fmt.Fprintf(tw, "%s\t%s", regionLabel(row), kindLabel(row))
		for _, slot := range markerpack.Slots() {
			fmt.Fprintf(tw, "\t%s %s", Badge(row.Statuses[slot]), row.Statuses[slot])
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	for _, row := range rep.Rows {
		if len(row.Info) == 0 && len(row.Caution) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s / %s\n", regionLabel(row), kindLabel(row))
		for _, c := range row.Caution {
			fmt.Fprintf(&sb, "  ! %s\n", c)
		}
		for _, i := range row.Info {
			fmt.Fprintf(&sb, "  - %s\n", i)
		}
	}
	return sb.String()
}

// page feeds the HTML template. Cells are precomputed so the template stays
// free of map-order pitfalls
type page struct {
	Date        string
	RunID       string
	GeneratedAt string
	Headings    []string
	Rows        []pageRow
}

type pageRow struct {
	Region  string
	Kind    string
	Cells   []pageCell
	Info    []string
	Caution []string
	Links   []pageLink
}

type pageCell struct {
	Badge  string
	Status string
	Rule   string
}

type pageLink struct {
	Phase string
	Href  string
}

var pageTmpl = template.Must(template.New("status").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Price submission status {{.Date}}</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.35rem 0.7rem; text-align: left; }
td.status { text-align: center; }
ul.notes { margin: 0.2rem 0; padding-left: 1.2rem; }
li.caution { color: #a40000; }
li.info { color: #555; }
.meta { color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Price submission status for {{.Date}}</h1>
<p class="meta">run {{.RunID}} generated {{.GeneratedAt}}</p>
<table>
<tr><th>Region</th><th>Kind</th>{{range .Headings}}<th>{{.}}</th>{{end}}<th>Notes</th><th>Logs</th></tr>
{{range .Rows}}<tr>
<td>{{.Region}}</td>
<td>{{.Kind}}</td>
{{range .Cells}}<td class="status" title="{{.Rule}}">{{.Badge}} {{.Status}}</td>{{end}}
<td><ul class="notes">{{range .Caution}}<li class="caution">{{.}}</li>{{end}}{{range .Info}}<li class="info">{{.}}</li>{{end}}</ul></td>
<td>{{range .Links}}<a href="{{.Href}}">{{.Phase}}</a> {{end}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// HTML renders the report as a standalone page
func HTML(rep domain.Report) (string, error) {
	p := page{
		Date:        rep.Date.String(),
		RunID:       rep.RunID,
		GeneratedAt: rep.GeneratedAt.Format(time.RFC3339),
	}
	for _, slot := range markerpack.Slots() {
		p.Headings = append(p.Headings, slotHeading(slot))
	}
	for _, row := range rep.Rows {
		pr := pageRow{
			Region:  regionLabel(row),
			Kind:    kindLabel(row),
			Info:    row.Info,
			Caution: row.Caution,
		}
		for _, slot := range markerpack.Slots() {
			st := row.Statuses[slot]
			pr.Cells = append(pr.Cells, pageCell{
				Badge:  Badge(st),
				Status: string(st),
				Rule:   row.Rules[slot],
			})
		}
		for _, phase := range []markerpack.Phase{markerpack.PhaseEarly, markerpack.PhaseFinal, markerpack.PhaseSummary} {
			if href, ok := row.Links[phase]; ok {
				pr.Links = append(pr.Links, pageLink{Phase: string(phase), Href: href})
			}
		}
		p.Rows = append(p.Rows, pr)
	}

	var sb strings.Builder
	if err := pageTmpl.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}
