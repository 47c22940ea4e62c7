package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/indexing"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	itemStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 0, 2)

	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Width(12)

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("32"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func renderResult(query string, res *result.Result) string {
	var b strings.Builder

	title := "All active scholarships"
	if strings.TrimSpace(query) != "" {
		title = fmt.Sprintf("Results for %q", query)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if rs := res.Resolution(); rs != nil {
		b.WriteString(renderResolution(rs))
	}

	if res.Len() == 0 {
		b.WriteString(metaStyle.Render("No scholarships matched."))
		b.WriteString("\n")
		return b.String()
	}

	for i := range res.Items() {
		b.WriteString(renderScholarship(&res.Items()[i]))
		b.WriteString("\n")
	}
	b.WriteString(successStyle.Render(fmt.Sprintf("%d scholarships", res.Len())))
	b.WriteString("\n")
	return b.String()
}

func renderScholarship(sc *scholarship.Scholarship) string {
	var b strings.Builder
	b.WriteString(nameStyle.Render(fmt.Sprintf("#%d %s", sc.ID, sc.Name)))
	b.WriteString("\n")

	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	line("amount", strconv.FormatInt(sc.Amount, 10))
	line("category", sc.Category)
	line("type", sc.Type)
	line("location", sc.Location)
	line("gender", sc.Gender)
	line("religion", sc.Religious)
	line("age", fmt.Sprintf("%d-%d", sc.MinAge, sc.MaxAge))
	if sc.Income != nil {
		line("income", "up to "+strconv.FormatInt(*sc.Income, 10))
	}
	if sc.Deadline != nil {
		line("deadline", sc.Deadline.Format("2006-01-02"))
	}
	return itemStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderResolution(rs *resolution.Resolution) string {
	var b strings.Builder

	style := successStyle
	if rs.IsFallback() {
		style = warnStyle
	}
	b.WriteString(style.Render(fmt.Sprintf("interpreted by %s (%s)", rs.Source, rs.Reason)))
	b.WriteString("\n")

	rows := filterRows(rs.Filters)
	if len(rows) == 0 {
		b.WriteString(metaStyle.Render("no filters"))
		b.WriteString("\n\n")
		return b.String()
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]) + r[1] + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// filterRows lists the constrained dimensions as label/value pairs.
func filterRows(f filters.Filters) [][2]string {
	var rows [][2]string
	add := func(label string, values []string) {
		if len(values) > 0 {
			rows = append(rows, [2]string{label, strings.Join(values, ", ")})
		}
	}
	add("category", toStrings(f.Category))
	add("location", f.Location)
	add("type", f.Type)
	add("institution", f.Institution)
	add("gender", toStrings(f.Gender))
	add("religion", toStrings(f.Religious))
	for _, r := range []struct {
		label string
		rng   filters.Range
	}{{"amount", f.Amount}, {"income", f.Income}, {"age", f.Age}} {
		if r.rng.IsSet() {
			rows = append(rows, [2]string{r.label, formatRange(r.rng)})
		}
	}
	if f.Disability.Known() {
		rows = append(rows, [2]string{"disability", strconv.FormatBool(f.Disability.Bool())})
	}
	if f.ExService.Known() {
		rows = append(rows, [2]string{"ex-service", strconv.FormatBool(f.ExService.Bool())})
	}
	add("keywords", f.Keywords)
	return rows
}

func formatRange(r filters.Range) string {
	bound := func(p *float64) string {
		if p == nil {
			return "*"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return bound(r.Min) + " .. " + bound(r.Max)
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func renderReport(r indexing.Report) string {
	style := successStyle
	if r.Failed > 0 {
		style = warnStyle
	}
	line := fmt.Sprintf("indexed %d of %d scholarships (%d failed)", r.Indexed, r.Total, r.Failed)
	if r.Pruned > 0 {
		line += fmt.Sprintf(", pruned %d inactive", r.Pruned)
	}
	return style.Render(line)
}
