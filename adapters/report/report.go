// Package report renders dataset profiles as Markdown and HTML
// documents for download and in-browser viewing.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Builder renders profile reports
type Builder struct{}

// NewBuilder creates a new report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Markdown renders a profile as a Markdown document: dataset summary,
// one section per column, and the suggestion list. Numeric statistics
// use lossless decimal rendering; percentages are shown to one decimal.
func (b *Builder) Markdown(displayName string, prof *profile.Profile, suggestions []clean.Suggestion) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Data Profile: %s\n\n", displayName)
	fmt.Fprintf(&sb, "- Rows: %d\n", prof.RowCount)
	fmt.Fprintf(&sb, "- Columns: %d\n", prof.ColumnCount)
	fmt.Fprintf(&sb, "- Missing cells: %d (%.1f%%)\n", prof.NullValues, prof.NullPercentage)
	fmt.Fprintf(&sb, "- Duplicate rows: %d (%.1f%%)\n\n", prof.DuplicateRows, prof.DuplicatePercentage)

	sb.WriteString("## Columns\n\n")
	sb.WriteString("| Column | Type | Unique | Missing | Missing % |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, col := range prof.Columns {
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %.1f%% |\n",
			col.Name, col.Type, col.UniqueCount, col.NullCount, col.NullPercentage)
	}
	sb.WriteString("\n")

	for _, col := range prof.Columns {
		writeColumnSection(&sb, col)
	}

	writeSuggestions(&sb, suggestions)

	return sb.String()
}

func writeColumnSection(sb *strings.Builder, col profile.Column) {
	if col.Numeric == nil && !col.Categorical.HasMode() {
		return
	}

	fmt.Fprintf(sb, "### %s (%s)\n\n", col.Name, col.Type)

	if col.Numeric != nil {
		sb.WriteString("| Min | Max | Mean | Median |\n")
		sb.WriteString("|---|---|---|---|\n")
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n\n",
			formatFloat(col.Numeric.Min), formatFloat(col.Numeric.Max),
			formatFloat(col.Numeric.Mean), formatFloat(col.Numeric.Median))
		return
	}

	fmt.Fprintf(sb, "Most common value: **%s** (%d occurrences)\n\n",
		col.Categorical.Mode, col.Categorical.ModeCount)
	sb.WriteString("| Value | Count |\n")
	sb.WriteString("|---|---|\n")
	for _, cat := range col.Categorical.Categories {
		fmt.Fprintf(sb, "| %s | %d |\n", cat.Value, cat.Count)
	}
	sb.WriteString("\n")
}

func writeSuggestions(sb *strings.Builder, suggestions []clean.Suggestion) {
	sb.WriteString("## Suggestions\n\n")
	if len(suggestions) == 0 {
		sb.WriteString("No issues detected.\n")
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(sb, "%d. **%s** (%s): %s. Recommendation: %s\n", i+1, s.Issue, s.Column, s.Description, s.Recommendation)
	}
}

// ToHTML converts a Markdown report to HTML
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
