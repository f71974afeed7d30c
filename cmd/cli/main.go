package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Priyuuuuu/smartdata-standardization/adapters/csvio"
	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	"github.com/Priyuuuuu/smartdata-standardization/domain/profile"
	"github.com/Priyuuuuu/smartdata-standardization/internal/answer"
	"github.com/Priyuuuuu/smartdata-standardization/internal/cleaning"
	"github.com/Priyuuuuu/smartdata-standardization/internal/profiling"
	"github.com/Priyuuuuu/smartdata-standardization/internal/service"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smartdata",
		Short: "SmartData CLI for profiling and cleaning tabular datasets",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newSuggestCmd(),
		newCleanCmd(),
		newAskCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProfileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile [file]",
		Short: "Profile a CSV or XLSX file",
		Long: `Profile a dataset: per-column types, null counts, unique counts and
summary statistics, plus dataset-level missing and duplicate rates.

Example: smartdata profile sales.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the profile as indented JSON")

	return cmd
}

func newSuggestCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest [file]",
		Short: "List cleaning suggestions for a CSV or XLSX file",
		Long: `Profile a dataset and list the cleaning actions it would benefit from:
missing value fills, duplicate row removal and outlier capping.

Example: smartdata suggest sales.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit suggestions as indented JSON")

	return cmd
}

func newCleanCmd() *cobra.Command {
	var output string
	var issues string

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Apply cleaning suggestions and write the cleaned CSV",
		Long: `Profile a dataset, apply its cleaning suggestions and write the result
as CSV. By default every suggestion is applied; --issues restricts the
run to specific issue types.

Example: smartdata clean sales.csv --output sales_cleaned.csv --issues missing,duplicate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(args[0], output, issues)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output CSV path (default <file>_cleaned.csv)")
	cmd.Flags().StringVar(&issues, "issues", "", "Comma-separated issue types to apply: missing|duplicate|outlier")

	return cmd
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [file] [question...]",
		Short: "Ask a question about a CSV or XLSX file",
		Long: `Answer a natural-language question about a dataset: row and column
counts, averages, extremes, missing and unique counts per column.

Example: smartdata ask sales.csv what is the average price`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(args[0], strings.Join(args[1:], " "))
		},
	}

	return cmd
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a CSV or XLSX file as normalized CSV",
		Long: `Parse a dataset and re-emit it as CSV with coerced cell values.
Converts XLSX workbooks to CSV and normalizes existing CSV files.

Example: smartdata export inventory.xlsx --output inventory.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output CSV path (default <file>.csv)")

	return cmd
}

func runProfile(path string, asJSON bool) error {
	ds, err := service.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	prof := profiling.NewProfiler().ProfileDataset(*ds)

	if asJSON {
		return printJSON(prof)
	}

	fmt.Printf("=== PROFILE: %s ===\n", ds.DisplayName)
	fmt.Printf("Rows: %d\n", prof.RowCount)
	fmt.Printf("Columns: %d\n", prof.ColumnCount)
	fmt.Printf("Missing cells: %d (%.1f%%)\n", prof.NullValues, prof.NullPercentage)
	fmt.Printf("Duplicate rows: %d (%.1f%%)\n\n", prof.DuplicateRows, prof.DuplicatePercentage)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Column", "Type", "Unique", "Missing", "Missing %", "Min", "Max", "Mean", "Median", "Mode"})
	for _, col := range prof.Columns {
		table.Append(profileRow(col))
	}
	table.Render()

	return nil
}

// profileRow flattens one column profile into table cells, leaving the
// statistics blank where the column type does not carry them
func profileRow(col profile.Column) []string {
	row := []string{
		col.Name,
		string(col.Type),
		strconv.Itoa(col.UniqueCount),
		strconv.Itoa(col.NullCount),
		fmt.Sprintf("%.1f%%", col.NullPercentage),
		"", "", "", "", "",
	}
	if col.Numeric != nil {
		row[5] = formatStat(col.Numeric.Min)
		row[6] = formatStat(col.Numeric.Max)
		row[7] = formatStat(col.Numeric.Mean)
		row[8] = formatStat(col.Numeric.Median)
	}
	if col.Categorical.HasMode() {
		row[9] = fmt.Sprintf("%s (%d)", col.Categorical.Mode, col.Categorical.ModeCount)
	}
	return row
}

func runSuggest(path string, asJSON bool) error {
	ds, err := service.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	prof := profiling.NewProfiler().ProfileDataset(*ds)
	suggestions := cleaning.NewGenerator(cleaning.DefaultSuggestConfig()).Suggest(prof)

	if asJSON {
		return printJSON(suggestions)
	}

	fmt.Printf("=== SUGGESTIONS: %s ===\n", ds.DisplayName)
	if len(suggestions) == 0 {
		fmt.Println("No issues detected.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Column", "Issue", "Description", "Recommendation"})
	for i, s := range suggestions {
		table.Append([]string{
			strconv.Itoa(i + 1),
			s.Column,
			string(s.Issue),
			s.Description,
			s.Recommendation,
		})
	}
	table.Render()

	return nil
}

func runClean(path, output, issues string) error {
	selected, err := parseIssueFilter(issues)
	if err != nil {
		return err
	}

	ds, err := service.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	prof := profiling.NewProfiler().ProfileDataset(*ds)
	suggestions := cleaning.NewGenerator(cleaning.DefaultSuggestConfig()).Suggest(prof)
	applied := filterSuggestions(suggestions, selected)

	cleaned := cleaning.NewTransformer(cleaning.DefaultCleanConfig()).Apply(*ds, prof, applied)

	if output == "" {
		output = derivedPath(path, "_cleaned")
	}
	if err := writeCSV(output, &cleaned); err != nil {
		return err
	}

	fmt.Printf("=== CLEAN: %s ===\n", ds.DisplayName)
	fmt.Printf("Suggestions applied: %d of %d\n", len(applied), len(suggestions))
	fmt.Printf("Rows before: %d\n", ds.RowCount())
	fmt.Printf("Rows after: %d\n", cleaned.RowCount())
	fmt.Printf("Wrote %s\n", output)

	return nil
}

func runAsk(path, question string) error {
	ds, err := service.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	prof := profiling.NewProfiler().ProfileDataset(*ds)
	fmt.Println(answer.NewEngine().Answer(question, *ds, prof))

	return nil
}

func runExport(path, output string) error {
	ds, err := service.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	if output == "" {
		output = derivedPath(path, "")
		if filepath.Clean(output) == filepath.Clean(path) {
			output = derivedPath(path, "_export")
		}
	}
	if err := writeCSV(output, ds); err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", ds.RowCount(), output)

	return nil
}

// parseIssueFilter converts a comma-separated flag value into issue
// types. An empty value selects every issue.
func parseIssueFilter(issues string) (map[clean.Issue]bool, error) {
	if strings.TrimSpace(issues) == "" {
		return nil, nil
	}
	selected := make(map[clean.Issue]bool)
	for _, part := range strings.Split(issues, ",") {
		issue := clean.Issue(strings.TrimSpace(strings.ToLower(part)))
		switch issue {
		case clean.IssueMissing, clean.IssueDuplicate, clean.IssueOutlier, clean.IssueInconsistent:
			selected[issue] = true
		default:
			return nil, fmt.Errorf("invalid issue type: %s (expected missing|duplicate|outlier)", part)
		}
	}
	return selected, nil
}

func filterSuggestions(suggestions []clean.Suggestion, selected map[clean.Issue]bool) []clean.Suggestion {
	if selected == nil {
		return suggestions
	}
	out := make([]clean.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if selected[s.Issue] {
			out = append(out, s)
		}
	}
	return out
}

func writeCSV(path string, ds *dataset.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := csvio.Export(file, ds); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// derivedPath builds an output path next to the input: same base name
// plus a suffix, always with a .csv extension
func derivedPath(path, suffix string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix + ".csv"
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
