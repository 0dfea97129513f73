package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewbench/reviewbench/internal/catalog"
	"github.com/reviewbench/reviewbench/internal/models"
	"github.com/reviewbench/reviewbench/internal/output"
)

var (
	catalogCategory string
	catalogJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the known issues planted in the benchmark fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		return catalogRun()
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Show one category: security, performance, quality")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Dump the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func catalogRun() error {
	cat := catalog.Default()

	cats := models.Categories()
	if catalogCategory != "" {
		c := models.Category(catalogCategory)
		if !c.Valid() {
			return fmt.Errorf("unknown category %q (use: security, performance, quality)", catalogCategory)
		}
		cats = []models.Category{c}
	}

	if catalogJSON {
		doc := make(map[models.Category][]models.KnownIssue, len(cats))
		for _, c := range cats {
			doc[c] = cat.Issues(c)
		}
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	table := ui.Table([]string{"Category", "Line", "Type", "Severity", "Description"})
	total := 0
	for _, c := range cats {
		for _, issue := range cat.Issues(c) {
			table.Append([]string{
				output.Cyan(string(c)),
				fmt.Sprintf("%d", issue.Line),
				issue.Type,
				output.SeverityColor(string(issue.Severity)),
				issue.Description,
			})
			total++
		}
	}
	table.Render()

	if catalogCategory == "" {
		bd := cat.Breakdown()
		fmt.Fprintf(ui.Out, "\n  %d known issues (%d security, %d performance, %d quality)\n\n",
			cat.Total(),
			bd[models.CategorySecurity],
			bd[models.CategoryPerformance],
			bd[models.CategoryQuality])
	} else {
		fmt.Fprintf(ui.Out, "\n  %d known issues\n\n", total)
	}
	return nil
}
