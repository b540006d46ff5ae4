package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var (
	listSortBy  string
	listReverse bool
	listQuery   string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List registered designers",
	Aliases: []string{"ls"},
	Long: `List all registered designers in a table format.

Examples:
  metadesigner list
  metadesigner list --sort images --reverse
  metadesigner list --search ali`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSortBy, "sort", "name", "Sort by field (name, images, hash)")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse sort order")
	listCmd.Flags().StringVarP(&listQuery, "search", "s", "", "Fuzzy filter by name or hash prefix")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var designers []domain.Designer
	if listQuery != "" {
		resp, err := listService.Search(ctx, services.SearchRequest{Query: listQuery})
		if err != nil {
			fmt.Println(ui.FormatError(domain.StatusMessage(err)))
			return err
		}
		designers = resp.Designers
	} else {
		resp, err := listService.Execute(ctx, services.ListRequest{
			SortBy:  listSortBy,
			Reverse: listReverse,
		})
		if err != nil {
			fmt.Println(ui.FormatError(domain.StatusMessage(err)))
			return err
		}
		designers = resp.Designers
	}

	if len(designers) == 0 {
		if listQuery != "" {
			fmt.Println(ui.FormatWarning("No designers match: " + listQuery))
		} else {
			fmt.Println(ui.FormatWarning("No designers registered"))
			fmt.Println(ui.FormatInfo("Register one with: metadesigner register \"Alice\" a.png"))
		}
		return nil
	}

	fmt.Println(ui.FormatTitle("Designers"))
	fmt.Println()
	fmt.Print(renderDesignerTable(designers))
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d designers", len(designers))))

	return nil
}

func renderDesignerTable(designers []domain.Designer) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Hash", Width: domain.HashLength, Align: "left"},
		{Header: "Name", Width: 30, Align: "left"},
		{Header: "Images", Width: 6, Align: "right"},
	})

	for _, d := range designers {
		table.AddRow([]string{
			d.Hash,
			truncate(d.Name, 40),
			fmt.Sprintf("%d", d.ImageCount),
		})
	}
	return table.Render()
}
