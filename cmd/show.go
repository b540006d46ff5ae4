package cmd

import (
	"errors"
	"fmt"
	"os"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [name|hash]",
	Short: "Show the images of one designer",
	Long: `Show one designer's dataset folder and image files.

Without an argument, pick the designer interactively.
A partial name or hash prefix is fuzzy-matched.

Examples:
  metadesigner show
  metadesigner show Alice
  metadesigner show 3f2a`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query := ""
	if len(args) == 1 {
		query = args[0]

		// exact name or hash first
		dataset, err := listService.Get(ctx, query)
		if err == nil {
			printDataset(dataset)
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Println(ui.FormatError(domain.StatusMessage(err)))
			return err
		}
	}

	resp, err := listService.Search(ctx, services.SearchRequest{Query: query})
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}

	if resp.Total == 0 {
		if query != "" {
			fmt.Println(ui.FormatWarning("No designers match: " + query))
		} else {
			fmt.Println(ui.FormatWarning("No designers registered"))
		}
		return nil
	}

	selected := resp.Designers[0]
	if resp.Total > 1 {
		idx, err := pickDesigner(resp.Designers)
		if err != nil {
			// User cancelled (Ctrl+C or ESC)
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		selected = resp.Designers[idx]
	}

	dataset, err := listService.Get(ctx, selected.Hash)
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}
	printDataset(dataset)
	return nil
}

func pickDesigner(designers []domain.Designer) (int, error) {
	return fuzzyfinder.Find(
		designers,
		func(i int) string {
			return designers[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			d := designers[i]
			return fmt.Sprintf("Name: %s\nHash: %s\nImages: %d\nFolder: %s",
				d.Name,
				d.Hash,
				d.ImageCount,
				appWorkspace.DatasetPath(d.Hash))
		}),
	)
}

func printDataset(dataset *domain.Dataset) {
	fmt.Println(ui.FormatDesigner(dataset.Name))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Hash", dataset.Hash))
	fmt.Println(ui.RenderKeyValue("Images", fmt.Sprintf("%d", dataset.ImageCount)))
	fmt.Println(ui.RenderKeyValue("Folder", appWorkspace.DatasetPath(dataset.Hash)))
	fmt.Println()

	if len(dataset.Images) == 0 {
		fmt.Println(ui.FormatWarning("Dataset folder is empty or missing"))
		fmt.Println(ui.FormatInfo("Run 'metadesigner doctor' for details"))
		return
	}
	fmt.Println(ui.StyleHeader.Render(ui.IconImage + " Images"))
	fmt.Print(ui.RenderSimpleList(dataset.Images))
}
