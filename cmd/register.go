package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/internal/core/services"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var registerNoClipboard bool

var registerCmd = &cobra.Command{
	Use:   "register <name> <image>...",
	Short: "Register a designer from local image files",
	Long: `Create a dataset for a designer from 1 to 30 local images.

The images are copied in argument order to image_001.<ext>, image_002.<ext>, ...
inside a new hash-named folder, and the designer is added to the registry.
The new hash is copied to the clipboard unless disabled.

Examples:
  metadesigner register "Alice" a.png b.jpg
  metadesigner register "Bob" ~/refs/bob/*.png --no-clipboard`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().BoolVar(&registerNoClipboard, "no-clipboard", false, "Do not copy the new hash to the clipboard")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	name := args[0]
	paths := args[1:]

	fmt.Println(ui.FormatRocket(fmt.Sprintf("Registering %s (%d images)...", strings.TrimSpace(name), len(paths))))

	resp, err := registerService.Execute(ctx, services.RegisterRequest{
		Name:   name,
		Images: services.NewFileImages(paths),
	})
	if err != nil {
		fmt.Println(ui.FormatError(domain.StatusMessage(err)))
		return err
	}

	fmt.Println(ui.FormatSuccess("Upload complete!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Designer", resp.Name))
	fmt.Println(ui.RenderKeyValue("Hash", ui.StyleBold.Render(resp.Hash)))
	fmt.Println(ui.RenderKeyValue("Images uploaded", fmt.Sprintf("%d", resp.Count)))
	fmt.Println(ui.RenderKeyValue("Folder", appWorkspace.DatasetPath(resp.Hash)))

	if appConfig.CopyHashToClipboard && !registerNoClipboard {
		if err := clipboard.WriteAll(resp.Hash); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
		} else {
			fmt.Println(ui.FormatMuted("(Hash copied to clipboard)"))
		}
	}

	return nil
}
