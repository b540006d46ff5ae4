package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/pkg/ui"
	"github.com/kamal-hamza/metadesigner/pkg/workspace"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the metadesigner workspace",
	Long: `Initialize the metadesigner workspace directory structure.

This creates the managed workspace at ~/.local/share/metadesigner/ with:
  - cache/               : One folder per designer, named by hash
  - cache/designer.json  : Registry mapping hash to designer name
  - config.yaml          : Global configuration (~/.config/metadesigner/)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ws, _, err := loadWorkspace()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine workspace location"))
		return err
	}

	if ws.Exists() {
		fmt.Println(ui.FormatWarning("Workspace already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + ws.CachePath))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing metadesigner workspace..."))
	fmt.Println()

	if err := ws.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize workspace"))
		return err
	}

	configPath := ws.ConfigPath
	if cfgFile != "" {
		configPath = cfgFile
	}
	if err := createDefaultConfig(configPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
	} else {
		fmt.Println(ui.FormatSuccess("Default config created"))
	}

	fmt.Println(ui.FormatSuccess("Workspace initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Cache", ws.CachePath))
	fmt.Println(ui.RenderKeyValue("Registry", ws.RegistryPath()))
	fmt.Println(ui.RenderKeyValue("Config", configPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Start the upload page: metadesigner serve"))
	fmt.Println(ui.FormatMuted("  2. Or register from disk: metadesigner register \"Alice\" a.png b.jpg"))
	fmt.Println(ui.FormatMuted("  3. List designers: metadesigner list"))

	return nil
}

func createDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	defaultConfig := `# Metadesigner Configuration
# Every setting can also be overridden with METADESIGNER_<KEY>, e.g. METADESIGNER_PORT=8080

# Web server
# host: "0.0.0.0"
# port: 12002
# max_upload_mb: 512
# enable_cors: false

# Storage (defaults to the workspace cache directory)
# cache_dir: ""

# Treat an unreadable designer.json as empty instead of failing
# tolerate_corrupt_registry: false

# Logging
# log_level: info
# log_format: text

# CLI
# color_theme: auto
# copy_hash_to_clipboard: true
# watch_debounce_ms: 500
`

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

// workspaceSummary renders the paths every command may want to show
func workspaceSummary(ws *workspace.Workspace) string {
	return ui.RenderKeyValue("Cache", ws.CachePath) + "\n" +
		ui.RenderKeyValue("Registry", ws.RegistryPath())
}
