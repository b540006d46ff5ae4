package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/internal/core/domain"
	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the dataset cache",
	Long: `Diagnose issues with your metadesigner workspace.

Checks for:
  - Cache directory and configuration file
  - Registry readability (designer.json)
  - Registry entries whose dataset folder is missing or empty
  - Dataset folders that no registry entry points to`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatTitle("🏥 Metadesigner Doctor"))
	fmt.Println()
	fmt.Println(workspaceSummary(appWorkspace))
	fmt.Println()

	checkStep("Cache Directory", func() error {
		if !appWorkspace.Exists() {
			return fmt.Errorf("not found at %s", appWorkspace.CachePath)
		}
		return nil
	})

	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (defaults in use)", appWorkspace.ConfigPath)
		}
		return nil
	})

	report, err := doctorService.Execute(getContext())
	if err != nil {
		fmt.Println(ui.FormatError("Failed to inspect datasets"))
		return err
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking dataset integrity..."))

	checkStep("Registry", func() error {
		if report.RegistryErr != nil {
			return errors.New(domain.StatusMessage(report.RegistryErr))
		}
		return nil
	})

	checkStep("Dataset Folders", func() error {
		for _, d := range report.Missing {
			fmt.Printf("    %s %s (folder missing)\n", d.Hash, d.Name)
		}
		if len(report.Missing) > 0 {
			return fmt.Errorf("%d registered designers have no folder", len(report.Missing))
		}
		return nil
	})

	checkStep("Dataset Images", func() error {
		for _, d := range report.Empty {
			fmt.Printf("    %s %s (no images)\n", d.Hash, d.Name)
		}
		if len(report.Empty) > 0 {
			return fmt.Errorf("%d datasets are empty", len(report.Empty))
		}
		return nil
	})

	checkStep("Orphan Folders", func() error {
		for _, hash := range report.Orphans {
			fmt.Printf("    %s\n", appWorkspace.DatasetPath(hash))
		}
		if len(report.Orphans) > 0 {
			return fmt.Errorf("%d folders are not in the registry", len(report.Orphans))
		}
		return nil
	})

	fmt.Println()
	if report.Healthy() {
		fmt.Println(ui.FormatSuccess(fmt.Sprintf("All good: %d designers registered", report.Registered)))
	} else {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d designers registered, issues found", report.Registered)))
	}
	return nil
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
