package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/metadesigner/pkg/ui"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train a model on the collected datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := trainService.Execute(getContext())
		if err != nil {
			return err
		}
		fmt.Println(ui.FormatInfo(msg))
		return nil
	},
}
