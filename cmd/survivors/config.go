package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivors/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning file",
	Long: `Print the survivors.yaml that play would use, after the --config
lookup and the --difficulty preset are applied. Redirect it to a file to
start a custom tuning:

  survivors config > ~/.survivors/configs/survivors.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadGameConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}
