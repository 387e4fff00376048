package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moneysupermarket/component-catalog/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize catalog app configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the catalog app and generates a .catalog.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
