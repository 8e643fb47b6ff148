package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apidrift/apidrift/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an apidrift configuration",
	Long: `Initialize an apidrift configuration in the current directory.

This command creates a .apidrift.yaml file with sensible defaults.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	const configFile = ".apidrift.yaml"

	if config.ConfigExists(".") && !initForce {
		existing, _ := config.FindConfigFile(".")
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", existing)
	}

	if err := config.WriteDefaultConfig(configFile); err != nil {
		return err
	}

	printSuccess("Created " + configFile)
	printInfo("Edit it to configure documentation paths, the AI enhancer, and the CI gate.")
	return nil
}
