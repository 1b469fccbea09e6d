package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/finscan/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Init writes the default settings to a YAML configuration file, by default
$XDG_CONFIG_HOME/finscan/finscan.yaml.

Examples:
  # Create the user config file
  finscan init

  # Create a project config in the current directory
  finscan init -o .finscan.yaml

  # Force overwrite existing file
  finscan init --force`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.XDGConfigFile(), "Output file path for the configuration")
	cmd.Flags().Bool("force", false, "Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if force {
		if err := os.Remove(outputPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := config.WriteDefault(outputPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
