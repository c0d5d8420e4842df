package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/seoreport/internal/config"
)

//go:embed templates/seoreport.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new seoreport configuration file",
		Long: `Initialize creates a new .seoreport configuration file in the current directory.

The generated file includes:
- Default page size and margins
- Commented examples for fonts and translated labels
- Documentation for all available options

Examples:
  # Create .seoreport in current directory
  seoreport init

  # Create the configuration in the XDG config directory
  seoreport init --xdg

  # Create config file at a specific path
  seoreport init -o myconfig.yaml

  # Force overwrite existing file
  seoreport init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().Bool("xdg", false,
		"Write the configuration to the XDG config directory")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	useXDG, err := cmd.Flags().GetBool("xdg")
	if err != nil {
		return err
	}
	if useXDG {
		outputPath = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/seoreport.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure settings such as:")
	fmt.Fprintln(out, "  - Page size, orientation and margins")
	fmt.Fprintln(out, "  - Fonts for non-Latin reports")
	fmt.Fprintln(out, "  - Report labels in another language")

	return nil
}
