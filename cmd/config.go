package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/basic-api-client/internal/app"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration file commands",
		// The configuration file may not exist yet, so it is not loaded here.
		PersistentPreRun: func(*cobra.Command, []string) {},
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a commented example configuration file",
		Long: `Writes an example configuration to the path given with --config,
or to the default configuration file in the current directory.

An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			force, _ := cmd.Flags().GetBool("force")

			app.ExecuteConfigInitCommand(cmd.Context(), configFilenameFromFlag, force)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
