package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/soundcloud-grabber/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition.
var clientIDCmd = &cobra.Command{
	Use:   "client-id",
	Short: "Find the public SoundCloud client ID and save it to the configuration file",
	Long: `Finds the client ID that the SoundCloud web player sends with every API request.

The lookup process:
1. The https://soundcloud.com home page is fetched
2. Its JavaScript bundles are fetched, starting from the last one
3. The first 32-character client_id found in a bundle is used

The client ID is written to the client_id key of the configuration file,
other keys and comments are kept. The file is created when it does not exist.

The client ID changes from time to time, run this command again when
downloads start failing with 401 or 403 errors.`,
	Args:             cobra.NoArgs,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteClientIDCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(clientIDCmd)
}
