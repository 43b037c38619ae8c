package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/soundcloud-grabber/internal/app"
	"github.com/oshokin/soundcloud-grabber/internal/config"
	"github.com/oshokin/soundcloud-grabber/internal/logger"
	"github.com/oshokin/soundcloud-grabber/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "soundcloud-grabber [flags] {urls}",
		Short: "Download SoundCloud tracks and playlists as tagged MP3 files.",
		Long: `SoundCloud Grabber is a CLI tool for downloading audio from SoundCloud page URLs.
It supports downloading:
- Individual tracks: https://soundcloud.com/<user>/<track>
- Playlists: https://soundcloud.com/<user>/sets/<playlist>
- Lists of URLs stored in .txt files, one URL per line

Tracks are saved as "<title>.mp3" with title, artist, album and cover art tags.
A download log (logs.json) in the save directory makes repeated runs skip finished tracks.`,
		Version:          version.Short(),
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, urls)
		},
	}
)

// Execute executes the root command.
// SIGINT and SIGTERM cancel the command context, the command returns after saving its state.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	cobra.CheckErr(err)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("soundcloud-grabber " + version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	defineRootFlags(rootCmd.Flags())
}

// defineRootFlags registers the flags that override configuration values.
func defineRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"dir",
		"d",
		"",
		"directory to save tracks and the download log (the path will be created if it doesn’t exist).")

	flags.String(
		"client-id",
		"",
		"SoundCloud client ID, see the client-id command.")

	flags.Int64P(
		"concurrency",
		"j",
		0,
		"number of playlist tracks downloaded at the same time.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("dir"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("dir")
	}

	if flag := flags.Lookup("client-id"); flag != nil && flag.Changed {
		cfg.ClientID, _ = flags.GetString("client-id")
	}

	if flag := flags.Lookup("concurrency"); flag != nil && flag.Changed {
		cfg.MaxConcurrentDownloads, _ = flags.GetInt64("concurrency")
	}

	return config.ValidateConfig(cfg)
}
