package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/logging"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "keypointer",
	Short: "Drive the pointer from the keyboard",
	Long: "keypointer replaces the mouse with keyboard-driven pointer control:\n" +
		"directional movement, grid and area jumps across displays, clicks,\n" +
		"scrolling, and drag via hold, all from the home row.",
}

// snapshot is the effective configuration, resolved once in the persistent
// pre-run and immutable afterwards.
var snapshot config.Snapshot

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.keypointer.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logging.Setup(os.Stderr, verbose)

		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}

		var err error
		snapshot, err = loadConfig(cmd)
		return err
	}
}

// loadConfig layers the config file and KEYPOINTER_* environment variables
// over the defaults.
func loadConfig(cmd *cobra.Command) (config.Snapshot, error) {
	v := viper.New()
	v.SetEnvPrefix("KEYPOINTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config.Snapshot{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".keypointer")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config.Snapshot{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	return config.FromViper(v)
}
