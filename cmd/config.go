package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration file")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// resetConfigCommandState resets the config commands' global state for testing.
func resetConfigCommandState() {
	configInitForce = false
}

// ConfigCmd groups the configuration commands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Cryptora configuration",
	Long: `Provides commands for the TOML configuration file, which sets the keys
and logs directories, the key file prefix, the cipher for new files and
whether the activity log is kept.

Examples:
  cryptora config init
  cryptora config show
  cryptora --config ~/cryptora.toml config show`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		path, err := configFilePath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			err := fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
			fmt.Println(ui.Failed("Configuration already exists at " + ui.Path.Sprint(path)))
			fmt.Println(ui.Hint("Use " + ui.Code.Sprint("cryptora config init --force") + " to overwrite it"))
			return reported(err)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", kerrors.ErrIOFailure, path, err)
		}

		if err := configs.Save(path, configs.Default()); err != nil {
			return err
		}

		fmt.Println(ui.Done("Configuration written to " + ui.Path.Sprint(path)))
		fmt.Println(ui.Hint("Edit it to change the keys directory, key prefix or cipher"))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		settings, err := loadSettings()
		if err != nil {
			return err
		}

		source := settings.ConfigPath
		if _, err := os.Stat(source); err != nil {
			source += " " + ui.Muted.Sprint("not found, using defaults")
		}

		fmt.Printf("Config file: %s\n", source)
		fmt.Printf("Home:        %s\n", settings.HomeDir)
		fmt.Printf("Keys:        %s\n", settings.KeysDir)
		fmt.Printf("Logs:        %s\n", settings.LogsDir)
		fmt.Printf("Key prefix:  %s\n", settings.KeyPrefix)
		fmt.Printf("Cipher:      %s\n", settings.Cipher)
		fmt.Printf("Audit:       %t\n", settings.Audit)
		return nil
	},
}

// configFilePath returns --config or <home>/cryptora.toml.
func configFilePath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	home, err := resolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configs.FileName), nil
}
