package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	logger "github.com/PolarWolf314/cryptora/internal/logging"
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/utils"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	homeDir    string
	configPath string
	verbose    bool
	debug      bool
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "cryptora",
		Short: "Cryptora - encrypt and decrypt files with timestamped key files",
		Long: `Cryptora encrypts and decrypts whole files with symmetric keys stored
as timestamped key files.

Encrypted files are written next to the original as <file>.enc_<key id>,
so the name records which key was used. Keys live in <home>/keys and an
activity log is kept in <home>/logs.

Examples:
  cryptora genkey
  cryptora encrypt -f report.pdf
  cryptora decrypt -f report.pdf.enc_cryptora_20250101_120000
  cryptora encrypt -f 'docs/**/*.txt' --selectkey`,
		Args:          rootArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			banner := figure.NewColorFigure("Cryptora", "standard", "green", true)
			banner.Print()
			fmt.Println()
			fmt.Println(ui.Hint("Run " + ui.Code.Sprint("cryptora --help") + " to see available commands"))
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "base directory for keys and logs (default: directory of the executable)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default: <home>/cryptora.toml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidUsage, err)
	})
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return kerrors.ExitOK
	}

	var shown *reportedError
	if !errors.As(err, &shown) {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return kerrors.ExitCode(err)
}

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unknown command %q for %q", kerrors.ErrInvalidUsage, args[0], cmd.CommandPath())
	}
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %q accepts no arguments, got %q", kerrors.ErrInvalidUsage, cmd.CommandPath(), args[0])
	}
	return nil
}

// resolveHome returns --home, defaulting to the directory of the executable.
func resolveHome() (string, error) {
	if homeDir != "" {
		return homeDir, nil
	}
	dir, err := utils.ExecutableDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrIOFailure, err)
	}
	return dir, nil
}

// loadSettings reads the configuration for this invocation.
func loadSettings() (*configs.Settings, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Loading settings from home %s", home)
	return configs.LoadSettings(home, configPath)
}

// openSession loads the settings and builds the session every core
// workflow runs against.
func openSession() (*workflows.Session, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return workflows.NewSession(settings, Logger)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	homeDir = ""
	configPath = ""
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetLogCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag in the tree to prevent
// test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
