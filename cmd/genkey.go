package cmd

import (
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(genkeyCmd)
}

var genkeyCmd = &cobra.Command{
	Use:   "genkey",
	Short: "Generate a new timestamped key file",
	Long: `Generates a new random key and saves it in the keys directory as
<prefix>_<YYYYMMDD>_<HHMMSS>.key. The newest key is used by default for
encryption.

Keep key files safe: a file encrypted with a lost key cannot be recovered.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting genkey command")

		session, err := openSession()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Generating key...", true)
		defer cleanup()

		result, err := workflows.GenerateKey(cmd.Context(), session)
		if err != nil {
			spinner.FinalMSG = formatError(err)
			return reported(err)
		}

		spinner.FinalMSG = ui.Done("Key generated: "+ui.Path.Sprint(result.Key.Path)) + "\n" +
			ui.Hint("Back this file up; files encrypted with it cannot be recovered without it")
		return nil
	},
}
