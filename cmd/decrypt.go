package cmd

import (
	"strings"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/keystore"
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/utils"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptFiles     []string
	decryptKey       string
	decryptSelectKey bool
	decryptDryRun    bool
)

func init() {
	decryptCmd.Flags().StringArrayVarP(&decryptFiles, "file", "f", nil, "encrypted file or glob to decrypt (repeatable)")
	decryptCmd.Flags().StringVarP(&decryptKey, "key", "k", "", "key file path (default: the key named in the file, else the latest key)")
	decryptCmd.Flags().BoolVar(&decryptSelectKey, "selectkey", false, "interactively select a key from available keys")
	decryptCmd.Flags().BoolVar(&decryptDryRun, "dry-run", false, "show what would be decrypted without writing files")

	RootCmd.AddCommand(decryptCmd)
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptFiles = nil
	decryptKey = ""
	decryptSelectKey = false
	decryptDryRun = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt <file>.enc_<key id> back into <file>",
	Long: `Decrypts each file and writes the plaintext under the name before the
first ".enc_". The encrypted file is left in place.

Without --key or --selectkey, each file is decrypted with the key its name
refers to when that key is present, and with the latest key otherwise.

Examples:
  cryptora decrypt -f report.pdf.enc_cryptora_20250101_120000
  cryptora decrypt -f 'notes/**/*.enc_*'
  cryptora decrypt -f report.pdf.enc_old --selectkey`,
	Args: noArgs,
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")
	if len(decryptFiles) == 0 {
		return Logger.ErrorfAndReturn("%w: %s requires at least one --file", kerrors.ErrInvalidUsage, cmd.CommandPath())
	}

	session, err := openSession()
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Decrypting files...", !decryptSelectKey)
	defer cleanup()

	result, err := workflows.Decrypt(cmd.Context(), session, workflows.BatchOptions{
		FilePatterns: decryptFiles,
		Select: keystore.SelectOptions{
			Path:        decryptKey,
			Interactive: decryptSelectKey,
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
		},
		DryRun: decryptDryRun,
	})
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return reported(err)
	}

	var lines, planned []string
	for _, o := range result.Outcomes {
		if o.Err != nil {
			lines = append(lines, formatError(o.Err))
			continue
		}

		r := o.Decrypted
		if r.KeyMismatch {
			lines = append(lines, ui.Notice(ui.Path.Sprint(r.SourceFile)+" was encrypted with a different key than "+ui.Key.Sprint(r.Key.Name())))
		}
		if r.DryRun {
			planned = append(planned, r.DecryptedFile+" (with "+r.Key.Name()+")")
			continue
		}
		if r.Overwritten {
			lines = append(lines, ui.Notice("Overwrote existing "+ui.Path.Sprint(r.DecryptedFile)))
		}
		lines = append(lines, ui.Done("File decrypted: "+ui.Path.Sprint(r.DecryptedFile)))
		lines = append(lines, ui.Hint("Used key: "+ui.Path.Sprint(r.Key.Path)))
	}

	if len(planned) > 0 {
		lines = append(lines, ui.Notice("Dry run, nothing was written. Decrypting would create:")+
			strings.TrimSuffix(utils.FormatPaths(planned), "\n"))
	}

	Logger.Infof("Decrypt command completed: %d file(s), %d failed", len(result.Outcomes), len(result.Failed()))
	spinner.FinalMSG = strings.Join(lines, "\n")
	return reported(batchFailure(result))
}
