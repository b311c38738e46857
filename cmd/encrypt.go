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
	encryptFiles     []string
	encryptKey       string
	encryptSelectKey bool
	encryptDryRun    bool
)

func init() {
	encryptCmd.Flags().StringArrayVarP(&encryptFiles, "file", "f", nil, "file or glob to encrypt (repeatable)")
	encryptCmd.Flags().StringVarP(&encryptKey, "key", "k", "", "key file path (default: latest key)")
	encryptCmd.Flags().BoolVar(&encryptSelectKey, "selectkey", false, "interactively select a key from available keys")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "show what would be encrypted without writing files")

	RootCmd.AddCommand(encryptCmd)
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptFiles = nil
	encryptKey = ""
	encryptSelectKey = false
	encryptDryRun = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt files into <file>.enc_<key id>",
	Long: `Encrypts each file with a key file and writes the ciphertext next to it
as <file>.enc_<key id>. The original file is left untouched.

The key is the one given with --key, one chosen from a list with
--selectkey, or otherwise the latest key in the keys directory.

Examples:
  cryptora encrypt -f report.pdf
  cryptora encrypt -f report.pdf -k keys/cryptora_20250101_120000.key
  cryptora encrypt -f 'notes/**/*.md' --dry-run`,
	Args: noArgs,
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encrypt command")
	if len(encryptFiles) == 0 {
		return Logger.ErrorfAndReturn("%w: %s requires at least one --file", kerrors.ErrInvalidUsage, cmd.CommandPath())
	}

	session, err := openSession()
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Encrypting files...", !encryptSelectKey)
	defer cleanup()

	result, err := workflows.Encrypt(cmd.Context(), session, workflows.BatchOptions{
		FilePatterns: encryptFiles,
		Select: keystore.SelectOptions{
			Path:        encryptKey,
			Interactive: encryptSelectKey,
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
		},
		DryRun: encryptDryRun,
	})
	if err != nil {
		spinner.FinalMSG = formatError(err)
		return reported(err)
	}

	var lines, planned []string
	var usedKey string
	for _, o := range result.Outcomes {
		if o.Err != nil {
			lines = append(lines, formatError(o.Err))
			continue
		}

		r := o.Encrypted
		usedKey = r.Key.Path
		if r.DryRun {
			planned = append(planned, r.EncryptedFile)
			continue
		}
		if r.Overwritten {
			lines = append(lines, ui.Notice("Overwrote existing "+ui.Path.Sprint(r.EncryptedFile)))
		}
		lines = append(lines, ui.Done("File encrypted: "+ui.Path.Sprint(r.EncryptedFile)))
	}
	if len(planned) > 0 {
		lines = append(lines, ui.Notice("Dry run, nothing was written. Encrypting would create:")+
			strings.TrimSuffix(utils.FormatPaths(planned), "\n"))
	}
	if usedKey != "" {
		lines = append(lines, ui.Hint("Used key: "+ui.Path.Sprint(usedKey)))
	}

	Logger.Infof("Encrypt command completed: %d file(s), %d failed", len(result.Outcomes), len(result.Failed()))
	spinner.FinalMSG = strings.Join(lines, "\n")
	return reported(batchFailure(result))
}
