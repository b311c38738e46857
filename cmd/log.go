package cmd

import (
	"fmt"

	"github.com/PolarWolf314/cryptora/internal/audit"
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logDate  string
	logLimit int
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to show (YYYY-MM-DD, default: today)")
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the last N entries")

	RootCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logDate = ""
	logLimit = 0
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the activity log",
	Long: `Displays the activity log of one day. Every encrypt, decrypt, genkey
and listkeys run is recorded in <home>/logs/log_<YYYY-MM-DD>.jsonl.

Examples:
  cryptora log                     # Today's entries
  cryptora log -n 10               # Last 10 entries of today
  cryptora log --date 2025-01-01   # Another day`,
	Args: noArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	session, err := openSession()
	if err != nil {
		return err
	}

	result, err := workflows.ReadLog(cmd.Context(), session, workflows.LogOptions{
		Date:  logDate,
		Limit: logLimit,
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Read %d entries from %s", result.Total, result.Path)

	if len(result.Entries) == 0 {
		fmt.Println("No activity log entries found.")
		if !session.Settings.Audit {
			fmt.Println(ui.Hint("The activity log is disabled in " + ui.Path.Sprint(session.Settings.ConfigPath)))
		}
		return nil
	}

	for _, e := range result.Entries {
		fmt.Println(formatLogEntry(e))
	}
	if len(result.Entries) < result.Total {
		fmt.Println(ui.Muted.Sprintf("%d of %d entries shown", len(result.Entries), result.Total))
	}
	return nil
}

func formatLogEntry(e audit.Entry) string {
	outcome := ui.Success.Sprint(e.Outcome)
	if e.Outcome != audit.OutcomeOK {
		outcome = ui.Error.Sprint(e.Outcome)
	}

	line := fmt.Sprintf("%-27s  %-8s  %-6s", e.Timestamp, e.Operation, outcome)
	switch {
	case e.File != "" && e.Output != "":
		line += "  " + e.File + " -> " + e.Output
	case e.File != "":
		line += "  " + e.File
	case e.Operation == "listkeys":
		line += fmt.Sprintf("  %d key(s)", e.Count)
	}
	if e.Key != "" {
		line += "  " + ui.Muted.Sprint("key "+e.Key)
	}
	if e.Error != "" {
		line += "  " + ui.Error.Sprint(e.Error)
	}
	return line
}
